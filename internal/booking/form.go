package booking

import (
	"errors"
	"fmt"

	"github.com/evcraddock/museum-visit/internal/validate"
	"github.com/evcraddock/museum-visit/internal/visitor"
)

var (
	ErrUnavailable   = errors.New("option is fully booked")
	ErrUnknownOption = errors.New("unknown option")
)

// Field names reported by Submit.
const (
	FieldDate     = "date"
	FieldSlot     = "slot"
	FieldVisitors = "visitors"
)

// Form is the state of the booking screen.
type Form struct {
	dates    []DateOption
	slots    []SlotOption
	date     string
	slot     string
	Visitors *visitor.Store
}

// NewForm creates a booking form. The first available date and the second
// available slot are preselected, as the screen shows on first open.
func NewForm(dates []DateOption, slots []SlotOption, visitors *visitor.Store) *Form {
	f := &Form{dates: dates, slots: slots, Visitors: visitors}
	for _, d := range dates {
		if d.Available {
			f.date = d.Key()
			break
		}
	}
	var open []string
	for _, s := range slots {
		if s.Available {
			open = append(open, s.Time)
		}
	}
	switch {
	case len(open) > 1:
		f.slot = open[1]
	case len(open) == 1:
		f.slot = open[0]
	}
	return f
}

// Dates returns the offered dates.
func (f *Form) Dates() []DateOption {
	return f.dates
}

// Slots returns the offered time slots.
func (f *Form) Slots() []SlotOption {
	return f.slots
}

// SelectedDate returns the chosen date, if any.
func (f *Form) SelectedDate() (DateOption, bool) {
	for _, d := range f.dates {
		if d.Key() == f.date {
			return d, true
		}
	}
	return DateOption{}, false
}

// SelectedSlot returns the chosen time slot, if any.
func (f *Form) SelectedSlot() (SlotOption, bool) {
	for _, s := range f.slots {
		if s.Time == f.slot {
			return s, true
		}
	}
	return SlotOption{}, false
}

// SelectDate chooses a date. Full dates cannot be chosen.
func (f *Form) SelectDate(key string) error {
	for _, d := range f.dates {
		if d.Key() != key {
			continue
		}
		if !d.Available {
			return fmt.Errorf("%w: %s", ErrUnavailable, key)
		}
		f.date = key
		return nil
	}
	return fmt.Errorf("%w: date %q", ErrUnknownOption, key)
}

// SelectSlot chooses a time slot. Full slots cannot be chosen.
func (f *Form) SelectSlot(time string) error {
	for _, s := range f.slots {
		if s.Time != time {
			continue
		}
		if !s.Available {
			return fmt.Errorf("%w: %s", ErrUnavailable, time)
		}
		f.slot = time
		return nil
	}
	return fmt.Errorf("%w: slot %q", ErrUnknownOption, time)
}

// Submission is an accepted booking.
type Submission struct {
	Date     DateOption
	Slot     SlotOption
	Visitors []visitor.Visitor
}

// Submit checks that a date, a slot and at least one eligible visitor are
// chosen. The form is left untouched.
func (f *Form) Submit() (Submission, error) {
	date, ok := f.SelectedDate()
	if !ok {
		return Submission{}, &validate.Error{Kind: validate.MissingField, Field: FieldDate, Message: "请选择参观日期"}
	}
	slot, ok := f.SelectedSlot()
	if !ok {
		return Submission{}, &validate.Error{Kind: validate.MissingField, Field: FieldSlot, Message: "请选择入场时段"}
	}
	visitors := f.Visitors.Selected()
	if len(visitors) == 0 {
		return Submission{}, &validate.Error{Kind: validate.MissingField, Field: FieldVisitors, Message: "请选择访客"}
	}
	return Submission{Date: date, Slot: slot, Visitors: visitors}, nil
}
