// Package booking provides the visit booking form and the booking record list.
package booking

import (
	"fmt"
	"time"
)

var weekdays = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// DateOption is a visit date offered on the booking screen.
type DateOption struct {
	Date      time.Time `json:"date"`
	Remaining int       `json:"remaining"`
	Available bool      `json:"available"`
}

// Key identifies the option in forms.
func (d DateOption) Key() string {
	return d.Date.Format("2006-01-02")
}

// Day returns the day of month shown on the date tile.
func (d DateOption) Day() int {
	return d.Date.Day()
}

// Weekday returns the Chinese weekday name.
func (d DateOption) Weekday() string {
	return weekdays[d.Date.Weekday()]
}

// Label returns the full date, e.g. 2025年12月24日.
func (d DateOption) Label() string {
	return fmt.Sprintf("%d年%d月%d日", d.Date.Year(), int(d.Date.Month()), d.Date.Day())
}

// Capacity describes how many places are left.
func (d DateOption) Capacity() string {
	return capacity(d.Available, d.Remaining)
}

// SlotOption is an entry time slot offered on the booking screen.
type SlotOption struct {
	Time      string `json:"time"`
	Remaining int    `json:"remaining"`
	Available bool   `json:"available"`
}

// Capacity describes how many places are left.
func (s SlotOption) Capacity() string {
	return capacity(s.Available, s.Remaining)
}

func capacity(available bool, remaining int) string {
	if !available {
		return "已满，不可预约"
	}
	return fmt.Sprintf("剩余%d位", remaining)
}

// DefaultDates returns the dates offered to a new session.
func DefaultDates() []DateOption {
	day := func(d int) time.Time {
		return time.Date(2025, time.December, d, 0, 0, 0, 0, time.Local)
	}
	return []DateOption{
		{Date: day(24), Remaining: 200, Available: true},
		{Date: day(25), Remaining: 90, Available: true},
		{Date: day(26)},
		{Date: day(27)},
		{Date: day(28)},
	}
}

// DefaultSlots returns the time slots offered to a new session.
func DefaultSlots() []SlotOption {
	return []SlotOption{
		{Time: "10:00—12:00", Remaining: 100, Available: true},
		{Time: "12:00—14:00", Remaining: 45, Available: true},
		{Time: "14:00—16:00", Remaining: 55, Available: true},
		{Time: "16:00—18:00"},
	}
}
