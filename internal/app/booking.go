package app

import (
	"github.com/evcraddock/museum-visit/internal/booking"
	"github.com/evcraddock/museum-visit/internal/navigation"
)

// SelectDate chooses the visit date.
func (a *App) SelectDate(key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.Booking); err != nil {
		return err
	}
	return a.booking.SelectDate(key)
}

// SelectSlot chooses the entry slot.
func (a *App) SelectSlot(slot string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.Booking); err != nil {
		return err
	}
	return a.booking.SelectSlot(slot)
}

// SubmitBooking books a visit for every selected visitor. Each one gets a
// pending record, and the records page opens after the success toast.
func (a *App) SubmitBooking() ([]booking.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.Booking); err != nil {
		return nil, err
	}
	sub, err := a.booking.Submit()
	if err != nil {
		return nil, a.fail(err)
	}

	added := make([]booking.Record, 0, len(sub.Visitors))
	for _, v := range sub.Visitors {
		added = append(added, a.records.AddPending(v.Name, sub.Date.Label(), sub.Slot.Time))
	}
	a.logger.Info("booking submitted",
		"date", sub.Date.Key(), "slot", sub.Slot.Time, "visitors", len(sub.Visitors))

	a.succeed("预约成功！", a.opts.Delays.Booking)
	a.scheduleLocked(a.opts.Delays.Booking, func() {
		if err := a.nav.Complete(navigation.BookingRecord); err != nil {
			a.logger.Error("opening booking records", "error", err)
		}
	})
	return added, nil
}

// ShowQRCode opens the QR dialog of a pending record.
func (a *App) ShowQRCode(id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.BookingRecord); err != nil {
		return err
	}
	_, err := a.records.ShowQRCode(id)
	return err
}

// CloseQRCode closes the QR dialog.
func (a *App) CloseQRCode() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records.CloseQRCode()
}

// RequestCancel asks for confirmation before cancelling a pending record.
func (a *App) RequestCancel(id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.BookingRecord); err != nil {
		return err
	}
	return a.records.RequestCancel(id)
}

// ConfirmCancel removes the record awaiting cancellation.
func (a *App) ConfirmCancel() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	r, err := a.records.ConfirmCancel()
	if err != nil {
		return err
	}
	a.logger.Info("booking cancelled", "record", r.ID)
	a.succeed("取消预约成功", actionToast)
	return nil
}

// DismissCancel closes the cancellation dialog.
func (a *App) DismissCancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records.DismissCancel()
}
