package app

import (
	"errors"
	"fmt"

	"github.com/evcraddock/museum-visit/internal/navigation"
	"github.com/evcraddock/museum-visit/internal/notify"
	"github.com/evcraddock/museum-visit/internal/validate"
	"github.com/evcraddock/museum-visit/internal/visitor"
)

// AddVisitor appends a visitor to the registration list.
func (a *App) AddVisitor(f validate.VisitorForm) (visitor.Visitor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.VisitorRegistration); err != nil {
		return visitor.Visitor{}, err
	}
	v, err := a.visitors.Add(f)
	if err != nil {
		return visitor.Visitor{}, a.fail(err)
	}
	a.succeed("添加成功", actionToast)
	return v, nil
}

// EditVisitor opens the edit dialog for a visitor.
func (a *App) EditVisitor(id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.VisitorRegistration); err != nil {
		return err
	}
	if _, err := a.visitors.Get(id); err != nil {
		return err
	}
	a.editing = id
	return nil
}

// CloseVisitorEdit closes the edit dialog without saving.
func (a *App) CloseVisitorEdit() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editing = 0
}

// SaveVisitor saves the visitor open in the edit dialog.
func (a *App) SaveVisitor(f validate.VisitorForm) (visitor.Visitor, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.VisitorRegistration); err != nil {
		return visitor.Visitor{}, err
	}
	if a.editing == 0 {
		return visitor.Visitor{}, fmt.Errorf("%w: no visitor is being edited", ErrWrongPage)
	}
	v, err := a.visitors.Edit(a.editing, f)
	if err != nil {
		if _, ok := validate.As(err); ok {
			return visitor.Visitor{}, a.fail(err)
		}
		return visitor.Visitor{}, err
	}
	a.editing = 0
	a.succeed("修改成功", actionToast)
	return v, nil
}

// RequestVisitorRemoval asks for confirmation before removing a visitor.
func (a *App) RequestVisitorRemoval(id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.VisitorRegistration); err != nil {
		return err
	}
	return a.visitors.RequestRemoval(id)
}

// ConfirmVisitorRemoval removes the visitor awaiting confirmation.
func (a *App) ConfirmVisitorRemoval() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	v, err := a.visitors.ConfirmRemoval()
	if err != nil {
		return err
	}
	if a.editing == v.ID {
		a.editing = 0
	}
	a.logger.Info("visitor removed", "visitor", v.ID)
	a.succeed("删除成功", actionToast)
	return nil
}

// CancelVisitorRemoval dismisses the removal dialog.
func (a *App) CancelVisitorRemoval() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.visitors.CancelRemoval()
}

// ToggleBookingVisitor selects or deselects a visitor on the booking page.
// Blacklisted visitors are ignored. Going past the cap shows an error toast.
func (a *App) ToggleBookingVisitor(id int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	if err := a.requirePage(navigation.Booking); err != nil {
		return err
	}
	err := a.booking.Visitors.Toggle(id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, visitor.ErrBlacklisted):
		return nil
	case errors.Is(err, visitor.ErrSelectionLimit):
		a.notifier.Notify(notify.Failure(fmt.Sprintf("一个账号最多可预约%d人", a.opts.Policy.MaxVisitors)))
		return err
	default:
		return err
	}
}
