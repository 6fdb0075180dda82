// Package app is the root controller of one booking session. It owns the
// navigation state, the profile and every screen's store, and exposes them
// to the web layer as a snapshot plus named actions.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/evcraddock/museum-visit/internal/booking"
	"github.com/evcraddock/museum-visit/internal/config"
	"github.com/evcraddock/museum-visit/internal/content"
	"github.com/evcraddock/museum-visit/internal/navigation"
	"github.com/evcraddock/museum-visit/internal/notify"
	"github.com/evcraddock/museum-visit/internal/profile"
	"github.com/evcraddock/museum-visit/internal/visitor"
)

// ErrWrongPage is returned when an action is dispatched from a screen that
// does not offer it.
var ErrWrongPage = errors.New("action not available on this page")

// Options configures a session.
type Options struct {
	Delays  config.Delays
	Policy  config.Policy
	Catalog *content.Catalog
	Logger  *slog.Logger
}

// DefaultOptions returns options built from the default config.
func DefaultOptions() Options {
	cfg := config.Default()
	return Options{Delays: cfg.Delays, Policy: cfg.Policy, Catalog: content.NewCatalog()}
}

// App is the state of one session. All methods are safe for concurrent use;
// each call runs under the session lock.
type App struct {
	mu sync.Mutex

	id       string
	opts     Options
	logger   *slog.Logger
	toasts   notify.Queue
	notifier notify.Notifier

	nav      navigation.State
	profile  profile.UserProfile
	password string

	visitors *visitor.Store
	editing  int
	booking  *booking.Form
	records  *booking.RecordStore

	passwordOpen bool
	pending      *task
	now          func() time.Time
}

// New creates the state of a fresh session.
func New(id string, opts Options) *App {
	if opts.Catalog == nil {
		opts.Catalog = content.NewCatalog()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", id)

	policy := visitor.Policy{
		MaxSelected: opts.Policy.MaxVisitors,
		EnforceCap:  opts.Policy.EnforceVisitorCap,
	}

	a := &App{
		id:      id,
		opts:    opts,
		logger:  logger,
		nav:     navigation.NewState(),
		profile: profile.Default(),
		visitors: visitor.NewStore(
			visitor.RegistrationSeed(opts.Policy.WarningNotice), policy),
		booking: booking.NewForm(booking.DefaultDates(), booking.DefaultSlots(),
			visitor.NewStore(visitor.BookingSeed(opts.Policy.BlacklistNotice), policy)),
		records: booking.NewRecordStore(booking.SeedRecords()),
		now:     time.Now,
	}
	a.notifier = notify.Logged{Next: &a.toasts, Logger: logger}
	return a
}

// ID returns the session id.
func (a *App) ID() string {
	return a.id
}

// Catalog returns the read-only content.
func (a *App) Catalog() *content.Catalog {
	return a.opts.Catalog
}

// Nav returns the current navigation state.
func (a *App) Nav() navigation.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()
	return a.nav
}

// Profile returns the current profile.
func (a *App) Profile() profile.UserProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profile
}

// actionToast is how long the toast of an in-page action stays up.
const actionToast = 2 * time.Second

// View is everything a screen needs to render.
type View struct {
	Nav     navigation.State    `json:"nav"`
	Profile profile.UserProfile `json:"profile"`
	Toasts  []notify.Message    `json:"toasts,omitempty"`

	// Redirecting is set while a delayed page change is scheduled.
	Redirecting bool          `json:"redirecting"`
	RedirectIn  time.Duration `json:"redirect_in"`

	Visitors        []visitor.Visitor `json:"visitors"`
	EditingVisitor  *visitor.Visitor  `json:"editing_visitor,omitempty"`
	RemovingVisitor *visitor.Visitor  `json:"removing_visitor,omitempty"`

	Dates           []booking.DateOption `json:"dates"`
	Slots           []booking.SlotOption `json:"slots"`
	SelectedDate    string               `json:"selected_date"`
	SelectedLabel   string               `json:"selected_label"`
	SelectedSlot    string               `json:"selected_slot"`
	BookingVisitors []visitor.Visitor    `json:"booking_visitors"`
	SelectedCount   int                  `json:"selected_count"`
	MaxVisitors     int                  `json:"max_visitors"`

	Records          []booking.Record `json:"records"`
	QRRecord         *booking.Record  `json:"qr_record,omitempty"`
	CancellingRecord *booking.Record  `json:"cancelling_record,omitempty"`

	PasswordModal bool `json:"password_modal"`
}

// View fires any due page change, then returns a snapshot and hands over
// the queued toasts.
func (a *App) View() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	v := a.snapshotLocked()
	v.Toasts = a.toasts.Drain()
	return v
}

// Snapshot is View but leaves the queued toasts in place.
func (a *App) Snapshot() View {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()

	v := a.snapshotLocked()
	v.Toasts = a.toasts.Peek()
	return v
}

func (a *App) snapshotLocked() View {
	v := View{
		Nav:             a.nav,
		Profile:         a.profile,
		Visitors:        a.visitors.List(),
		Dates:           a.booking.Dates(),
		Slots:           a.booking.Slots(),
		BookingVisitors: a.booking.Visitors.List(),
		SelectedCount:   a.booking.Visitors.SelectedCount(),
		MaxVisitors:     a.opts.Policy.MaxVisitors,
		Records:         a.records.List(),
		PasswordModal:   a.passwordOpen,
	}

	if a.pending != nil {
		v.Redirecting = true
		v.RedirectIn = a.pending.due.Sub(a.now())
		if v.RedirectIn < 0 {
			v.RedirectIn = 0
		}
	}

	if a.editing != 0 {
		if vis, err := a.visitors.Get(a.editing); err == nil {
			v.EditingVisitor = &vis
		}
	}
	if id, ok := a.visitors.PendingRemoval(); ok {
		if vis, err := a.visitors.Get(id); err == nil {
			v.RemovingVisitor = &vis
		}
	}

	if d, ok := a.booking.SelectedDate(); ok {
		v.SelectedDate = d.Key()
		v.SelectedLabel = d.Label()
	}
	if s, ok := a.booking.SelectedSlot(); ok {
		v.SelectedSlot = s.Time
	}

	if r, ok := a.records.QRCodeShown(); ok {
		v.QRRecord = &r
	}
	if id, ok := a.records.PendingCancel(); ok {
		if r, err := a.records.Get(id); err == nil {
			v.CancellingRecord = &r
		}
	}

	return v
}

// Record returns a booking record by id.
func (a *App) Record(id int) (booking.Record, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.records.Get(id)
}

func (a *App) requirePage(p navigation.Page) error {
	if a.nav.Page != p {
		return fmt.Errorf("%w: on %s, need %s", ErrWrongPage, a.nav.Page, p)
	}
	return nil
}

// fail reports a validation error to the user and returns it.
func (a *App) fail(err error) error {
	a.notifier.Notify(notify.Failure(err.Error()))
	return err
}

func (a *App) succeed(text string, d time.Duration) {
	a.notifier.Notify(notify.Successf(text, d))
}
