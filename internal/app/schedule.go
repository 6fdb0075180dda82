package app

import (
	"time"

	"github.com/evcraddock/museum-visit/internal/navigation"
)

// task is a page change scheduled after a success toast. It only fires
// while the session is still on the page that scheduled it.
type task struct {
	from  navigation.Page
	due   time.Time
	run   func()
	timer *time.Timer
}

// scheduleLocked runs fn after d, replacing any earlier task. A zero delay
// runs fn at once.
func (a *App) scheduleLocked(d time.Duration, fn func()) {
	a.cancelLocked()
	if d <= 0 {
		fn()
		return
	}

	t := &task{from: a.nav.Page, due: a.now().Add(d), run: fn}
	t.timer = time.AfterFunc(d, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.fireLocked(t)
	})
	a.pending = t
}

func (a *App) fireLocked(t *task) {
	if a.pending != t {
		return
	}
	a.pending = nil
	if a.nav.Page != t.from {
		a.logger.Debug("dropping stale transition", "from", t.from, "page", a.nav.Page)
		return
	}
	t.run()
}

// settleLocked fires the pending task if it is due. Requests call it so a
// render never shows a page whose timer has already elapsed.
func (a *App) settleLocked() {
	if a.pending == nil || a.now().Before(a.pending.due) {
		return
	}
	a.pending.timer.Stop()
	a.fireLocked(a.pending)
}

func (a *App) cancelLocked() {
	if a.pending == nil {
		return
	}
	a.pending.timer.Stop()
	a.pending = nil
}

// Pending reports whether a page change is scheduled.
func (a *App) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending != nil
}

// Settle fires a due page change, if any.
func (a *App) Settle() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settleLocked()
}

// Close stops any scheduled page change. The registry calls it when the
// session is dropped.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}
