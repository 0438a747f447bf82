// Package highlight flags and opens glossary entries for a limited time.
package highlight

import (
	"sync"
	"time"

	"github.com/ziadkadry99/termlink/internal/glossary"
)

// DefaultDuration is how long a highlight stays on.
const DefaultDuration = 2600 * time.Millisecond

// Result describes what a Highlight call changed.
type Result struct {
	// Keys are the entries that were opened and flagged, in request order.
	Keys []string
	// FilterCleared is set when the search filter had to be dropped so that
	// every requested key was visible.
	FilterCleared bool
}

// Controller owns a glossary view and the timer that clears its highlight
// flags. Because the timer fires on its own goroutine, all access to the
// view goes through the controller's lock.
type Controller struct {
	mu       sync.Mutex
	view     *glossary.View
	sched    Scheduler
	duration time.Duration
	timer    Timer
	gen      uint64
	onChange func()
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the clock scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithDuration sets how long highlights last. Non-positive values keep the
// default.
func WithDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithOnChange registers a callback invoked, without the lock held, after
// the timer cleared the highlights.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New wraps view.
func New(view *glossary.View, opts ...Option) *Controller {
	c := &Controller{
		view:     view,
		sched:    ClockScheduler{},
		duration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Highlight opens and flags the entries for keys. Duplicates and empty keys
// are dropped and an empty request does nothing. When a key is hidden by
// the current filter the filter is cleared first. Previous flags are
// removed and any pending clear timer is replaced by a fresh one.
func (c *Controller) Highlight(keys []string) Result {
	keys = dedupe(keys)
	if len(keys) == 0 {
		return Result{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var res Result
	for _, k := range keys {
		if !c.view.Has(k) {
			c.view.SetFilter("")
			res.FilterCleared = true
			break
		}
	}

	c.view.ClearHighlights()
	for _, k := range keys {
		if c.view.SetOpen(k, true) && c.view.SetHighlighted(k, true) {
			res.Keys = append(res.Keys, k)
		}
	}

	c.stopLocked()
	gen := c.gen
	c.timer = c.sched.AfterFunc(c.duration, func() { c.expire(gen) })
	return res
}

// Clear removes all highlight flags and cancels a pending timer. Safe to
// call repeatedly.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.view.ClearHighlights()
}

// Pending reports whether a clear timer is armed.
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// WithView runs fn with exclusive access to the view.
func (c *Controller) WithView(fn func(v *glossary.View)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.view)
}

// stopLocked cancels the pending timer and invalidates its callback in case
// it already started.
func (c *Controller) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.view.ClearHighlights()
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange()
	}
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
