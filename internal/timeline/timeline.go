// Package timeline implements the playback state machine for the era
// slider: a bounded current year, a play flag advanced on a fixed
// cadence, and jump/scrub operations that always pause playback.
package timeline

import (
	"sync"
	"time"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/history"
)

// TickInterval is the wall-clock period between automatic year
// advances while playing.
const TickInterval = 100 * time.Millisecond

// State is a snapshot of the controller.
type State struct {
	Year          int                     `json:"year"`
	Playing       bool                    `json:"playing"`
	SelectedEvent *domain.HistoricalEvent `json:"selected_event,omitempty"`
}

// Controller holds the current year and play flag. All methods are
// safe for concurrent use and return the resulting state.
type Controller struct {
	mu       sync.Mutex
	year     int
	playing  bool
	selected *domain.HistoricalEvent
}

// NewController starts at the beginning of the era, paused.
func NewController() *Controller {
	return &Controller{year: history.MinYear}
}

func (c *Controller) snapshotLocked() State {
	st := State{Year: c.year, Playing: c.playing}
	if c.selected != nil {
		ev := *c.selected
		st.SelectedEvent = &ev
	}
	return st
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Tick advances the year by one while playing. Reaching the end of the
// era clamps the year and stops playback. A tick while paused is a
// no-op.
func (c *Controller) Tick() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return c.snapshotLocked()
	}
	if c.year >= history.MaxYear {
		c.year = history.MaxYear
		c.playing = false
		return c.snapshotLocked()
	}
	c.year++
	if c.year >= history.MaxYear {
		c.year = history.MaxYear
		c.playing = false
	}
	return c.snapshotLocked()
}

// SetYear scrubs to the given year, clamped into the era. Manual
// intervention always pauses playback.
func (c *Controller) SetYear(year int) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.year = history.ClampYear(year)
	c.playing = false
	return c.snapshotLocked()
}

// JumpToEvent scrubs to the event's year and marks it selected for
// detail display.
func (c *Controller) JumpToEvent(e domain.HistoricalEvent) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.year = history.ClampYear(e.Year)
	c.playing = false
	ev := e
	c.selected = &ev
	return c.snapshotLocked()
}

// ClearSelection drops the selected event.
func (c *Controller) ClearSelection() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
	return c.snapshotLocked()
}

// TogglePlay flips the play flag.
func (c *Controller) TogglePlay() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = !c.playing
	return c.snapshotLocked()
}

// Playing reports whether playback is active.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}
