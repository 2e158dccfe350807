package timeline

import (
	"fmt"
	"sync"
	"time"

	"weathermap.app/internal/ports"
	"weathermap.app/pkg/errors"
)

// Controller holds the fixed slot list, the selected index and the play flag.
// Slots are computed once at construction.
type Controller struct {
	logger   ports.Logger
	location *time.Location

	mu        sync.Mutex
	slots     []Slot
	selected  int
	playing   bool
	listeners []func(ts int64)
}

type ControllerDependencies struct {
	Logger ports.Logger
	Now    func() time.Time
}

func NewController(deps ControllerDependencies) (*Controller, error) {
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	start := now()

	return &Controller{
		logger:   deps.Logger,
		location: start.Location(),
		slots:    BuildSlots(start),
	}, nil
}

// OnTimeChange registers a callback invoked with the slot timestamp on every selection.
func (c *Controller) OnTimeChange(fn func(ts int64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Select moves to index and notifies listeners.
func (c *Controller) Select(index int) (Slot, error) {
	c.mu.Lock()
	if index < 0 || index >= len(c.slots) {
		c.mu.Unlock()
		return Slot{}, errors.NewValidationError(fmt.Sprintf("slot index must be between 0 and %d", len(c.slots)-1))
	}
	c.selected = index
	slot := c.slots[index]
	listeners := append([]func(int64){}, c.listeners...)
	c.mu.Unlock()

	c.logger.Debug("Timeline slot selected",
		ports.F("index", index),
		ports.F("label", slot.Label))

	for _, fn := range listeners {
		fn(slot.Timestamp)
	}
	return slot, nil
}

// Next selects the following slot. At the last slot it does nothing.
func (c *Controller) Next() (Slot, bool) {
	c.mu.Lock()
	idx := c.selected
	c.mu.Unlock()
	if idx >= SlotCount-1 {
		return c.Selected(), false
	}
	slot, err := c.Select(idx + 1)
	return slot, err == nil
}

// Previous selects the preceding slot. At the first slot it does nothing.
func (c *Controller) Previous() (Slot, bool) {
	c.mu.Lock()
	idx := c.selected
	c.mu.Unlock()
	if idx <= 0 {
		return c.Selected(), false
	}
	slot, err := c.Select(idx - 1)
	return slot, err == nil
}

// Advance moves to the next slot, wrapping to the first after the last.
func (c *Controller) Advance() Slot {
	c.mu.Lock()
	next := (c.selected + 1) % len(c.slots)
	c.mu.Unlock()
	slot, _ := c.Select(next)
	return slot
}

func (c *Controller) SetPlaying(playing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = playing
}

// TogglePlay flips the play flag and returns the new value.
func (c *Controller) TogglePlay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = !c.playing
	return c.playing
}

func (c *Controller) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

func (c *Controller) Selected() Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slots[c.selected]
}

func (c *Controller) SelectedIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Controller) Slots() []Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Slot{}, c.slots...)
}

// Tint returns the overlay colour for an epoch-millisecond timestamp in the controller's zone.
func (c *Controller) Tint(ts int64) Tint {
	return TintFor(time.UnixMilli(ts).In(c.location))
}
