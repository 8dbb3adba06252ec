package oi

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Names of the pre-match choosers.
const (
	AutonomousChooserName = "Autonomous"
	PositionChooserName   = "Starting_Position"
)

type choice[T any] struct {
	name  string
	value T
}

// A Chooser offers named options to the drive team before a match. Until a
// selection is made the default option is selected.
type Chooser[T any] struct {
	name string

	mu         sync.Mutex
	options    []choice[T]
	defaultIdx int
	selected   int
}

// NewChooser returns an empty chooser.
func NewChooser[T any](name string) *Chooser[T] {
	return &Chooser[T]{name: name, defaultIdx: -1, selected: -1}
}

// Name returns the chooser name.
func (c *Chooser[T]) Name() string {
	return c.name
}

// AddDefault adds an option and makes it the default.
func (c *Chooser[T]) AddDefault(name string, value T) *Chooser[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options = append(c.options, choice[T]{name: name, value: value})
	c.defaultIdx = len(c.options) - 1
	return c
}

// AddOption adds an option.
func (c *Chooser[T]) AddOption(name string, value T) *Chooser[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.options = append(c.options, choice[T]{name: name, value: value})
	return c
}

// Options returns the option names in insertion order.
func (c *Chooser[T]) Options() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Map(c.options, func(o choice[T], _ int) string { return o.name })
}

// Select selects the option called name.
func (c *Chooser[T]) Select(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, idx, ok := lo.FindIndexOf(c.options, func(o choice[T]) bool { return o.name == name })
	if !ok {
		return errors.Errorf("chooser %q has no option %q; options are %v",
			c.name, name, lo.Map(c.options, func(o choice[T], _ int) string { return o.name }))
	}
	c.selected = idx
	return nil
}

// Selected returns the selected value, the default when nothing was
// selected, and the zero value for a chooser without a default.
func (c *Chooser[T]) Selected() T {
	v, _ := c.selectedChoice()
	return v.value
}

// SelectedName returns the name of the selected option.
func (c *Chooser[T]) SelectedName() string {
	v, _ := c.selectedChoice()
	return v.name
}

func (c *Chooser[T]) selectedChoice() (choice[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.selected
	if idx < 0 {
		idx = c.defaultIdx
	}
	if idx < 0 {
		return choice[T]{}, false
	}
	return c.options[idx], true
}

// NewPositionChooser returns the starting position chooser: 1, 2 or 3,
// defaulting to 1.
func NewPositionChooser() *Chooser[int] {
	return NewChooser[int](PositionChooserName).
		AddDefault("1", 1).
		AddOption("2", 2).
		AddOption("3", 3)
}
