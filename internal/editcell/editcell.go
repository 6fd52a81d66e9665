// Package editcell implements the edit lifecycle of a single table cell:
// viewing, editing a draft, and saving through a caller-supplied persist
// function. Invalid input cancels the edit rather than erroring, so a stray
// keystroke never corrupts the committed value.
package editcell

import (
	"context"
	"errors"
)

// State is the lifecycle phase of a cell.
type State int

const (
	// Viewing shows the committed value. The only state with no draft.
	Viewing State = iota
	// Editing holds a draft that has not been persisted.
	Editing
	// Saving is the in-flight persist of a confirmed draft.
	Saving
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "VIEWING"
	case Editing:
		return "EDITING"
	case Saving:
		return "SAVING"
	default:
		return "UNKNOWN"
	}
}

// ErrNotEditing is returned when Confirm or SetDraft is called outside Editing.
var ErrNotEditing = errors.New("cell is not being edited")

// SaveFunc persists a confirmed value. A non-nil error leaves the cell in
// Editing with its draft intact so the user can retry or cancel.
type SaveFunc[T any] func(ctx context.Context, value T) error

// Cell tracks one editable value of type T through the edit lifecycle.
// A zero Cell is Viewing with T's zero value; NewCell sets the initial
// committed value and save function. Cell is not safe for concurrent use.
type Cell[T any] struct {
	state     State
	committed T
	draft     string
	disabled  bool
	parse     func(string) (T, bool)
	save      SaveFunc[T]
}

// NewCell creates a Viewing cell. parse maps raw draft input to a value,
// reporting false for input that should silently cancel the edit.
func NewCell[T any](initial T, parse func(string) (T, bool), save SaveFunc[T]) *Cell[T] {
	return &Cell[T]{
		committed: initial,
		parse:     parse,
		save:      save,
	}
}

// State returns the current lifecycle phase.
func (c *Cell[T]) State() State { return c.state }

// Value returns the committed value. Drafts are invisible here until saved.
func (c *Cell[T]) Value() T { return c.committed }

// Draft returns the raw draft input, empty outside Editing.
func (c *Cell[T]) Draft() string { return c.draft }

// SetDisabled blocks or unblocks editing. Disabling does not interrupt an
// edit already in progress.
func (c *Cell[T]) SetDisabled(disabled bool) {
	c.disabled = disabled
}

// Disabled reports whether the cell refuses to enter Editing.
func (c *Cell[T]) Disabled() bool { return c.disabled }

// BeginEdit moves a Viewing cell into Editing with the given initial draft.
// A no-op when disabled or in any other state: an in-flight save cannot be
// interrupted.
func (c *Cell[T]) BeginEdit(draft string) {
	if c.disabled || c.state != Viewing {
		return
	}
	c.state = Editing
	c.draft = draft
}

// SetDraft replaces the draft while Editing.
func (c *Cell[T]) SetDraft(draft string) error {
	if c.state != Editing {
		return ErrNotEditing
	}
	c.draft = draft
	return nil
}

// Cancel discards the draft and returns to Viewing. The committed value is
// untouched. Cancelling a Saving cell is a no-op; the save outcome decides.
func (c *Cell[T]) Cancel() {
	if c.state != Editing {
		return
	}
	c.state = Viewing
	c.draft = ""
}

// Confirm parses the draft and persists it. Unparseable input cancels the
// edit silently with no error and no save call. On save failure the cell
// stays in Editing with the draft intact. On success the value is committed
// and the cell returns to Viewing.
func (c *Cell[T]) Confirm(ctx context.Context) error {
	if c.state != Editing {
		return ErrNotEditing
	}

	value, ok := c.parse(c.draft)
	if !ok {
		c.Cancel()
		return nil
	}

	c.state = Saving
	if c.save != nil {
		if err := c.save(ctx, value); err != nil {
			c.state = Editing
			return err
		}
	}

	c.committed = value
	c.state = Viewing
	c.draft = ""
	return nil
}
