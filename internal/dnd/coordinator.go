// Package dnd tracks the single in-flight drag gesture of the board view.
package dnd

import "github.com/Malinga14/board-app/internal/model"

// Drag is the task being carried and the column it was picked up from.
type Drag struct {
	TaskID         string
	SourceColumnID string
}

// Coordinator holds at most one drag. It never touches storage; DropOn
// reports whether a move happened so the caller can persist it.
type Coordinator struct {
	drag   Drag
	active bool
}

// Dragged returns the active drag, if any.
func (c *Coordinator) Dragged() (Drag, bool) {
	return c.drag, c.active
}

// BeginDrag starts a drag, replacing any drag already in flight.
func (c *Coordinator) BeginDrag(taskID, sourceColumnID string) {
	c.drag = Drag{TaskID: taskID, SourceColumnID: sourceColumnID}
	c.active = true
}

// CancelDrag clears the drag state unconditionally.
func (c *Coordinator) CancelDrag() {
	c.drag = Drag{}
	c.active = false
}

// DropOn moves the dragged task to the end of the target column in cols.
// Dropping on the source column, or any failed lookup, leaves cols
// untouched. The drag ends either way.
func (c *Coordinator) DropOn(cols []model.Column, targetColumnID string) bool {
	if !c.active {
		return false
	}
	d := c.drag
	c.CancelDrag()

	if d.SourceColumnID == targetColumnID {
		return false
	}
	return model.MoveTask(cols, d.TaskID, d.SourceColumnID, targetColumnID)
}
