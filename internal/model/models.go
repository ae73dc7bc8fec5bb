package model

import "time"

// TaskType is the category shown as a coloured tag on a task card.
type TaskType string

const (
	TypeResearch     TaskType = "Research"
	TypeDesign       TaskType = "Design"
	TypeDevelopment  TaskType = "Development"
	TypeFeedback     TaskType = "Feedback"
	TypeOther        TaskType = "Other"
	TypeUXResearch   TaskType = "UX Research"
	TypeInterface    TaskType = "Interface"
	TypePresentation TaskType = "Presentation"
)

// TaskTypes lists every task category in display order.
var TaskTypes = []TaskType{
	TypeResearch,
	TypeDesign,
	TypeDevelopment,
	TypeFeedback,
	TypeOther,
	TypeUXResearch,
	TypeInterface,
	TypePresentation,
}

// Valid reports whether t is one of the known categories.
func (t TaskType) Valid() bool {
	for _, known := range TaskTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Priority of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// BoardStatus is the project status badge shown in the board header.
type BoardStatus string

const (
	BoardToDo       BoardStatus = "To Do"
	BoardInProgress BoardStatus = "In Progress"
	BoardApproved   BoardStatus = "Approved"
	BoardRejected   BoardStatus = "Rejected"
)

func (s BoardStatus) Valid() bool {
	switch s {
	case BoardToDo, BoardInProgress, BoardApproved, BoardRejected:
		return true
	}
	return false
}

// User is reference data. Records are replaced whole, never edited in place.
type User struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email,omitempty" yaml:"email"`
	Avatar string `json:"avatar,omitempty" yaml:"avatar"`
}

// Task is a card on the board. Assignees mirrors len(AssignedUsers)
// whenever AssignedUsers is set.
type Task struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Type          TaskType `json:"type"`
	Priority      Priority `json:"priority"`
	Assignees     int      `json:"assignees"`
	AssignedUsers []User   `json:"assignedUsers,omitempty"`
	Comments      int      `json:"comments"`
	Attachments   int      `json:"attachments"`
	DueDate       string   `json:"dueDate,omitempty"`
	HasImage      bool     `json:"hasImage,omitempty"`
	Images        []string `json:"images,omitempty"` // data URIs
	Reports       *int     `json:"reports,omitempty"`
	Views         *int     `json:"views,omitempty"`
	GroupCall     bool     `json:"groupCall,omitempty"`
	Avatars       []string `json:"avatars,omitempty"`
}

// Column is an ordered bucket of tasks. Order is insertion order.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
	Tasks []Task `json:"tasks"`
}

// Board owns its columns and their tasks exclusively.
type Board struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Status        BoardStatus `json:"status"`
	AssignedUsers []User      `json:"assignedUsers"`
	LastUpdated   time.Time   `json:"lastUpdated"`
	CreatedAt     time.Time   `json:"createdAt"`
	Columns       []Column    `json:"columns"`
}

// Column returns a pointer into b.Columns for the given id.
func (b *Board) Column(id string) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

// FindTask searches every column for the task id and returns the column
// index and the task index within that column.
func (b *Board) FindTask(taskID string) (col, idx int, ok bool) {
	for c := range b.Columns {
		for i := range b.Columns[c].Tasks {
			if b.Columns[c].Tasks[i].ID == taskID {
				return c, i, true
			}
		}
	}
	return 0, 0, false
}

// Touch refreshes LastUpdated. Every mutation of the board or its tasks
// must call it.
func (b *Board) Touch(now time.Time) {
	b.LastUpdated = now.UTC()
}

// TaskCount returns the number of tasks across all columns.
func (b Board) TaskCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Tasks)
	}
	return n
}

// Clone returns a deep copy so callers can't alias the store's slices.
func (b Board) Clone() Board {
	out := b
	out.AssignedUsers = cloneSlice(b.AssignedUsers)
	out.Columns = make([]Column, len(b.Columns))
	for i, c := range b.Columns {
		out.Columns[i] = c
		out.Columns[i].Tasks = make([]Task, len(c.Tasks))
		for j, t := range c.Tasks {
			out.Columns[i].Tasks[j] = t.Clone()
		}
	}
	return out
}

func (t Task) Clone() Task {
	out := t
	out.AssignedUsers = cloneSlice(t.AssignedUsers)
	out.Images = cloneSlice(t.Images)
	out.Avatars = cloneSlice(t.Avatars)
	if t.Reports != nil {
		r := *t.Reports
		out.Reports = &r
	}
	if t.Views != nil {
		v := *t.Views
		out.Views = &v
	}
	return out
}

// cloneSlice copies s, keeping nil and empty distinct.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
