package model

// BoardPatch is a shallow partial update of a board. Nil fields are left
// untouched. IDs and columns can't be patched.
type BoardPatch struct {
	Title         *string      `json:"title,omitempty"`
	Description   *string      `json:"description,omitempty"`
	Status        *BoardStatus `json:"status,omitempty"`
	AssignedUsers *[]User      `json:"assignedUsers,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p BoardPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.AssignedUsers == nil
}

// Apply merges the non-nil fields into b.
func (p BoardPatch) Apply(b *Board) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Status != nil {
		b.Status = *p.Status
	}
	if p.AssignedUsers != nil {
		b.AssignedUsers = cloneSlice(*p.AssignedUsers)
	}
}

// TaskPatch is a shallow partial update of a task. Assignment goes through
// AssignUsers so that Assignees and AssignedUsers always change together.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Type        *TaskType `json:"type,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Comments    *int      `json:"comments,omitempty"`
	Attachments *int      `json:"attachments,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	HasImage    *bool     `json:"hasImage,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Reports     *int      `json:"reports,omitempty"`
	Views       *int      `json:"views,omitempty"`
	GroupCall   *bool     `json:"groupCall,omitempty"`
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Type == nil && p.Priority == nil &&
		p.Comments == nil && p.Attachments == nil && p.DueDate == nil &&
		p.HasImage == nil && p.Images == nil && p.Reports == nil &&
		p.Views == nil && p.GroupCall == nil
}

// Apply merges the non-nil fields into t.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Comments != nil {
		t.Comments = *p.Comments
	}
	if p.Attachments != nil {
		t.Attachments = *p.Attachments
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.HasImage != nil {
		t.HasImage = *p.HasImage
	}
	if p.Images != nil {
		t.Images = cloneSlice(*p.Images)
	}
	if p.Reports != nil {
		r := *p.Reports
		t.Reports = &r
	}
	if p.Views != nil {
		v := *p.Views
		t.Views = &v
	}
	if p.GroupCall != nil {
		t.GroupCall = *p.GroupCall
	}
}

// NewTask is a task without an id, as submitted from the add-task form.
type NewTask struct {
	Title         string   `json:"title"`
	Type          TaskType `json:"type"`
	Priority      Priority `json:"priority"`
	Assignees     int      `json:"assignees"`
	AssignedUsers []User   `json:"assignedUsers,omitempty"`
	Comments      int      `json:"comments"`
	Attachments   int      `json:"attachments"`
	DueDate       string   `json:"dueDate,omitempty"`
	HasImage      bool     `json:"hasImage,omitempty"`
	Images        []string `json:"images,omitempty"`
	Reports       *int     `json:"reports,omitempty"`
	Views         *int     `json:"views,omitempty"`
	GroupCall     bool     `json:"groupCall,omitempty"`
}

// Build turns the form values into a task with the given id. Empty type
// and priority fall back to Other/medium. When assigned users are given,
// the count is derived from them.
func (n NewTask) Build(id string) Task {
	t := Task{
		ID:          id,
		Title:       n.Title,
		Type:        n.Type,
		Priority:    n.Priority,
		Assignees:   n.Assignees,
		Comments:    n.Comments,
		Attachments: n.Attachments,
		DueDate:     n.DueDate,
		HasImage:    n.HasImage,
		Images:      cloneSlice(n.Images),
		GroupCall:   n.GroupCall,
	}
	if t.Type == "" {
		t.Type = TypeOther
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if n.AssignedUsers != nil {
		t.AssignedUsers = cloneSlice(n.AssignedUsers)
		t.Assignees = len(n.AssignedUsers)
	}
	if n.Reports != nil {
		r := *n.Reports
		t.Reports = &r
	}
	if n.Views != nil {
		v := *n.Views
		t.Views = &v
	}
	return t
}
