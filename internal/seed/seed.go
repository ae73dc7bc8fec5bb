// Package seed holds the static dataset used to populate an empty
// workspace: the user directory and the default "Sport Xi Project" board.
package seed

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Malinga14/board-app/internal/model"
)

//go:embed seed.yaml
var seedYAML []byte

type dataset struct {
	Users []model.User `yaml:"users"`
	Board seedBoard    `yaml:"board"`
}

type seedBoard struct {
	Title         string       `yaml:"title"`
	Description   string       `yaml:"description"`
	Status        string       `yaml:"status"`
	AssignedUsers []string     `yaml:"assigned_users"`
	Columns       []seedColumn `yaml:"columns"`
}

type seedColumn struct {
	ID    string     `yaml:"id"`
	Title string     `yaml:"title"`
	Color string     `yaml:"color"`
	Tasks []seedTask `yaml:"tasks"`
}

type seedTask struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Tags        []string `yaml:"tags"`
	Priority    string   `yaml:"priority"`
	Assignees   []string `yaml:"assignees"`
	Comments    int      `yaml:"comments"`
	Attachments int      `yaml:"attachments"`
	DueDate     string   `yaml:"due_date"`
	Image       bool     `yaml:"image"`
	Reports     *int     `yaml:"reports"`
	Views       *int     `yaml:"views"`
	GroupCall   bool     `yaml:"group_call"`
}

// data is parsed once; the embedded file is part of the binary so a parse
// failure is a build defect.
var data = mustParse(seedYAML)

func mustParse(raw []byte) dataset {
	d, err := parse(raw)
	if err != nil {
		panic(err)
	}
	return d
}

func parse(raw []byte) (dataset, error) {
	var d dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return dataset{}, fmt.Errorf("parse seed: %w", err)
	}
	return d, nil
}

// Users returns a copy of the user directory.
func Users() []model.User {
	return append([]model.User(nil), data.Users...)
}

// UserByID looks a user up in the directory.
func UserByID(id string) (model.User, bool) {
	for _, u := range data.Users {
		if u.ID == id {
			return u, true
		}
	}
	return model.User{}, false
}

// ResolveUsers maps ids to directory users, failing on the first unknown id.
func ResolveUsers(ids []string) ([]model.User, error) {
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		u, ok := UserByID(id)
		if !ok {
			return nil, fmt.Errorf("unknown user %q", id)
		}
		users = append(users, u)
	}
	return users, nil
}

// SearchUsers keeps the users whose name or email contains term,
// ignoring case. An empty term keeps everyone.
func SearchUsers(users []model.User, term string) []model.User {
	q := strings.ToLower(strings.TrimSpace(term))
	var out []model.User
	for _, u := range users {
		if q == "" ||
			strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}

// DefaultBoard builds the seeded board with a fresh id.
func DefaultBoard(now time.Time) model.Board {
	sb := data.Board

	status := model.BoardStatus(sb.Status)
	if !status.Valid() {
		status = model.BoardInProgress
	}

	b := model.Board{
		ID:            model.NewBoardID(now),
		Title:         sb.Title,
		Description:   sb.Description,
		Status:        status,
		AssignedUsers: lookupUsers(sb.AssignedUsers),
		LastUpdated:   now.UTC(),
		CreatedAt:     now.UTC(),
		Columns:       make([]model.Column, 0, len(sb.Columns)),
	}
	for _, sc := range sb.Columns {
		col := model.Column{ID: sc.ID, Title: sc.Title, Color: sc.Color, Tasks: make([]model.Task, 0, len(sc.Tasks))}
		for _, st := range sc.Tasks {
			col.Tasks = append(col.Tasks, st.toTask())
		}
		b.Columns = append(b.Columns, col)
	}
	return b
}

func (st seedTask) toTask() model.Task {
	users := lookupUsers(st.Assignees)
	avatars := make([]string, 0, len(users))
	for _, u := range users {
		if u.Avatar != "" {
			avatars = append(avatars, u.Avatar)
		}
	}

	attachments := st.Attachments
	if st.Image && attachments == 0 {
		attachments = 1
	}

	priority := model.Priority(st.Priority)
	if !priority.Valid() {
		priority = model.PriorityMedium
	}

	t := model.Task{
		ID:            st.ID,
		Title:         st.Title,
		Type:          TypeFromTags(st.Tags),
		Priority:      priority,
		Assignees:     len(users),
		AssignedUsers: users,
		Comments:      st.Comments,
		Attachments:   attachments,
		DueDate:       st.DueDate,
		HasImage:      st.Image,
		GroupCall:     st.GroupCall,
		Avatars:       avatars,
	}
	if st.Reports != nil {
		r := *st.Reports
		t.Reports = &r
	}
	if st.Views != nil {
		v := *st.Views
		t.Views = &v
	}
	return t
}

func lookupUsers(ids []string) []model.User {
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := UserByID(id); ok {
			users = append(users, u)
		}
	}
	return users
}

// TypeFromTags maps the first tag of a seed task to a task category.
func TypeFromTags(tags []string) model.TaskType {
	if len(tags) == 0 {
		return model.TypeOther
	}
	switch strings.ToLower(tags[0]) {
	case "design":
		return model.TypeDesign
	case "research":
		return model.TypeResearch
	case "development":
		return model.TypeDevelopment
	case "feedback":
		return model.TypeFeedback
	case "ux research":
		return model.TypeUXResearch
	case "interface":
		return model.TypeInterface
	case "presentation":
		return model.TypePresentation
	default:
		return model.TypeOther
	}
}
