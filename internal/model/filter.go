package model

import "strings"

// FilterColumns returns a copy of cols keeping only tasks whose title,
// type or assignee names contain query (case-insensitive). An empty query
// keeps everything. Columns are always kept so the board layout is stable.
func FilterColumns(cols []Column, query string) []Column {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = c
		out[i].Tasks = make([]Task, 0, len(c.Tasks))
		for _, t := range c.Tasks {
			if q == "" || t.matches(q) {
				out[i].Tasks = append(out[i].Tasks, t)
			}
		}
	}
	return out
}

func (t Task) matches(q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(string(t.Type)), q) {
		return true
	}
	for _, u := range t.AssignedUsers {
		if strings.Contains(strings.ToLower(u.Name), q) {
			return true
		}
	}
	return false
}

// ParseTaskType matches s against the known categories, ignoring case.
func ParseTaskType(s string) (TaskType, bool) {
	for _, t := range TaskTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}
