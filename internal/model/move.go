package model

// MoveTask removes the task from the source column and appends it to the
// end of the target column. It returns false without touching cols when
// the columns are the same, either column is missing, or the task is not
// in the source column. A task is never duplicated or dropped.
func MoveTask(cols []Column, taskID, fromColumnID, toColumnID string) bool {
	if fromColumnID == toColumnID {
		return false
	}

	from, to := -1, -1
	for i := range cols {
		switch cols[i].ID {
		case fromColumnID:
			from = i
		case toColumnID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return false
	}

	idx := -1
	for i, t := range cols[from].Tasks {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	task := cols[from].Tasks[idx]
	src := cols[from].Tasks
	cols[from].Tasks = append(src[:idx:idx], src[idx+1:]...)
	cols[to].Tasks = append(cols[to].Tasks, task)
	return true
}
