package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Malinga14/board-app/internal/app"
	"github.com/Malinga14/board-app/internal/model"
	"github.com/Malinga14/board-app/internal/store"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.popup != popupNone {
			return m.handlePopupKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Pick up writes from the API server or another terminal.
		if m.popup == popupNone {
			m.state.Refresh()
			m.clampCursor()
		}
		if m.statusMsg != "" && time.Since(m.statusTime) > 5*time.Second {
			m.statusMsg = ""
		}
		return m, tickCmd()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "tab":
		m.drag.CancelDrag()
		m.state.NextContent()
		return m, nil
	}

	if m.state.ActiveContent() != app.ContentBoards {
		return m, nil
	}

	if _, dragging := m.drag.Dragged(); dragging {
		return m.handleDragKey(msg)
	}
	return m.handleBoardKey(msg)
}

// --- Board keys ---

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	// Navigation.
	case "j", "down":
		m.cursorRow++
		m.clampCursor()
	case "k", "up":
		m.cursorRow--
		m.clampCursor()
	case "l", "right":
		m.cursorCol++
		m.clampCursor()
	case "h", "left":
		m.cursorCol--
		m.clampCursor()

	case "b", "B":
		delta := 1
		if msg.String() == "B" {
			delta = -1
		}
		if b, ok := m.state.StepBoard(delta); ok {
			m.cursorCol, m.cursorRow = 0, 0
			m.setStatus("Switched to " + b.Title)
		}

	case " ":
		task, col, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.drag.BeginDrag(task.ID, col.ID)
		m.setStatus("Carrying \"" + task.Title + "\": move with ←/→, drop with space")

	case "a":
		cols := m.columns()
		if len(cols) == 0 {
			m.setStatus("No board selected")
			return m, nil
		}
		m.addColumnID = cols[m.cursorCol].ID
		m.formType = model.TypeOther
		m.formPriority = model.PriorityMedium
		return m.openInput(popupAddTask, "Task title...", "")

	case "e":
		task, _, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.popupTaskID = task.ID
		m.formType = task.Type
		m.formPriority = task.Priority
		m.textInput2.SetValue(task.DueDate)
		m.textInput2.Placeholder = "Due date, e.g. Dec 12..."
		m.textInput2.Blur()
		m.inputFocused = 0
		return m.openInput(popupEditTask, "Task title...", task.Title)

	case "x":
		task, _, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.popupTaskID = task.ID
		m.popup = popupConfirmDelete

	case "u":
		task, _, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.popupTaskID = task.ID
		m.pickColumnID = ""
		m.picked = map[string]bool{}
		for _, u := range task.AssignedUsers {
			m.picked[u.ID] = true
		}
		m.pickCursor = 0
		return m.openInput(popupAssign, "Search users...", "")

	case "U":
		cols := m.columns()
		if len(cols) == 0 {
			return m, nil
		}
		m.popupTaskID = ""
		m.pickColumnID = cols[m.cursorCol].ID
		m.picked = map[string]bool{}
		m.pickCursor = 0
		return m.openInput(popupAssign, "Search users...", "")

	case "n":
		m.textInput2.SetValue("")
		m.textInput2.Placeholder = "Description (optional)..."
		m.textInput2.Blur()
		m.inputFocused = 0
		return m.openInput(popupNewBoard, "Board title...", "")

	case "/":
		return m.openInput(popupSearch, "Search tasks...", m.state.SearchQuery())

	case "esc":
		if m.state.SearchQuery() != "" {
			m.state.SetSearchQuery("")
			m.clampCursor()
		}
	}
	return m, nil
}

// --- Drag keys ---

func (m Model) handleDragKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "l", "right":
		m.cursorCol++
		m.clampCursor()
	case "h", "left":
		m.cursorCol--
		m.clampCursor()
	case " ", "enter":
		return m.drop()
	case "esc":
		m.drag.CancelDrag()
		m.setStatus("Drag cancelled")
	}
	return m, nil
}

// drop releases the carried card over the column under the cursor and
// persists the move.
func (m Model) drop() (tea.Model, tea.Cmd) {
	d, ok := m.drag.Dragged()
	if !ok {
		return m, nil
	}
	b, ok := m.state.CurrentBoard()
	cols := m.columns()
	if !ok || m.cursorCol >= len(cols) {
		m.drag.CancelDrag()
		return m, nil
	}
	target := cols[m.cursorCol]

	if !m.drag.DropOn(b.Columns, target.ID) {
		return m, nil
	}
	if err := m.state.Store().MoveTask(b.ID, d.TaskID, target.ID); err != nil {
		m.report("move task", err)
	} else {
		m.setStatus("Moved to " + target.Title)
	}

	m.state.Refresh()
	m.focusTask(d.TaskID)
	return m, nil
}

// focusTask puts the cursor on the given card if it's visible.
func (m *Model) focusTask(taskID string) {
	for c, col := range m.columns() {
		for r, t := range col.Tasks {
			if t.ID == taskID {
				m.cursorCol, m.cursorRow = c, r
				return
			}
		}
	}
	m.clampCursor()
}

// report surfaces failed writes. A vanished board or task means another
// writer got there first, so it is only logged.
func (m *Model) report(op string, err error) {
	if errors.Is(err, store.ErrBoardNotFound) || errors.Is(err, store.ErrTaskNotFound) {
		m.log.WithError(err).WithField("op", op).Warn("target no longer exists")
		return
	}
	m.setStatus("Failed to " + op + ": " + err.Error())
}

func (m Model) openInput(p popup, placeholder, value string) (tea.Model, tea.Cmd) {
	m.popup = p
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.CursorEnd()
	m.textInput.Focus()
	return m, textinput.Blink
}

func (m Model) closePopup() Model {
	m.popup = popupNone
	m.textInput.Blur()
	m.textInput2.Blur()
	return m
}

// --- Popups ---

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.popup {
	case popupAddTask:
		return m.handleAddTaskPopup(msg)
	case popupEditTask:
		return m.handleEditTaskPopup(msg)
	case popupConfirmDelete:
		return m.handleConfirmDeletePopup(msg)
	case popupAssign:
		return m.handleAssignPopup(msg)
	case popupNewBoard:
		return m.handleNewBoardPopup(msg)
	case popupSearch:
		return m.handleSearchPopup(msg)
	}
	return m, nil
}

func (m Model) handleAddTaskPopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closePopup(), nil
	case "ctrl+t":
		m.formType = nextType(m.formType)
		return m, nil
	case "ctrl+p":
		m.formPriority = nextPriority(m.formPriority)
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.textInput.Value())
		if title == "" {
			m.setStatus("Title cannot be empty")
			return m, nil
		}
		b, ok := m.state.CurrentBoard()
		if !ok {
			m.setStatus("Failed to add task: no board selected")
			return m.closePopup(), nil
		}
		task, err := m.state.Store().AddTask(b.ID, m.addColumnID, model.NewTask{
			Title:    title,
			Type:     m.formType,
			Priority: m.formPriority,
		})
		m = m.closePopup()
		if err != nil {
			m.setStatus("Failed to add task: " + err.Error())
			return m, nil
		}
		m.state.Refresh()
		m.focusTask(task.ID)
		m.setStatus("Added \"" + task.Title + "\"")
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) handleEditTaskPopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closePopup(), nil
	case "tab":
		return m.toggleInputFocus(), textinput.Blink
	case "ctrl+t":
		m.formType = nextType(m.formType)
		return m, nil
	case "ctrl+p":
		m.formPriority = nextPriority(m.formPriority)
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.textInput.Value())
		if title == "" {
			m.setStatus("Title cannot be empty")
			return m, nil
		}
		due := strings.TrimSpace(m.textInput2.Value())
		patch := model.TaskPatch{
			Title:    &title,
			Type:     &m.formType,
			Priority: &m.formPriority,
			DueDate:  &due,
		}
		m = m.closePopup()
		if err := m.state.Store().UpdateTask(m.state.ActiveBoardID(), m.popupTaskID, patch); err != nil {
			m.report("update task", err)
		} else {
			m.setStatus("Updated \"" + title + "\"")
		}
		m.state.Refresh()
		m.clampCursor()
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleConfirmDeletePopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m = m.closePopup()
		if err := m.state.Store().DeleteTask(m.state.ActiveBoardID(), m.popupTaskID); err != nil {
			m.report("delete task", err)
		} else {
			m.setStatus("Task deleted")
		}
		m.state.Refresh()
		m.clampCursor()
	case "n", "esc":
		return m.closePopup(), nil
	}
	return m, nil
}

func (m Model) handleAssignPopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closePopup(), nil
	case "up":
		if m.pickCursor > 0 {
			m.pickCursor--
		}
		return m, nil
	case "down":
		if m.pickCursor < len(m.pickerUsers())-1 {
			m.pickCursor++
		}
		return m, nil
	case " ":
		users := m.pickerUsers()
		if m.pickCursor < len(users) {
			id := users[m.pickCursor].ID
			m.picked[id] = !m.picked[id]
		}
		return m, nil
	case "enter":
		users := m.pickedUsers()
		boardID := m.state.ActiveBoardID()
		m = m.closePopup()
		if m.pickColumnID != "" {
			n, err := m.state.Store().AssignColumnUsers(boardID, m.pickColumnID, users)
			if err != nil {
				m.report("assign column", err)
			} else {
				m.setStatus("Assigned " + strconv.Itoa(len(users)) + " users to " + strconv.Itoa(n) + " tasks")
			}
		} else if err := m.state.Store().AssignUsers(boardID, m.popupTaskID, users); err != nil {
			m.report("assign users", err)
		} else {
			m.setStatus("Assigned " + strconv.Itoa(len(users)) + " users")
		}
		m.state.Refresh()
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if n := len(m.pickerUsers()); m.pickCursor >= n {
		m.pickCursor = max(n-1, 0)
	}
	return m, cmd
}

func (m Model) handleNewBoardPopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closePopup(), nil
	case "tab":
		return m.toggleInputFocus(), textinput.Blink
	case "enter":
		title := strings.TrimSpace(m.textInput.Value())
		if title == "" {
			m.setStatus("Title cannot be empty")
			return m, nil
		}
		desc := strings.TrimSpace(m.textInput2.Value())
		m = m.closePopup()
		b, err := m.state.CreateBoard(title, desc, nil)
		if err != nil {
			m.setStatus("Failed to create board: " + err.Error())
			return m, nil
		}
		m.cursorCol, m.cursorRow = 0, 0
		m.setStatus("Created board " + b.Title)
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

// Two-field popups: tab moves focus between the inputs.
func (m Model) toggleInputFocus() Model {
	if m.inputFocused == 0 {
		m.textInput.Blur()
		m.textInput2.Focus()
		m.inputFocused = 1
	} else {
		m.textInput2.Blur()
		m.textInput.Focus()
		m.inputFocused = 0
	}
	return m
}

func (m Model) updateFocusedInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.inputFocused == 0 {
		m.textInput, cmd = m.textInput.Update(msg)
	} else {
		m.textInput2, cmd = m.textInput2.Update(msg)
	}
	return m, cmd
}

// The board filters live while the query is typed.
func (m Model) handleSearchPopup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state.SetSearchQuery("")
		m = m.closePopup()
		m.clampCursor()
		return m, nil
	case "enter":
		m = m.closePopup()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.state.SetSearchQuery(m.textInput.Value())
	m.clampCursor()
	return m, cmd
}

func nextType(t model.TaskType) model.TaskType {
	for i, known := range model.TaskTypes {
		if known == t {
			return model.TaskTypes[(i+1)%len(model.TaskTypes)]
		}
	}
	return model.TypeOther
}

func nextPriority(p model.Priority) model.Priority {
	switch p {
	case model.PriorityHigh:
		return model.PriorityMedium
	case model.PriorityMedium:
		return model.PriorityLow
	default:
		return model.PriorityHigh
	}
}
