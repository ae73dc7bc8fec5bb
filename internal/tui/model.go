package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Malinga14/board-app/internal/app"
	"github.com/Malinga14/board-app/internal/dnd"
	"github.com/Malinga14/board-app/internal/model"
	"github.com/Malinga14/board-app/internal/seed"
)

// popup is the dialog drawn over the board, if any.
type popup int

const (
	popupNone popup = iota
	popupAddTask
	popupEditTask
	popupConfirmDelete
	popupAssign
	popupNewBoard
	popupSearch
)

// Model is the top-level bubbletea model.
type Model struct {
	state *app.State
	drag  *dnd.Coordinator
	log   *logrus.Logger

	width  int
	height int

	// Board cursor: column index and card index within it.
	cursorCol int
	cursorRow int

	popup        popup
	textInput    textinput.Model
	textInput2   textinput.Model
	inputFocused int

	// Add and edit task form.
	addColumnID  string
	formType     model.TaskType
	formPriority model.Priority

	// Task targeted by edit, delete or assign.
	popupTaskID string

	// User picker. When pickColumnID is set the selection goes to every
	// task of that column.
	pickColumnID string
	pickCursor   int
	picked       map[string]bool

	statusMsg  string
	statusTime time.Time

	quitting bool
}

// New creates the TUI model. The state must already be initialized.
func New(state *app.State, log *logrus.Logger) Model {
	ti := textinput.New()
	ti.CharLimit = 120
	ti.Width = 50

	ti2 := textinput.New()
	ti2.CharLimit = 500
	ti2.Width = 50

	return Model{
		state:        state,
		drag:         &dnd.Coordinator{},
		log:          log,
		textInput:    ti,
		textInput2:   ti2,
		formType:     model.TypeOther,
		formPriority: model.PriorityMedium,
		picked:       map[string]bool{},
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(state *app.State, log *logrus.Logger) error {
	p := tea.NewProgram(New(state, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusTime = time.Now()
}

// columns are the current board's columns as shown, after search filtering.
func (m Model) columns() []model.Column {
	return m.state.VisibleColumns()
}

func (m *Model) clampCursor() {
	cols := m.columns()
	if m.cursorCol >= len(cols) {
		m.cursorCol = len(cols) - 1
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if len(cols) == 0 {
		m.cursorRow = 0
		return
	}
	if n := len(cols[m.cursorCol].Tasks); m.cursorRow >= n {
		m.cursorRow = n - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
}

// selected returns the card under the cursor and its column.
func (m Model) selected() (model.Task, model.Column, bool) {
	cols := m.columns()
	if m.cursorCol >= len(cols) {
		return model.Task{}, model.Column{}, false
	}
	col := cols[m.cursorCol]
	if m.cursorRow >= len(col.Tasks) {
		return model.Task{}, col, false
	}
	return col.Tasks[m.cursorRow], col, true
}

// pickerUsers is the directory filtered by the picker's search box.
func (m Model) pickerUsers() []model.User {
	return seed.SearchUsers(seed.Users(), m.textInput.Value())
}

func (m Model) pickedUsers() []model.User {
	users := []model.User{}
	for _, u := range seed.Users() {
		if m.picked[u.ID] {
			users = append(users, u)
		}
	}
	return users
}
