// Package app holds the view state shared by the presentation layers:
// the active content section, the search query and the active board.
package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Malinga14/board-app/internal/model"
	"github.com/Malinga14/board-app/internal/storage"
	"github.com/Malinga14/board-app/internal/store"
)

// ContentType is the sidebar section being shown.
type ContentType string

const (
	ContentDashboard   ContentType = "dashboard"
	ContentBoards      ContentType = "boards"
	ContentMessages    ContentType = "messages"
	ContentCalendar    ContentType = "calendar"
	ContentTeamMembers ContentType = "team-members"
	ContentSupport     ContentType = "support"
)

// Contents lists every section in sidebar order.
var Contents = []ContentType{
	ContentDashboard,
	ContentBoards,
	ContentMessages,
	ContentCalendar,
	ContentTeamMembers,
	ContentSupport,
}

var ErrUnknownContent = errors.New("unknown content section")

// ParseContent validates a section name.
func ParseContent(s string) (ContentType, error) {
	for _, c := range Contents {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownContent, s)
}

// State is passed to every view. Setters update memory and, for the active
// board, persistence.
type State struct {
	mu      sync.RWMutex
	store   *store.Store
	p       *storage.Persistence
	log     *logrus.Logger
	content ContentType
	query   string
	active  string
	boards  []model.Board
}

func New(s *store.Store, p *storage.Persistence, log *logrus.Logger) *State {
	return &State{store: s, p: p, log: log, content: ContentBoards}
}

// Store returns the board store behind the state.
func (st *State) Store() *store.Store {
	return st.store
}

func (st *State) ActiveContent() ContentType {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.content
}

func (st *State) SetActiveContent(c ContentType) error {
	if _, err := ParseContent(string(c)); err != nil {
		return err
	}
	st.mu.Lock()
	st.content = c
	st.mu.Unlock()
	return nil
}

// NextContent cycles to the following sidebar section.
func (st *State) NextContent() ContentType {
	st.mu.Lock()
	defer st.mu.Unlock()
	for i, c := range Contents {
		if c == st.content {
			st.content = Contents[(i+1)%len(Contents)]
			break
		}
	}
	return st.content
}

func (st *State) SearchQuery() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.query
}

func (st *State) SetSearchQuery(q string) {
	st.mu.Lock()
	st.query = q
	st.mu.Unlock()
}

func (st *State) ActiveBoardID() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.active
}

// SetActiveBoardID switches boards and persists the choice. The id isn't
// checked against the board list.
func (st *State) SetActiveBoardID(id string) {
	st.mu.Lock()
	st.active = id
	st.mu.Unlock()
	st.p.SetActiveID(id)
	st.log.WithField("board_id", id).Debug("active board changed")
}

// Initialize seeds storage if needed and restores the saved active board.
// A saved id that no longer matches a board falls back to the first board.
func (st *State) Initialize() {
	boards := st.p.Initialize()

	st.mu.Lock()
	st.boards = boards
	saved, ok := st.p.ActiveID()
	switch {
	case ok && indexOf(boards, saved) >= 0:
		st.active = saved
		st.mu.Unlock()
	case len(boards) > 0:
		st.active = boards[0].ID
		st.mu.Unlock()
		st.p.SetActiveID(boards[0].ID)
	default:
		st.active = ""
		st.mu.Unlock()
	}
}

// Reset wipes storage, reseeds and restores the view state from it.
// Development use only.
func (st *State) Reset() {
	st.p.Reset()
	st.Initialize()
	st.SetSearchQuery("")
}

// Refresh reloads the board list from the store.
func (st *State) Refresh() []model.Board {
	boards := st.store.Boards()
	st.mu.Lock()
	st.boards = boards
	st.mu.Unlock()
	return boards
}

// Boards returns the list as of the last Initialize or Refresh.
func (st *State) Boards() []model.Board {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]model.Board, len(st.boards))
	for i, b := range st.boards {
		out[i] = b.Clone()
	}
	return out
}

// CurrentBoard returns the active board from the cached list.
func (st *State) CurrentBoard() (model.Board, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	i := indexOf(st.boards, st.active)
	if i < 0 {
		return model.Board{}, false
	}
	return st.boards[i].Clone(), true
}

// CreateBoard creates a board and makes it active.
func (st *State) CreateBoard(title, description string, users []model.User) (model.Board, error) {
	b, err := st.store.CreateBoard(title, description, users)
	if err != nil {
		return model.Board{}, err
	}
	st.Refresh()
	st.SetActiveBoardID(b.ID)
	return b, nil
}

// VisibleColumns returns the current board's columns filtered by the
// search query. Nil when no board is active.
func (st *State) VisibleColumns() []model.Column {
	b, ok := st.CurrentBoard()
	if !ok {
		return nil
	}
	return model.FilterColumns(b.Columns, st.SearchQuery())
}

// StepBoard moves the active board by delta positions, wrapping around.
func (st *State) StepBoard(delta int) (model.Board, bool) {
	st.mu.Lock()
	n := len(st.boards)
	if n == 0 {
		st.mu.Unlock()
		return model.Board{}, false
	}
	i := indexOf(st.boards, st.active)
	if i < 0 {
		i = 0
	} else {
		i = ((i+delta)%n + n) % n
	}
	b := st.boards[i].Clone()
	st.active = b.ID
	st.mu.Unlock()

	st.p.SetActiveID(b.ID)
	return b, true
}

func indexOf(boards []model.Board, id string) int {
	for i := range boards {
		if boards[i].ID == id {
			return i
		}
	}
	return -1
}
