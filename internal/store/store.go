// Package store is the board/task store: CRUD over boards, columns and
// tasks that reads through and writes through the persistence layer.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Malinga14/board-app/internal/model"
	"github.com/Malinga14/board-app/internal/storage"
)

var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrColumnNotFound = errors.New("column not found")
	ErrTaskNotFound   = errors.New("task not found")

	// errUnchanged tells mutate the board needs no write.
	errUnchanged = errors.New("unchanged")
)

// DefaultColumns is the layout of every new board.
var DefaultColumns = []model.Column{
	{ID: "todo", Title: "To Do", Color: "#6B7280"},
	{ID: "in-progress", Title: "In Progress", Color: "#FFA800"},
	{ID: "approved", Title: "Approved", Color: "#AEE753"},
	{ID: "rejected", Title: "Rejected", Color: "#F90430"},
}

// Store is the sole writer of the board list. Each operation loads the
// current list first, so edits made by another process are picked up;
// the last writer wins.
type Store struct {
	mu  sync.Mutex
	p   *storage.Persistence
	log *logrus.Logger
	now func() time.Time
}

// New creates a store over p.
func New(p *storage.Persistence, log *logrus.Logger) *Store {
	return &Store{p: p, log: log, now: time.Now}
}

// SetClock replaces time.Now, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Persistence exposes the underlying layer for the view state controller.
func (s *Store) Persistence() *storage.Persistence {
	return s.p
}

// Boards returns every board.
func (s *Store) Boards() []model.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Load()
}

// Board returns a single board by id.
func (s *Store) Board(id string) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	boards := s.p.Load()
	i := indexOf(boards, id)
	if i < 0 {
		return model.Board{}, ErrBoardNotFound
	}
	return boards[i], nil
}

// CreateBoard appends a new board with the four default, empty columns.
// Titles are validated by the caller.
func (s *Store) CreateBoard(title, description string, users []model.User) (model.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b := model.Board{
		ID:            model.NewBoardID(now),
		Title:         title,
		Description:   description,
		Status:        model.BoardInProgress,
		AssignedUsers: append([]model.User{}, users...),
		LastUpdated:   now.UTC(),
		CreatedAt:     now.UTC(),
		Columns:       make([]model.Column, len(DefaultColumns)),
	}
	for i, c := range DefaultColumns {
		b.Columns[i] = c
		b.Columns[i].Tasks = []model.Task{}
	}

	boards := s.p.Load()
	boards = append(boards, b)
	s.p.Save(boards)

	s.log.WithFields(logrus.Fields{"board_id": b.ID, "title": b.Title}).Info("board created")
	return b.Clone(), nil
}

// UpdateBoard merges patch into the board and refreshes LastUpdated.
// Nothing is written when the board is missing.
func (s *Store) UpdateBoard(boardID string, patch model.BoardPatch) error {
	return s.mutate(boardID, func(b *model.Board) error {
		patch.Apply(b)
		return nil
	})
}

// DeleteBoard removes the board.
func (s *Store) DeleteBoard(boardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards := s.p.Load()
	i := indexOf(boards, boardID)
	if i < 0 {
		return ErrBoardNotFound
	}
	boards = append(boards[:i], boards[i+1:]...)
	s.p.Save(boards)

	s.log.WithField("board_id", boardID).Info("board deleted")
	return nil
}

// AddTask appends a new task to the column and returns it.
func (s *Store) AddTask(boardID, columnID string, nt model.NewTask) (model.Task, error) {
	var created model.Task
	err := s.mutate(boardID, func(b *model.Board) error {
		col := b.Column(columnID)
		if col == nil {
			return ErrColumnNotFound
		}
		created = nt.Build(model.NewTaskID(s.now()))
		col.Tasks = append(col.Tasks, created)
		return nil
	})
	if err != nil {
		return model.Task{}, err
	}

	s.log.WithFields(logrus.Fields{
		"board_id":  boardID,
		"column_id": columnID,
		"task_id":   created.ID,
	}).Info("task added")
	return created.Clone(), nil
}

// UpdateTask merges patch into the task, wherever it lives on the board.
func (s *Store) UpdateTask(boardID, taskID string, patch model.TaskPatch) error {
	return s.mutateTask(boardID, taskID, func(t *model.Task) {
		patch.Apply(t)
	})
}

// DeleteTask removes the task from its column.
func (s *Store) DeleteTask(boardID, taskID string) error {
	return s.mutate(boardID, func(b *model.Board) error {
		c, i, ok := b.FindTask(taskID)
		if !ok {
			return ErrTaskNotFound
		}
		tasks := b.Columns[c].Tasks
		b.Columns[c].Tasks = append(tasks[:i:i], tasks[i+1:]...)
		return nil
	})
}

// AssignUsers replaces the task's assignees. AssignedUsers and the
// Assignees count always change together.
func (s *Store) AssignUsers(boardID, taskID string, users []model.User) error {
	return s.mutateTask(boardID, taskID, func(t *model.Task) {
		assign(t, users)
	})
}

// AssignColumnUsers assigns users to every task in the column and
// returns how many tasks were touched.
func (s *Store) AssignColumnUsers(boardID, columnID string, users []model.User) (int, error) {
	n := 0
	err := s.mutate(boardID, func(b *model.Board) error {
		col := b.Column(columnID)
		if col == nil {
			return ErrColumnNotFound
		}
		for i := range col.Tasks {
			assign(&col.Tasks[i], users)
		}
		n = len(col.Tasks)
		return nil
	})
	return n, err
}

// MoveTask moves the task to the end of the target column and persists
// the result. Moving a task to the column it's already in changes nothing.
func (s *Store) MoveTask(boardID, taskID, toColumnID string) error {
	return s.mutate(boardID, func(b *model.Board) error {
		if b.Column(toColumnID) == nil {
			return ErrColumnNotFound
		}
		c, _, ok := b.FindTask(taskID)
		if !ok {
			return ErrTaskNotFound
		}
		if !model.MoveTask(b.Columns, taskID, b.Columns[c].ID, toColumnID) {
			return errUnchanged
		}
		return nil
	})
}

func assign(t *model.Task, users []model.User) {
	t.AssignedUsers = append([]model.User{}, users...)
	t.Assignees = len(users)
}

// mutate loads the boards, applies fn to the named board, refreshes
// LastUpdated and saves. When fn fails, or reports errUnchanged, nothing is
// written.
func (s *Store) mutate(boardID string, fn func(*model.Board) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	boards := s.p.Load()
	i := indexOf(boards, boardID)
	if i < 0 {
		return ErrBoardNotFound
	}
	if err := fn(&boards[i]); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	boards[i].Touch(s.now())
	s.p.Save(boards)
	return nil
}

func (s *Store) mutateTask(boardID, taskID string, fn func(*model.Task)) error {
	return s.mutate(boardID, func(b *model.Board) error {
		c, i, ok := b.FindTask(taskID)
		if !ok {
			return ErrTaskNotFound
		}
		fn(&b.Columns[c].Tasks[i])
		return nil
	})
}

func indexOf(boards []model.Board, id string) int {
	for i := range boards {
		if boards[i].ID == id {
			return i
		}
	}
	return -1
}
