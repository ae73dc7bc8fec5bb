package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Malinga14/board-app/internal/kv"
	"github.com/Malinga14/board-app/internal/logging"
	"github.com/Malinga14/board-app/internal/model"
	"github.com/Malinga14/board-app/internal/seed"
	"github.com/Malinga14/board-app/internal/storage"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	p := storage.New(kv.NewMemory(), seed.DefaultBoard, logging.Discard())
	return New(p, logging.Discard())
}

func createBoard(t *testing.T, s *Store) model.Board {
	t.Helper()
	b, err := s.CreateBoard("Launch", "desc", []model.User{})
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}
	return b
}

func addTask(t *testing.T, s *Store, boardID, columnID, title string) model.Task {
	t.Helper()
	task, err := s.AddTask(boardID, columnID, model.NewTask{Title: title})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	return task
}

func TestCreateAndPopulate(t *testing.T) {
	s := testStore(t)

	b := createBoard(t, s)
	wantTitles := []string{"To Do", "In Progress", "Approved", "Rejected"}
	if len(b.Columns) != len(wantTitles) {
		t.Fatalf("expected 4 columns, got %d", len(b.Columns))
	}
	for i, title := range wantTitles {
		if b.Columns[i].Title != title {
			t.Errorf("column %d: expected %q, got %q", i, title, b.Columns[i].Title)
		}
		if len(b.Columns[i].Tasks) != 0 {
			t.Errorf("column %q should start empty", title)
		}
	}

	task, err := s.AddTask(b.ID, "todo", model.NewTask{
		Title:    "Write spec",
		Type:     model.TypeOther,
		Priority: model.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.ID == "" {
		t.Error("expected generated id")
	}
	if task.Title != "Write spec" || task.Type != model.TypeOther || task.Priority != model.PriorityMedium {
		t.Errorf("unexpected task fields: %+v", task)
	}
	if task.Assignees != 0 || task.Comments != 0 || task.Attachments != 0 {
		t.Errorf("expected zero counters, got %+v", task)
	}

	got, err := s.Board(b.ID)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if n := len(got.Column("todo").Tasks); n != 1 {
		t.Errorf("expected todo length 1, got %d", n)
	}
}

func TestCreateBoard_PersistsAndAppends(t *testing.T) {
	s := testStore(t)
	users := seed.Users()[:2]

	first := createBoard(t, s)
	second, err := s.CreateBoard("Second", "", users)
	if err != nil {
		t.Fatalf("CreateBoard: %v", err)
	}

	boards := s.Boards()
	if len(boards) != 2 || boards[0].ID != first.ID || boards[1].ID != second.ID {
		t.Fatalf("expected boards appended in order, got %v", boards)
	}
	if len(boards[1].AssignedUsers) != 2 {
		t.Errorf("expected 2 board users, got %d", len(boards[1].AssignedUsers))
	}
	if boards[1].Status != model.BoardInProgress {
		t.Errorf("expected In Progress, got %s", boards[1].Status)
	}
}

func TestAddTask_Errors(t *testing.T) {
	s := testStore(t)
	b := createBoard(t, s)

	if _, err := s.AddTask("nope", "todo", model.NewTask{Title: "x"}); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("expected ErrBoardNotFound, got %v", err)
	}
	if _, err := s.AddTask(b.ID, "nope", model.NewTask{Title: "x"}); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestAddTask_DerivesAssigneesFromUsers(t *testing.T) {
	s := testStore(t)
	b := createBoard(t, s)

	task, err := s.AddTask(b.ID, "todo", model.NewTask{
		Title:         "Pair",
		Assignees:     7,
		AssignedUsers: seed.Users()[:3],
	})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.Assignees != 3 {
		t.Errorf("expected 3 assignees, got %d", task.Assignees)
	}
}

func TestDeleteThenUpdateIsSafe(t *testing.T) {
	s := testStore(t)
	b := createBoard(t, s)
	task := addTask(t, s, b.ID, "todo", "Doomed")

	if err := s.DeleteTask(b.ID, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	title := "x"
	err := s.UpdateTask(b.ID, task.ID, model.TaskPatch{Title: &title})
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if err := s.DeleteTask(b.ID, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound on second delete, got %v", err)
	}
}

func TestUpdateTask_MergesAndTouches(t *testing.T) {
	s := testStore(t)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return start })
	b := createBoard(t, s)
	task := addTask(t, s, b.ID, "in-progress", "Draft")

	later := start.Add(time.Hour)
	s.SetClock(func() time.Time { return later })

	title := "Final"
	prio := model.PriorityHigh
	if err := s.UpdateTask(b.ID, task.ID, model.TaskPatch{Title: &title, Priority: &prio}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	got, _ := s.Board(b.ID)
	c, i, ok := got.FindTask(task.ID)
	if !ok {
		t.Fatal("task vanished")
	}
	updated := got.Columns[c].Tasks[i]
	if updated.Title != "Final" || updated.Priority != model.PriorityHigh {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Type != model.TypeOther {
		t.Errorf("unpatched field changed: %s", updated.Type)
	}
	if !got.LastUpdated.Equal(later) {
		t.Errorf("expected LastUpdated %v, got %v", later, got.LastUpdated)
	}
}

func TestUpdateBoard(t *testing.T) {
	s := testStore(t)
	b := createBoard(t, s)

	status := model.BoardApproved
	desc := "shipped"
	if err := s.UpdateBoard(b.ID, model.BoardPatch{Status: &status, Description: &desc}); err != nil {
		t.Fatalf("UpdateBoard: %v", err)
	}
	got, _ := s.Board(b.ID)
	if got.Status != model.BoardApproved || got.Description != "shipped" || got.Title != "Launch" {
		t.Errorf("unexpected board after patch: %+v", got)
	}

	before := s.Boards()
	if err := s.UpdateBoard("ghost", model.BoardPatch{Status: &status}); !errors.Is(err, ErrBoardNotFound) {
		t.Fatalf("expected ErrBoardNotFound, got %v", err)
	}
	if !reflect.DeepEqual(before, s.Boards()) {
		t.Error("failed update must not write")
	}
}

func TestDeleteBoard(t *testing.T) {
	s := testStore(t)
	a := createBoard(t, s)
	b := createBoard(t, s)

	if err := s.DeleteBoard(a.ID); err != nil {
		t.Fatalf("DeleteBoard: %v", err)
	}
	boards := s.Boards()
	if len(boards) != 1 || boards[0].ID != b.ID {
		t.Fatalf("expected only %s left, got %v", b.ID, boards)
	}
	if err := s.DeleteBoard(a.ID); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("expected ErrBoardNotFound, got %v", err)
	}
	if _, err := s.Board(a.ID); !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("expected ErrBoardNotFound from Board, got %v", err)
	}
}

func TestAssignUsers_KeepsCountInSync(t *testing.T) {
	s := testStore(t)
	b := createBoard(t, s)
	task := addTask(t, s, b.ID, "todo", "Review")

	for _, users := range [][]model.User{seed.Users()[:3], seed.Users()[4:5], {}} {
		if err := s.AssignUsers(b.ID, task.ID, users); err != nil {
			t.Fatalf("AssignUsers: %v", err)
		}
		got, _ := s.Board(b.ID)
		c, i, _ := got.FindTask(task.ID)
		tk := got.Columns[c].Tasks[i]
		if tk.Assignees != len(users) {
			t.Errorf("expected %d assignees, got %d", len(users), tk.Assignees)
		}
		if len(tk.AssignedUsers) != len(users) {
			t.Fatalf("expected %d users, got %d", len(users), len(tk.AssignedUsers))
		}
		for j := range users {
			if tk.AssignedUsers[j] != users[j] {
				t.Errorf("user %d: expected %v, got %v", j, users[j], tk.AssignedUsers[j])
			}
		}
	}

	if err := s.AssignUsers(b.ID, "ghost", nil); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestAssignColumnUsers(t *testing.T) {
	s := testStore(t)
	b := createBoard(t, s)
	addTask(t, s, b.ID, "approved", "One")
	addTask(t, s, b.ID, "approved", "Two")
	other := addTask(t, s, b.ID, "todo", "Elsewhere")

	users := seed.Users()[:2]
	n, err := s.AssignColumnUsers(b.ID, "approved", users)
	if err != nil {
		t.Fatalf("AssignColumnUsers: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 tasks touched, got %d", n)
	}

	got, _ := s.Board(b.ID)
	for _, tk := range got.Column("approved").Tasks {
		if tk.Assignees != 2 || len(tk.AssignedUsers) != 2 {
			t.Errorf("task %s not assigned: %+v", tk.ID, tk)
		}
	}
	c, i, _ := got.FindTask(other.ID)
	if got.Columns[c].Tasks[i].Assignees != 0 {
		t.Error("task in another column was assigned")
	}

	if _, err := s.AssignColumnUsers(b.ID, "ghost", users); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestMoveTask_Persists(t *testing.T) {
	s := testStore(t)
	b := createBoard(t, s)
	task := addTask(t, s, b.ID, "todo", "Travel")
	addTask(t, s, b.ID, "rejected", "Already here")

	if err := s.MoveTask(b.ID, task.ID, "rejected"); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}
	got, _ := s.Board(b.ID)
	if len(got.Column("todo").Tasks) != 0 {
		t.Error("task still in source column")
	}
	rejected := got.Column("rejected").Tasks
	if len(rejected) != 2 || rejected[1].ID != task.ID {
		t.Errorf("expected task appended to rejected, got %v", rejected)
	}

	if err := s.MoveTask(b.ID, task.ID, "rejected"); err != nil {
		t.Errorf("same-column move should be a no-op, got %v", err)
	}
	again, _ := s.Board(b.ID)
	if !reflect.DeepEqual(again.Column("rejected").Tasks, rejected) {
		t.Error("same-column move changed the column")
	}

	if err := s.MoveTask(b.ID, "ghost", "todo"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
	if err := s.MoveTask(b.ID, task.ID, "ghost"); !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestMoveTask_SameColumnWritesNothing(t *testing.T) {
	mem := kv.NewMemory()
	s := New(storage.New(mem, seed.DefaultBoard, logging.Discard()), logging.Discard())
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return start })
	b := createBoard(t, s)
	task := addTask(t, s, b.ID, "todo", "Stay")
	before, _, _ := mem.Get(storage.BoardsKey)

	s.SetClock(func() time.Time { return start.Add(time.Hour) })
	if err := s.MoveTask(b.ID, task.ID, "todo"); err != nil {
		t.Fatalf("MoveTask: %v", err)
	}

	got, _ := s.Board(b.ID)
	if !got.LastUpdated.Equal(start) {
		t.Errorf("LastUpdated bumped to %v", got.LastUpdated)
	}
	if after, _, _ := mem.Get(storage.BoardsKey); after != before {
		t.Error("same-column move rewrote storage")
	}
}

func TestReadThrough_SeesOtherWriters(t *testing.T) {
	mem := kv.NewMemory()
	p1 := storage.New(mem, seed.DefaultBoard, logging.Discard())
	p2 := storage.New(mem, seed.DefaultBoard, logging.Discard())
	s1 := New(p1, logging.Discard())
	s2 := New(p2, logging.Discard())

	b := createBoard(t, s1)
	task := addTask(t, s2, b.ID, "todo", "From elsewhere")

	if err := s1.DeleteTask(b.ID, task.ID); err != nil {
		t.Fatalf("expected s1 to see task written by s2: %v", err)
	}
}
