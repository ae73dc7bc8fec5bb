package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Malinga14/board-app/internal/api"
	"github.com/Malinga14/board-app/internal/app"
	"github.com/Malinga14/board-app/internal/config"
	"github.com/Malinga14/board-app/internal/kv"
	"github.com/Malinga14/board-app/internal/logging"
	"github.com/Malinga14/board-app/internal/model"
	"github.com/Malinga14/board-app/internal/seed"
	"github.com/Malinga14/board-app/internal/storage"
	"github.com/Malinga14/board-app/internal/store"
)

func setupTest(t *testing.T, allowReset bool) (*gin.Engine, *app.State) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logging.Discard()
	p := storage.New(kv.NewMemory(), seed.DefaultBoard, log)
	state := app.New(store.New(p, log), p, log)
	state.Initialize()

	srv := api.New(state, config.Server{Addr: "127.0.0.1:0", AllowReset: allowReset}, log)
	return srv.Engine, state
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v))
	return v
}

type taskResponse struct {
	ColumnID string     `json:"columnId"`
	Task     model.Task `json:"task"`
}

func TestListBoards(t *testing.T) {
	router, _ := setupTest(t, false)

	resp := do(t, router, http.MethodGet, "/boards", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	boards := decode[[]model.Board](t, resp)
	require.Len(t, boards, 1)
	assert.Equal(t, "Sport Xi Project", boards[0].Title)
}

func TestCreateBoard_Success(t *testing.T) {
	router, state := setupTest(t, false)

	resp := do(t, router, http.MethodPost, "/boards", api.CreateBoardRequest{
		Title:       "Launch",
		Description: "desc",
		UserIDs:     []string{"user-1"},
	})
	assert.Equal(t, http.StatusCreated, resp.Code)

	b := decode[model.Board](t, resp)
	assert.Equal(t, "Launch", b.Title)
	assert.Len(t, b.Columns, 4)
	assert.Len(t, b.AssignedUsers, 1)
	assert.Equal(t, b.ID, state.ActiveBoardID())
}

func TestCreateBoard_Validation(t *testing.T) {
	router, _ := setupTest(t, false)

	resp := do(t, router, http.MethodPost, "/boards", gin.H{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(t, router, http.MethodPost, "/boards", gin.H{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(t, router, http.MethodPost, "/boards", gin.H{"title": "x", "userIds": []string{"ghost"}})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetBoard_NotFound(t *testing.T) {
	router, _ := setupTest(t, false)

	resp := do(t, router, http.MethodGet, "/boards/ghost", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Board not found")
}

func TestUpdateBoard(t *testing.T) {
	router, state := setupTest(t, false)
	id := state.ActiveBoardID()

	resp := do(t, router, http.MethodPatch, "/boards/"+id, gin.H{"status": "Approved"})
	assert.Equal(t, http.StatusOK, resp.Code)
	b := decode[model.Board](t, resp)
	assert.Equal(t, model.BoardApproved, b.Status)
	assert.Equal(t, "Sport Xi Project", b.Title)

	resp = do(t, router, http.MethodPatch, "/boards/"+id, gin.H{"status": "Paused"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(t, router, http.MethodPatch, "/boards/"+id, gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(t, router, http.MethodPatch, "/boards/ghost", gin.H{"title": "x"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteBoard_MovesActive(t *testing.T) {
	router, state := setupTest(t, false)
	seeded := state.ActiveBoardID()

	created := decode[model.Board](t, do(t, router, http.MethodPost, "/boards", gin.H{"title": "Temp"}))
	require.Equal(t, created.ID, state.ActiveBoardID())

	resp := do(t, router, http.MethodDelete, "/boards/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, seeded, state.ActiveBoardID())

	resp = do(t, router, http.MethodDelete, "/boards/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTaskLifecycle(t *testing.T) {
	router, state := setupTest(t, false)
	id := state.ActiveBoardID()

	resp := do(t, router, http.MethodPost, "/boards/"+id+"/columns/todo/tasks", gin.H{
		"title":    "Write spec",
		"type":     "Research",
		"priority": "high",
		"userIds":  []string{"user-1", "user-2"},
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	task := decode[model.Task](t, resp)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, 2, task.Assignees)
	assert.Equal(t, model.TypeResearch, task.Type)

	taskPath := "/boards/" + id + "/tasks/" + task.ID

	resp = do(t, router, http.MethodPatch, taskPath, gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Renamed", decode[taskResponse](t, resp).Task.Title)

	resp = do(t, router, http.MethodPost, taskPath+"/move", gin.H{"columnId": "approved"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "approved", decode[taskResponse](t, resp).ColumnID)

	resp = do(t, router, http.MethodPut, taskPath+"/assignees", gin.H{"userIds": []string{"user-3"}})
	require.Equal(t, http.StatusOK, resp.Code)
	moved := decode[taskResponse](t, resp).Task
	assert.Equal(t, 1, moved.Assignees)
	require.Len(t, moved.AssignedUsers, 1)
	assert.Equal(t, "user-3", moved.AssignedUsers[0].ID)

	resp = do(t, router, http.MethodDelete, taskPath, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = do(t, router, http.MethodPatch, taskPath, gin.H{"title": "x"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Task not found")
}

func TestCreateTask_Validation(t *testing.T) {
	router, state := setupTest(t, false)
	id := state.ActiveBoardID()

	tests := []struct {
		name   string
		path   string
		body   gin.H
		status int
	}{
		{"blank title", "/boards/" + id + "/columns/todo/tasks", gin.H{"title": " "}, http.StatusBadRequest},
		{"bad type", "/boards/" + id + "/columns/todo/tasks", gin.H{"title": "x", "type": "Chore"}, http.StatusBadRequest},
		{"bad priority", "/boards/" + id + "/columns/todo/tasks", gin.H{"title": "x", "priority": "urgent"}, http.StatusBadRequest},
		{"unknown column", "/boards/" + id + "/columns/ghost/tasks", gin.H{"title": "x"}, http.StatusNotFound},
		{"unknown board", "/boards/ghost/columns/todo/tasks", gin.H{"title": "x"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, resp.Code)
		})
	}
}

func TestAssignColumn(t *testing.T) {
	router, state := setupTest(t, false)
	id := state.ActiveBoardID()
	b, ok := state.CurrentBoard()
	require.True(t, ok)
	want := len(b.Column("approved").Tasks)

	resp := do(t, router, http.MethodPut, "/boards/"+id+"/columns/approved/assignees",
		gin.H{"userIds": []string{"user-5", "user-6"}})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(want), decode[map[string]any](t, resp)["updated"])

	b, _ = state.CurrentBoard()
	for _, task := range b.Column("approved").Tasks {
		assert.Equal(t, 2, task.Assignees)
	}
}

func TestMove_RequiresColumn(t *testing.T) {
	router, state := setupTest(t, false)
	b, _ := state.CurrentBoard()
	task := b.Columns[0].Tasks[0]

	resp := do(t, router, http.MethodPost, "/boards/"+b.ID+"/tasks/"+task.ID+"/move", gin.H{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = do(t, router, http.MethodPost, "/boards/"+b.ID+"/tasks/"+task.ID+"/move", gin.H{"columnId": "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUsers_Search(t *testing.T) {
	router, _ := setupTest(t, false)

	resp := do(t, router, http.MethodGet, "/users?q=sofia", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	users := decode[[]model.User](t, resp)
	require.Len(t, users, 1)
	assert.Equal(t, "user-3", users[0].ID)
}

func TestState(t *testing.T) {
	router, state := setupTest(t, false)

	resp := do(t, router, http.MethodGet, "/state", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	got := decode[api.StateResponse](t, resp)
	assert.Equal(t, state.ActiveBoardID(), got.ActiveBoardID)
	assert.Equal(t, app.ContentBoards, got.ActiveContent)

	resp = do(t, router, http.MethodPut, "/state", gin.H{"activeContent": "calendar", "searchQuery": "design"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, app.ContentCalendar, state.ActiveContent())
	assert.Equal(t, "design", state.SearchQuery())

	resp = do(t, router, http.MethodPut, "/state", gin.H{"activeContent": "inbox", "searchQuery": "other"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, app.ContentCalendar, state.ActiveContent())
	assert.Equal(t, "design", state.SearchQuery(), "rejected update must not apply other fields")

	resp = do(t, router, http.MethodPut, "/state", gin.H{"activeBoardId": "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestReset(t *testing.T) {
	router, state := setupTest(t, false)
	resp := do(t, router, http.MethodPost, "/reset", nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	router, state = setupTest(t, true)
	do(t, router, http.MethodPost, "/boards", gin.H{"title": "Extra"})
	resp = do(t, router, http.MethodPost, "/reset", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decode[[]model.Board](t, resp), 1)
	assert.Len(t, state.Boards(), 1)
}
