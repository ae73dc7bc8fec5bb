package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Malinga14/board-app/internal/app"
	"github.com/Malinga14/board-app/internal/model"
	"github.com/Malinga14/board-app/internal/seed"
)

type TaskHandler struct {
	state *app.State
	log   *logrus.Logger
}

func NewTaskHandler(state *app.State, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{state: state, log: log}
}

type CreateTaskRequest struct {
	Title       string         `json:"title" binding:"required"`
	Type        model.TaskType `json:"type"`
	Priority    model.Priority `json:"priority"`
	UserIDs     []string       `json:"userIds"`
	Comments    int            `json:"comments" binding:"min=0"`
	Attachments int            `json:"attachments" binding:"min=0"`
	DueDate     string         `json:"dueDate"`
	Images      []string       `json:"images"`
	Reports     *int           `json:"reports"`
	Views       *int           `json:"views"`
	GroupCall   bool           `json:"groupCall"`
}

type AssignRequest struct {
	UserIDs []string `json:"userIds"`
}

type MoveTaskRequest struct {
	ColumnID string `json:"columnId" binding:"required"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		badRequest(c, "Title is required")
		return
	}
	if req.Type != "" && !req.Type.Valid() {
		badRequest(c, "Invalid task type")
		return
	}
	if req.Priority != "" && !req.Priority.Valid() {
		badRequest(c, "Invalid priority")
		return
	}

	nt := model.NewTask{
		Title:       title,
		Type:        req.Type,
		Priority:    req.Priority,
		Comments:    req.Comments,
		Attachments: req.Attachments,
		DueDate:     req.DueDate,
		HasImage:    len(req.Images) > 0,
		Images:      req.Images,
		Reports:     req.Reports,
		Views:       req.Views,
		GroupCall:   req.GroupCall,
	}
	if req.UserIDs != nil {
		users, err := seed.ResolveUsers(req.UserIDs)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		nt.AssignedUsers = users
	}

	task, err := h.state.Store().AddTask(c.Param("id"), c.Param("column_id"), nt)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.state.Refresh()
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var patch model.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	switch {
	case patch.Empty():
		badRequest(c, "Nothing to update")
		return
	case patch.Title != nil && strings.TrimSpace(*patch.Title) == "":
		badRequest(c, "Title cannot be empty")
		return
	case patch.Type != nil && !patch.Type.Valid():
		badRequest(c, "Invalid task type")
		return
	case patch.Priority != nil && !patch.Priority.Valid():
		badRequest(c, "Invalid priority")
		return
	}

	boardID, taskID := c.Param("id"), c.Param("task_id")
	if err := h.state.Store().UpdateTask(boardID, taskID, patch); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondTask(c, boardID, taskID)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.state.Store().DeleteTask(c.Param("id"), c.Param("task_id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.state.Refresh()
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) Assign(c *gin.Context) {
	users, ok := h.bindUsers(c)
	if !ok {
		return
	}
	boardID, taskID := c.Param("id"), c.Param("task_id")
	if err := h.state.Store().AssignUsers(boardID, taskID, users); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondTask(c, boardID, taskID)
}

func (h *TaskHandler) AssignColumn(c *gin.Context) {
	users, ok := h.bindUsers(c)
	if !ok {
		return
	}
	n, err := h.state.Store().AssignColumnUsers(c.Param("id"), c.Param("column_id"), users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.state.Refresh()
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

func (h *TaskHandler) Move(c *gin.Context) {
	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	boardID, taskID := c.Param("id"), c.Param("task_id")
	if err := h.state.Store().MoveTask(boardID, taskID, req.ColumnID); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondTask(c, boardID, taskID)
}

func (h *TaskHandler) bindUsers(c *gin.Context) ([]model.User, bool) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return nil, false
	}
	users, err := seed.ResolveUsers(req.UserIDs)
	if err != nil {
		badRequest(c, err.Error())
		return nil, false
	}
	return users, true
}

// respondTask writes the task as stored now, with the column it sits in.
func (h *TaskHandler) respondTask(c *gin.Context, boardID, taskID string) {
	h.state.Refresh()
	b, err := h.state.Store().Board(boardID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	col, idx, ok := b.FindTask(taskID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"columnId": b.Columns[col].ID,
		"task":     b.Columns[col].Tasks[idx],
	})
}
