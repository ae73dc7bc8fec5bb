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

type BoardHandler struct {
	state *app.State
	log   *logrus.Logger
}

func NewBoardHandler(state *app.State, log *logrus.Logger) *BoardHandler {
	return &BoardHandler{state: state, log: log}
}

type CreateBoardRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	UserIDs     []string `json:"userIds"`
}

// UpdateBoardRequest mirrors model.BoardPatch but takes user ids.
type UpdateBoardRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *model.BoardStatus `json:"status"`
	UserIDs     *[]string          `json:"userIds"`
}

func (h *BoardHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.state.Refresh())
}

func (h *BoardHandler) Get(c *gin.Context) {
	b, err := h.state.Store().Board(c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		badRequest(c, "Title is required")
		return
	}

	users, err := seed.ResolveUsers(req.UserIDs)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	b, err := h.state.CreateBoard(strings.TrimSpace(req.Title), req.Description, users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BoardHandler) Update(c *gin.Context) {
	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	patch := model.BoardPatch{Title: req.Title, Description: req.Description, Status: req.Status}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		badRequest(c, "Title cannot be empty")
		return
	}
	if req.Status != nil && !req.Status.Valid() {
		badRequest(c, "Invalid status")
		return
	}
	if req.UserIDs != nil {
		users, err := seed.ResolveUsers(*req.UserIDs)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		patch.AssignedUsers = &users
	}
	if patch.Empty() {
		badRequest(c, "Nothing to update")
		return
	}

	id := c.Param("id")
	if err := h.state.Store().UpdateBoard(id, patch); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.state.Refresh()

	b, err := h.state.Store().Board(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BoardHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.state.Store().DeleteBoard(id); err != nil {
		respondError(c, h.log, err)
		return
	}

	boards := h.state.Refresh()
	if h.state.ActiveBoardID() == id {
		next := ""
		if len(boards) > 0 {
			next = boards[0].ID
		}
		h.state.SetActiveBoardID(next)
	}
	c.Status(http.StatusNoContent)
}
