package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Malinga14/board-app/internal/app"
	"github.com/Malinga14/board-app/internal/seed"
)

type StateHandler struct {
	state      *app.State
	allowReset bool
	log        *logrus.Logger
}

func NewStateHandler(state *app.State, allowReset bool, log *logrus.Logger) *StateHandler {
	return &StateHandler{state: state, allowReset: allowReset, log: log}
}

type StateResponse struct {
	ActiveBoardID string          `json:"activeBoardId"`
	ActiveContent app.ContentType `json:"activeContent"`
	SearchQuery   string          `json:"searchQuery"`
}

type UpdateStateRequest struct {
	ActiveBoardID *string `json:"activeBoardId"`
	ActiveContent *string `json:"activeContent"`
	SearchQuery   *string `json:"searchQuery"`
}

func (h *StateHandler) Users(c *gin.Context) {
	c.JSON(http.StatusOK, seed.SearchUsers(seed.Users(), c.Query("q")))
}

func (h *StateHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshot())
}

func (h *StateHandler) Update(c *gin.Context) {
	var req UpdateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	if req.ActiveBoardID != nil {
		if _, err := h.state.Store().Board(*req.ActiveBoardID); err != nil {
			respondError(c, h.log, err)
			return
		}
	}
	// The setter validates; an unknown section changes nothing.
	if req.ActiveContent != nil {
		if err := h.state.SetActiveContent(app.ContentType(*req.ActiveContent)); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	if req.ActiveBoardID != nil {
		h.state.Refresh()
		h.state.SetActiveBoardID(*req.ActiveBoardID)
	}
	if req.SearchQuery != nil {
		h.state.SetSearchQuery(*req.SearchQuery)
	}
	c.JSON(http.StatusOK, h.snapshot())
}

// Reset wipes storage and reseeds. Only enabled by config.
func (h *StateHandler) Reset(c *gin.Context) {
	if !h.allowReset {
		c.JSON(http.StatusForbidden, gin.H{"error": "Reset is disabled"})
		return
	}
	h.state.Reset()
	h.log.Warn("storage reset through api")
	c.JSON(http.StatusOK, h.state.Boards())
}

func (h *StateHandler) snapshot() StateResponse {
	return StateResponse{
		ActiveBoardID: h.state.ActiveBoardID(),
		ActiveContent: h.state.ActiveContent(),
		SearchQuery:   h.state.SearchQuery(),
	}
}
