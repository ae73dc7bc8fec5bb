package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Malinga14/board-app/internal/store"
)

// respondError maps store errors to status codes.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrBoardNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
	case errors.Is(err, store.ErrColumnNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Column not found"})
	case errors.Is(err, store.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
