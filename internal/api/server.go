// Package api serves the board store as a local JSON API.
package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Malinga14/board-app/internal/app"
	"github.com/Malinga14/board-app/internal/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	Engine *gin.Engine
	Config config.Server
	log    *logrus.Logger
}

// New builds the engine and registers every route.
func New(state *app.State, cfg config.Server, log *logrus.Logger) *Server {
	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())

	boards := NewBoardHandler(state, log)
	tasks := NewTaskHandler(state, log)
	misc := NewStateHandler(state, cfg.AllowReset, log)

	// Board routes
	r.GET("/boards", boards.List)
	r.POST("/boards", boards.Create)
	r.GET("/boards/:id", boards.Get)
	r.PATCH("/boards/:id", boards.Update)
	r.DELETE("/boards/:id", boards.Delete)

	// Task routes
	r.POST("/boards/:id/columns/:column_id/tasks", tasks.Create)
	r.PATCH("/boards/:id/tasks/:task_id", tasks.Update)
	r.DELETE("/boards/:id/tasks/:task_id", tasks.Delete)
	r.PUT("/boards/:id/tasks/:task_id/assignees", tasks.Assign)
	r.PUT("/boards/:id/columns/:column_id/assignees", tasks.AssignColumn)
	r.POST("/boards/:id/tasks/:task_id/move", tasks.Move)

	// View state and reference data
	r.GET("/users", misc.Users)
	r.GET("/state", misc.Get)
	r.PUT("/state", misc.Update)
	r.POST("/reset", misc.Reset)

	return &Server{Engine: r, Config: cfg, log: log}
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.Config.Addr,
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.Config.Addr).Info("api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}
	s.log.Info("shutting down api")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info("api stopped")
	return nil
}

func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request")
			return
		}
		entry.Debug("request")
	}
}
