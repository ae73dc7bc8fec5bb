package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/Malinga14/board-app/internal/app"
	"github.com/Malinga14/board-app/internal/config"
	"github.com/Malinga14/board-app/internal/kv"
	"github.com/Malinga14/board-app/internal/logging"
	"github.com/Malinga14/board-app/internal/model"
	"github.com/Malinga14/board-app/internal/seed"
	"github.com/Malinga14/board-app/internal/storage"
	"github.com/Malinga14/board-app/internal/store"
)

const boardDirName = ".board"

// boardPath returns the path to a file inside .board/.
func boardPath(parts ...string) string {
	elems := append([]string{boardDirName}, parts...)
	return filepath.Join(elems...)
}

// workspace is everything a command needs, opened from config.
type workspace struct {
	cfg   *config.Config
	log   *logrus.Logger
	kv    kv.Storage
	store *store.Store
	state *app.State

	logCloser io.Closer
}

func (w *workspace) Close() {
	if err := w.kv.Close(); err != nil {
		w.log.WithError(err).Warn("close storage")
	}
	w.logCloser.Close()
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.Storage.Path = flagDB
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// mustWorkspace opens the workspace, returning an error if board is not
// initialized.
func mustWorkspace() (*workspace, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Path != kv.MemoryPath {
		if _, err := os.Stat(cfg.Storage.Path); os.IsNotExist(err) {
			return nil, fmt.Errorf("board not initialized. Run: board init")
		}
	}
	return openWorkspace(cfg)
}

// openWorkspace wires storage, logging and state from cfg and restores the
// active board.
func openWorkspace(cfg *config.Config) (*workspace, error) {
	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	kvStore, err := kv.OpenPath(cfg.Storage.Path)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	p := storage.New(kvStore, seed.DefaultBoard, log, storage.WithKeyPrefix(cfg.Storage.KeyPrefix))
	s := store.New(p, log)
	state := app.New(s, p, log)
	state.Initialize()

	return &workspace{cfg: cfg, log: log, kv: kvStore, store: s, state: state, logCloser: logCloser}, nil
}

// targetBoard resolves the --board flag, falling back to the active board.
func (w *workspace) targetBoard(id string) (model.Board, error) {
	if id == "" {
		id = w.state.ActiveBoardID()
	}
	if id == "" {
		return model.Board{}, fmt.Errorf("no active board. Create one: board create \"title\"")
	}
	b, err := w.store.Board(id)
	if err != nil {
		return model.Board{}, fmt.Errorf("board %s: %w", id, err)
	}
	return b, nil
}

// skipMissing reports a vanished target without failing the command.
// Anything else is returned.
func (w *workspace) skipMissing(op string, err error) error {
	if errors.Is(err, store.ErrBoardNotFound) || errors.Is(err, store.ErrTaskNotFound) || errors.Is(err, store.ErrColumnNotFound) {
		w.log.WithError(err).WithField("op", op).Warn("target no longer exists")
		fmt.Printf("%sNothing to %s: %v%s\n", colorYellow, op, err, colorReset)
		return nil
	}
	return err
}

func resolveUsers(ids []string) ([]model.User, error) {
	users, err := seed.ResolveUsers(ids)
	if err != nil {
		return nil, fmt.Errorf("%w. See: board users", err)
	}
	return users, nil
}
