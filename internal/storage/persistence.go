// Package storage reads and writes the board list to the key-value area.
//
// Every operation here is fail-soft: storage or encoding errors are logged
// and the caller gets an empty/default value. Callers treat persistence as
// infallible.
package storage

import (
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Malinga14/board-app/internal/kv"
	"github.com/Malinga14/board-app/internal/model"
)

// Key names inside the key-value area, before the configured prefix.
const (
	BoardsKey = "boards"
	ActiveKey = "active-board"
)

// SeedFunc builds the default board used when storage is empty.
type SeedFunc func(now time.Time) model.Board

// Persistence owns the durable representation: one JSON array of boards
// and one plain-string active board id.
type Persistence struct {
	kv     kv.Storage
	prefix string
	seed   SeedFunc
	log    *logrus.Logger
	now    func() time.Time
}

// Option customises a Persistence.
type Option func(*Persistence)

// WithKeyPrefix prepends prefix to both keys.
func WithKeyPrefix(prefix string) Option {
	return func(p *Persistence) { p.prefix = prefix }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Persistence) { p.now = now }
}

// New wraps a key-value storage. A nil storage behaves as unavailable:
// reads return nothing and writes are dropped.
func New(store kv.Storage, seed SeedFunc, log *logrus.Logger, opts ...Option) *Persistence {
	p := &Persistence{kv: store, seed: seed, log: log, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Persistence) boardsKey() string { return p.prefix + BoardsKey }
func (p *Persistence) activeKey() string { return p.prefix + ActiveKey }

// Load returns the stored boards, or an empty list when the key is
// missing, the JSON is malformed, or storage is unavailable.
func (p *Persistence) Load() []model.Board {
	if p.kv == nil {
		return []model.Board{}
	}

	raw, ok, err := p.kv.Get(p.boardsKey())
	if err != nil {
		p.log.WithError(err).WithField("key", p.boardsKey()).Error("read boards")
		return []model.Board{}
	}
	if !ok {
		return []model.Board{}
	}

	var boards []model.Board
	if err := json.Unmarshal([]byte(raw), &boards); err != nil {
		p.log.WithError(err).WithField("key", p.boardsKey()).Error("decode boards")
		return []model.Board{}
	}
	if boards == nil {
		boards = []model.Board{}
	}
	return boards
}

// Save serializes and writes the board list. Failures are logged only.
func (p *Persistence) Save(boards []model.Board) {
	if p.kv == nil {
		return
	}
	if boards == nil {
		boards = []model.Board{}
	}

	data, err := json.Marshal(boards)
	if err != nil {
		p.log.WithError(err).Error("encode boards")
		return
	}
	if err := p.kv.Set(p.boardsKey(), string(data)); err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"key":   p.boardsKey(),
			"bytes": len(data),
		}).Error("write boards")
		return
	}
	p.log.WithField("boards", len(boards)).Debug("boards saved")
}

// ActiveID returns the stored active board id, if any.
func (p *Persistence) ActiveID() (string, bool) {
	if p.kv == nil {
		return "", false
	}
	id, ok, err := p.kv.Get(p.activeKey())
	if err != nil {
		p.log.WithError(err).WithField("key", p.activeKey()).Error("read active board")
		return "", false
	}
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// SetActiveID stores the active board id.
func (p *Persistence) SetActiveID(id string) {
	if p.kv == nil {
		return
	}
	if err := p.kv.Set(p.activeKey(), id); err != nil {
		p.log.WithError(err).WithField("key", p.activeKey()).Error("write active board")
	}
}

// Initialize seeds exactly one default board when storage holds none,
// persists it and marks it active. Otherwise the stored list is returned
// unchanged.
func (p *Persistence) Initialize() []model.Board {
	boards := p.Load()
	if len(boards) > 0 {
		return boards
	}

	def := p.seed(p.now())
	boards = []model.Board{def}
	p.Save(boards)
	p.SetActiveID(def.ID)
	p.log.WithField("board_id", def.ID).Info("seeded default board")
	return boards
}

// Reset clears both keys and seeds again. Development use only.
func (p *Persistence) Reset() []model.Board {
	if p.kv == nil {
		return []model.Board{}
	}
	for _, key := range []string{p.boardsKey(), p.activeKey()} {
		if err := p.kv.Remove(key); err != nil {
			p.log.WithError(err).WithField("key", key).Error("reset storage")
			return []model.Board{}
		}
	}
	return p.Initialize()
}
