package database

import (
	"context"

	"cosmossdk.io/log"

	"github.com/thryx-chain/thryx/x/shared/events"
)

// Sink subscribes to the module event bus and persists every event. Writes
// are best-effort: a failed insert is logged and dropped rather than
// blocking the chain.
type Sink struct {
	db     *DB
	em     *events.Manager
	logger log.Logger
}

// NewSink creates an event sink on the given bus.
func NewSink(db *DB, em *events.Manager, logger log.Logger) *Sink {
	return &Sink{
		db:     db,
		em:     em,
		logger: logger.With("module", "event-sink"),
	}
}

// Run consumes events until the context is cancelled.
func (s *Sink) Run(ctx context.Context) {
	ch, cancel := s.em.Subscribe(256)
	defer cancel()

	s.logger.Info("event sink started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("event sink stopped")
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := s.db.InsertEvent(ev); err != nil {
				s.logger.Error("failed to persist event", "type", ev.Type, "err", err)
			}
		}
	}
}
