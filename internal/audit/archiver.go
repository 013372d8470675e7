package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/pytracker/tracker-service/internal/events"
)

// Archiver appends every domain event to the audit_events table. The table
// is insert-only and is never read back on the serving path; the in-memory
// stores stay authoritative and a restart loses the working set as
// intended.
type Archiver struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewArchiver constructs the archiver.
func NewArchiver(pool *pgxpool.Pool, logger *zap.Logger) *Archiver {
	return &Archiver{pool: pool, logger: logger}
}

// RegisterHandlers subscribes the archiver to all event types. A nil pool
// leaves the dispatcher untouched.
func (a *Archiver) RegisterHandlers(dispatcher events.Dispatcher) {
	if a.pool == nil || dispatcher == nil {
		return
	}
	events.SubscribeAll(dispatcher, a.archive)
}

func (a *Archiver) archive(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		a.logger.Warn("encode audit payload", zap.Error(err))
		return nil
	}

	const query = `
        INSERT INTO audit_events (id, event_type, entity_id, payload, occurred_at)
        VALUES ($1, $2, $3, $4, $5)`

	if _, err := a.pool.Exec(ctx, query, event.ID, string(event.Type), event.EntityID, payload, event.Timestamp); err != nil {
		// Archiving is best-effort; the operation that produced the event
		// has already committed.
		a.logger.Warn("archive event", zap.String("event_id", event.ID), zap.Error(err))
	}
	return nil
}
