package persistence

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed schema/0001_create_audit_events.sql
var auditSchema string

// EnsureAuditSchema applies the DDL for the audit archive. The archive is a
// single append-only table, so the schema ships embedded in the binary; the
// statements are idempotent and safe to run on every start.
func EnsureAuditSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping audit schema")
		return nil
	}

	if _, err := pool.Exec(ctx, auditSchema); err != nil {
		return fmt.Errorf("apply audit schema: %w", err)
	}

	logger.Info("audit schema ready")
	return nil
}
