package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"vendorscreen/internal/audit"
	txcontext "vendorscreen/pkg/platform/tx"
)

// PostgresStore persists audit entries in the audit_logs table. Writes join
// the transaction carried by the context when there is one.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, entry *audit.Entry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}
	query := `
		INSERT INTO audit_logs (id, actor, action, entity_type, entity_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		entry.ID,
		entry.Actor,
		string(entry.Action),
		entry.EntityType,
		entry.EntityID,
		metadata,
		entry.At,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByEntity(ctx context.Context, entityID string) ([]*audit.Entry, error) {
	query := `
		SELECT id, actor, action, entity_type, entity_id, metadata, created_at
		FROM audit_logs
		WHERE entity_id = $1
		ORDER BY created_at DESC
	`
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*audit.Entry, 0)
	for rows.Next() {
		var (
			entry    audit.Entry
			action   string
			metadata []byte
		)
		if err := rows.Scan(&entry.ID, &entry.Actor, &action, &entry.EntityType, &entry.EntityID, &metadata, &entry.At); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.Action = audit.Action(action)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("decode audit metadata: %w", err)
			}
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
