// internal/infra/database/postgres_journal_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
)

const schema = `CREATE TABLE IF NOT EXISTS homework_notifications (
    id            BIGSERIAL PRIMARY KEY,
    homework_name TEXT        NOT NULL,
    status        TEXT        NOT NULL,
    message       TEXT        NOT NULL,
    sent_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresJournalRepository stores delivered notifications in 'homework_notifications'.
type PostgresJournalRepository struct {
	db *sql.DB
}

func NewPostgresJournalRepository(db *sql.DB) *PostgresJournalRepository {
	return &PostgresJournalRepository{db: db}
}

// EnsureSchema creates the journal table if it does not exist yet.
func (r *PostgresJournalRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creating homework_notifications table: %w", err)
	}
	return nil
}

func (r *PostgresJournalRepository) Record(ctx context.Context, n *homework.Notification) error {
	query := `INSERT INTO homework_notifications (homework_name, status, message, sent_at)
               VALUES ($1, $2, $3, $4)
               RETURNING id`

	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}
	err := r.db.QueryRowContext(ctx, query, n.HomeworkName, string(n.Status), n.Message, n.SentAt).Scan(&n.ID)
	if err != nil {
		return fmt.Errorf("error recording homework notification: %w", err)
	}
	return nil
}
