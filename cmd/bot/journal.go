package main

import (
	"context"
	"database/sql"
	"time"

	"homework_status_bot/internal/domain/homework"
	idb "homework_status_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

const journalSetupTimeout = 15 * time.Second

// openJournal connects the optional notification journal. The journal is an
// audit trail only, so an unreachable database disables it instead of
// stopping the bot. The returned close func is never nil.
func openJournal(databaseURL string, log *logrus.Entry) (homework.Journal, func()) {
	noop := func() {}
	if databaseURL == "" {
		log.Debug("DATABASE_URL is not set, notification journal disabled.")
		return nil, noop
	}

	db, err := idb.NewPostgresConnection(databaseURL)
	if err != nil {
		log.WithError(err).Warn("Could not connect to database, notification journal disabled")
		return nil, noop
	}

	ctx, cancel := context.WithTimeout(context.Background(), journalSetupTimeout)
	defer cancel()
	repo := idb.NewPostgresJournalRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.WithError(err).Warn("Could not prepare notification journal, journal disabled")
		closeDB(db, log)
		return nil, noop
	}

	log.Info("Notification journal enabled.")
	return repo, func() { closeDB(db, log) }
}

func closeDB(db *sql.DB, log *logrus.Entry) {
	if err := db.Close(); err != nil {
		log.WithError(err).Warn("Failed to close database")
	}
}
