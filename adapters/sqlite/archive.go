package sqlite

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"hoboqc/domain/series"
	"hoboqc/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS hourly_series (
	run_id     TEXT    NOT NULL,
	date       TEXT    NOT NULL,
	hour       INTEGER NOT NULL,
	th         REAL    NOT NULL,
	origin     TEXT    NOT NULL,
	flag_count INTEGER NOT NULL,
	PRIMARY KEY (run_id, date, hour)
)`

// Archive persists the hourly output table into a local SQLite file, keyed by
// run id so repeated runs stay distinguishable.
type Archive struct {
	db *sqlx.DB
}

// Open opens (or creates) the archive database and ensures the schema.
func Open(path string) (*Archive, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, errors.IOError("failed to open archive database "+path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.IOError("failed to create archive schema", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

// WriteHourly inserts the full run in one transaction.
func (a *Archive) WriteHourly(ctx context.Context, runID string, records []series.HourlyRecord) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.IOError("failed to begin archive transaction", err)
	}

	query := `INSERT INTO hourly_series (run_id, date, hour, th, origin, flag_count)
		VALUES (?, ?, ?, ?, ?, ?)`
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, query,
			runID, rec.Date(), rec.Hour(), rec.Temperature, rec.Provenance.Code(), rec.FlagCount,
		); err != nil {
			tx.Rollback()
			return errors.IOError("failed to archive hourly record", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.IOError("failed to commit archive transaction", err)
	}
	return nil
}
