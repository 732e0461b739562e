package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"healthsites/internal/logger"
	"healthsites/internal/models"
)

// PostgresWriter mirrors the facility list into one PostgreSQL table.
type PostgresWriter struct {
	db     *sql.DB
	logger *logger.Logger
	table  string
}

// NewPostgresWriter opens the database and pings it.
func NewPostgresWriter(ctx context.Context, dsn, table string, log *logger.Logger) (*PostgresWriter, error) {
	if log == nil {
		log = logger.Discard()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	log.Info("Connected to PostgreSQL", "table", table)

	return &PostgresWriter{db: db, logger: log, table: table}, nil
}

func createTableSQL(table string) string {
	t := pq.QuoteIdentifier(table)

	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		position    INTEGER PRIMARY KEY,
		id          TEXT,
		type        TEXT  NOT NULL,
		city        TEXT,
		document    JSONB NOT NULL,
		loaded_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS %s ON %s (type);
	CREATE INDEX IF NOT EXISTS %s ON %s (city);
	`, t, pq.QuoteIdentifier("idx_"+table+"_type"), t, pq.QuoteIdentifier("idx_"+table+"_city"), t)
}

// CreateTable creates the facilities table and its indexes if missing.
func (w *PostgresWriter) CreateTable(ctx context.Context) error {
	if _, err := w.db.ExecContext(ctx, createTableSQL(w.table)); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// SaveFacilities replaces the table contents in a single transaction.
func (w *PostgresWriter) SaveFacilities(ctx context.Context, facilities []models.Facility) (err error) {
	if err = w.CreateTable(ctx); err != nil {
		return err
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM "+pq.QuoteIdentifier(w.table)); err != nil {
		return fmt.Errorf("failed to clear table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(w.table, "position", "id", "type", "city", "document"))
	if err != nil {
		return fmt.Errorf("failed to prepare copy: %w", err)
	}

	for i := range facilities {
		f := &facilities[i]

		doc, marshalErr := json.Marshal(f)
		if marshalErr != nil {
			_ = stmt.Close()
			err = fmt.Errorf("failed to marshal facility %d: %w", i, marshalErr)

			return err
		}

		var city sql.NullString
		if f.Location != nil && f.Location.City != "" {
			city = sql.NullString{String: f.Location.City, Valid: true}
		}

		if _, err = stmt.ExecContext(ctx, i, nullable(f.ID), f.Type, city, string(doc)); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("failed to copy facility %d: %w", i, err)
		}
	}

	if _, err = stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("failed to flush copy: %w", err)
	}

	if err = stmt.Close(); err != nil {
		return fmt.Errorf("failed to close copy: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.logger.Info("Replaced facilities in PostgreSQL", "table", w.table, "rows", len(facilities))

	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Close closes the database connection.
func (w *PostgresWriter) Close() error {
	if w.db == nil {
		return nil
	}

	return w.db.Close()
}
