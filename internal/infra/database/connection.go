package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // Driver do Postgres
)

// NewDBConnection abre a conexão e testa o Ping
func NewDBConnection(ctx context.Context, connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS stage_transitions (
	id            TEXT PRIMARY KEY,
	deal_id       TEXT NOT NULL,
	funnel_id     TEXT NOT NULL,
	from_stage_id TEXT,
	to_stage_id   TEXT NOT NULL,
	actor_id      TEXT,
	occurred_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_stage_transitions_deal ON stage_transitions (deal_id, occurred_at);
`

// EnsureSchema cria as tabelas do histórico local, se ainda não existirem.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
