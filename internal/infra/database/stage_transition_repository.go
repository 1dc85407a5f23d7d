package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/lintra-console/internal/entity"
)

const uniqueViolation = "23505"

type StageTransitionRepository struct {
	DB *sql.DB
}

func NewStageTransitionRepository(db *sql.DB) *StageTransitionRepository {
	return &StageTransitionRepository{DB: db}
}

// Insert grava a transição. Reentregas do mesmo evento (mesmo id) são ignoradas.
func (r *StageTransitionRepository) Insert(ctx context.Context, t *entity.StageTransition) error {
	if t.OccurredAt.IsZero() {
		t.OccurredAt = time.Now().UTC()
	}
	query := `
		INSERT INTO stage_transitions (id, deal_id, funnel_id, from_stage_id, to_stage_id, actor_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		t.ID,
		t.DealID,
		t.FunnelID,
		nullString(t.FromStageID),
		t.ToStageID,
		nullString(t.ActorID),
		t.OccurredAt,
	)
	if isUniqueViolation(err) {
		return nil
	}
	return err
}

func (r *StageTransitionRepository) ListByDeal(ctx context.Context, dealID string) ([]entity.StageTransition, error) {
	query := `
		SELECT id, deal_id, funnel_id, COALESCE(from_stage_id, ''), to_stage_id, COALESCE(actor_id, ''), occurred_at
		FROM stage_transitions
		WHERE deal_id = $1
		ORDER BY occurred_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, dealID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.StageTransition
	for rows.Next() {
		var t entity.StageTransition
		if err := rows.Scan(&t.ID, &t.DealID, &t.FunnelID, &t.FromStageID, &t.ToStageID, &t.ActorID, &t.OccurredAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
