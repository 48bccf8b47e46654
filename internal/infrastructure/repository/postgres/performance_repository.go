package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crickhq/fantasy-cricket/internal/domain/performance"
	qb "github.com/crickhq/fantasy-cricket/internal/platform/querybuilder"
)

type performanceTableModel struct {
	ID        int64     `db:"id"`
	PlayerID  string    `db:"player_public_id"`
	ContestID string    `db:"contest_public_id"`
	Points    int       `db:"points"`
	Runs      int       `db:"runs"`
	Wickets   int       `db:"wickets"`
	UpdatedAt time.Time `db:"updated_at"`
}

type performanceInsertModel struct {
	PlayerID  string    `db:"player_public_id"`
	ContestID string    `db:"contest_public_id"`
	Points    int       `db:"points"`
	Runs      int       `db:"runs"`
	Wickets   int       `db:"wickets"`
	UpdatedAt time.Time `db:"updated_at"`
}

var performanceSelectColumns = []string{
	"id",
	"player_public_id",
	"contest_public_id",
	"points",
	"runs",
	"wickets",
	"updated_at",
}

type PerformanceRepository struct {
	db *sqlx.DB
}

func NewPerformanceRepository(db *sqlx.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

func (r *PerformanceRepository) Get(ctx context.Context, playerID, contestID string) (performance.Performance, bool, error) {
	query, args, err := qb.Select(performanceSelectColumns...).From("player_performances").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("contest_public_id", contestID),
		).
		ToSQL()
	if err != nil {
		return performance.Performance{}, false, fmt.Errorf("build select performance query: %w", err)
	}

	var row performanceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return performance.Performance{}, false, nil
		}
		return performance.Performance{}, false, fmt.Errorf("select performance: %w", err)
	}

	return performanceFromRow(row), true, nil
}

func (r *PerformanceRepository) ListByContest(ctx context.Context, contestID string) ([]performance.Performance, error) {
	query, args, err := qb.Select(performanceSelectColumns...).From("player_performances").
		Where(qb.Eq("contest_public_id", contestID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select performances query: %w", err)
	}

	var rows []performanceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select performances by contest: %w", err)
	}

	out := make([]performance.Performance, 0, len(rows))
	for _, row := range rows {
		out = append(out, performanceFromRow(row))
	}

	return out, nil
}

func (r *PerformanceRepository) Upsert(ctx context.Context, row performance.Performance) error {
	query, args, err := qb.InsertModel("player_performances", performanceInsertModel{
		PlayerID:  row.PlayerID,
		ContestID: row.ContestID,
		Points:    row.Points,
		Runs:      row.Runs,
		Wickets:   row.Wickets,
		UpdatedAt: row.UpdatedAt,
	}, `ON CONFLICT (player_public_id, contest_public_id)
DO UPDATE SET
    points = EXCLUDED.points,
    runs = EXCLUDED.runs,
    wickets = EXCLUDED.wickets,
    updated_at = EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert performance query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert performance: %w", err)
	}

	return nil
}

func performanceFromRow(row performanceTableModel) performance.Performance {
	return performance.Performance{
		PlayerID:  row.PlayerID,
		ContestID: row.ContestID,
		Points:    row.Points,
		Runs:      row.Runs,
		Wickets:   row.Wickets,
		UpdatedAt: row.UpdatedAt,
	}
}
