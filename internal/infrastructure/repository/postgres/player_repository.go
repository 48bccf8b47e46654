package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crickhq/fantasy-cricket/internal/domain/player"
	qb "github.com/crickhq/fantasy-cricket/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"category",
	"credits",
	"points",
	"runs",
	"wickets",
	"created_at",
	"updated_at",
	"deleted_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	builder := qb.Select(playerSelectColumns...).From("players").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id")
	if filter.Category != "" {
		builder = builder.Where(qb.Eq("category", string(filter.Category)))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("public_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.In("public_id", stringSliceToAny(playerIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) UpdateScore(ctx context.Context, playerID string, patch player.ScorePatch) (player.Player, bool, error) {
	builder := qb.Update("players").
		Set("points", patch.Points).
		Set("updated_at", time.Now().UTC())
	if patch.Runs != nil {
		builder = builder.Set("runs", *patch.Runs)
	}
	if patch.Wickets != nil {
		builder = builder.Set("wickets", *patch.Wickets)
	}
	builder = builder.Where(
		qb.Eq("public_id", playerID),
		qb.IsNull("deleted_at"),
	)

	query, args, err := builder.ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build update player score query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("update player score: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("rows affected for player score: %w", err)
	}
	if affected == 0 {
		return player.Player{}, false, nil
	}

	return r.GetByID(ctx, playerID)
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) (bool, error) {
	const query = `
UPDATE players
SET deleted_at = NOW()
WHERE public_id = $1
  AND deleted_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, playerID)
	if err != nil {
		return false, fmt.Errorf("soft delete player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for player delete: %w", err)
	}

	return affected > 0, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.PublicID,
		Name:     row.Name,
		Category: player.Category(row.Category),
		Credits:  row.Credits,
		Points:   row.Points,
		Runs:     row.Runs,
		Wickets:  row.Wickets,
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
