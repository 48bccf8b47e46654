package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/crickhq/fantasy-cricket/internal/domain/contest"
	qb "github.com/crickhq/fantasy-cricket/internal/platform/querybuilder"
)

type contestTableModel struct {
	ID         int64     `db:"id"`
	PublicID   string    `db:"public_id"`
	Name       string    `db:"name"`
	Status     string    `db:"status"`
	EntryFee   int64     `db:"entry_fee"`
	MaxEntries int       `db:"max_entries"`
	StartsAt   time.Time `db:"starts_at"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

var contestSelectColumns = []string{
	"id",
	"public_id",
	"name",
	"status",
	"entry_fee",
	"max_entries",
	"starts_at",
	"created_at",
	"updated_at",
}

type ContestRepository struct {
	db *sqlx.DB
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

func (r *ContestRepository) List(ctx context.Context) ([]contest.Contest, error) {
	query, args, err := qb.Select(contestSelectColumns...).From("contests").
		OrderBy("starts_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select contests query: %w", err)
	}

	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select contests: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		out = append(out, contestFromRow(row))
	}

	return out, nil
}

func (r *ContestRepository) GetByID(ctx context.Context, contestID string) (contest.Contest, bool, error) {
	query, args, err := qb.Select(contestSelectColumns...).From("contests").
		Where(qb.Eq("public_id", contestID)).
		ToSQL()
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("build select contest query: %w", err)
	}

	var row contestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("select contest: %w", err)
	}

	return contestFromRow(row), true, nil
}

func contestFromRow(row contestTableModel) contest.Contest {
	return contest.Contest{
		ID:         row.PublicID,
		Name:       row.Name,
		Status:     contest.Status(row.Status),
		EntryFee:   row.EntryFee,
		MaxEntries: row.MaxEntries,
		StartsAt:   row.StartsAt,
	}
}
