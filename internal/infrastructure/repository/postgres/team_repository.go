package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/crickhq/fantasy-cricket/internal/domain/team"
	qb "github.com/crickhq/fantasy-cricket/internal/platform/querybuilder"
)

// Contest-less teams store an empty contest id, keeping the
// (user_id, contest_public_id) uniqueness enforceable without
// NULL-aware indexes.
const teamUniqueOwnerConstraint = "fantasy_teams_owner_contest_key"

var teamSelectColumns = []string{
	"id",
	"public_id",
	"user_id",
	"contest_public_id",
	"name",
	"total_points",
	"created_at",
	"updated_at",
	"deleted_at",
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create writes the team row and its membership rows in one
// transaction, so a failed member insert never leaves a headless team.
func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertTeamQuery = `
INSERT INTO fantasy_teams (public_id, user_id, contest_public_id, name, total_points, created_at, updated_at)
VALUES (:public_id, :user_id, :contest_public_id, :name, :total_points, :created_at, :updated_at)`

	teamSQL, teamArgs, err := sqlx.Named(insertTeamQuery, map[string]any{
		"public_id":         t.ID,
		"user_id":           t.UserID,
		"contest_public_id": t.ContestID,
		"name":              t.Name,
		"total_points":      t.TotalPoints,
		"created_at":        t.CreatedAt,
		"updated_at":        t.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind insert team query: %w", err)
	}
	teamSQL = tx.Rebind(teamSQL)
	if _, err := tx.ExecContext(ctx, teamSQL, teamArgs...); err != nil {
		if isUniqueViolation(err, teamUniqueOwnerConstraint) {
			return fmt.Errorf("%w: user=%s contest=%s", team.ErrDuplicateTeam, t.UserID, t.ContestID)
		}
		return fmt.Errorf("insert team: %w", err)
	}

	const insertMemberQuery = `
INSERT INTO fantasy_team_members (team_public_id, player_public_id, credits, is_captain, is_vice_captain)
VALUES (:team_public_id, :player_public_id, :credits, :is_captain, :is_vice_captain)`

	for _, m := range t.Members {
		memberSQL, memberArgs, err := sqlx.Named(insertMemberQuery, map[string]any{
			"team_public_id":   t.ID,
			"player_public_id": m.PlayerID,
			"credits":          m.Credits,
			"is_captain":       m.IsCaptain,
			"is_vice_captain":  m.IsViceCaptain,
		})
		if err != nil {
			return fmt.Errorf("bind insert team member player=%s query: %w", m.PlayerID, err)
		}
		memberSQL = tx.Rebind(memberSQL)
		if _, err := tx.ExecContext(ctx, memberSQL, memberArgs...); err != nil {
			return fmt.Errorf("insert team member player=%s: %w", m.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team create tx: %w", err)
	}

	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("fantasy_teams").
		Where(
			qb.Eq("public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	members, err := r.membersByTeamIDs(ctx, []string{row.PublicID})
	if err != nil {
		return team.Team{}, false, err
	}

	return teamFromRow(row, members[row.PublicID]), true, nil
}

func (r *TeamRepository) GetByUserAndContest(ctx context.Context, userID, contestID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("fantasy_teams").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("contest_public_id", contestID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team by owner query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team by owner: %w", err)
	}

	members, err := r.membersByTeamIDs(ctx, []string{row.PublicID})
	if err != nil {
		return team.Team{}, false, err
	}

	return teamFromRow(row, members[row.PublicID]), true, nil
}

func (r *TeamRepository) ListByContest(ctx context.Context, contestID string) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("fantasy_teams").
		Where(
			qb.Eq("contest_public_id", contestID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams by contest query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams by contest: %w", err)
	}

	return r.teamsFromRows(ctx, rows)
}

func (r *TeamRepository) ListByPlayer(ctx context.Context, playerID string) ([]team.Team, error) {
	const query = `
SELECT t.id, t.public_id, t.user_id, t.contest_public_id, t.name, t.total_points, t.created_at, t.updated_at, t.deleted_at
FROM fantasy_teams t
JOIN fantasy_team_members m ON m.team_public_id = t.public_id AND m.deleted_at IS NULL
WHERE m.player_public_id = $1
  AND t.deleted_at IS NULL
ORDER BY t.id`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, playerID); err != nil {
		return nil, fmt.Errorf("select teams by player: %w", err)
	}

	return r.teamsFromRows(ctx, rows)
}

func (r *TeamRepository) SetCachedTotal(ctx context.Context, teamID string, totalPoints int) error {
	const query = `
UPDATE fantasy_teams
SET total_points = $1,
    updated_at = NOW()
WHERE public_id = $2
  AND deleted_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, totalPoints, teamID); err != nil {
		return fmt.Errorf("update cached team total: %w", err)
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx for team delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const deleteTeamQuery = `
UPDATE fantasy_teams
SET deleted_at = NOW()
WHERE public_id = $1
  AND deleted_at IS NULL`

	result, err := tx.ExecContext(ctx, deleteTeamQuery, teamID)
	if err != nil {
		return false, fmt.Errorf("soft delete team: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for team delete: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	const deleteMembersQuery = `
UPDATE fantasy_team_members
SET deleted_at = NOW()
WHERE team_public_id = $1
  AND deleted_at IS NULL`

	if _, err := tx.ExecContext(ctx, deleteMembersQuery, teamID); err != nil {
		return false, fmt.Errorf("soft delete team members: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit team delete tx: %w", err)
	}

	return true, nil
}

func (r *TeamRepository) teamsFromRows(ctx context.Context, rows []teamTableModel) ([]team.Team, error) {
	teamIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.PublicID)
	}

	members, err := r.membersByTeamIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row, members[row.PublicID]))
	}

	return out, nil
}

func (r *TeamRepository) membersByTeamIDs(ctx context.Context, teamIDs []string) (map[string][]team.Member, error) {
	if len(teamIDs) == 0 {
		return map[string][]team.Member{}, nil
	}

	query, args, err := qb.Select(
		"id",
		"team_public_id",
		"player_public_id",
		"credits",
		"is_captain",
		"is_vice_captain",
		"created_at",
		"deleted_at",
	).From("fantasy_team_members").
		Where(
			qb.In("team_public_id", stringSliceToAny(teamIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team members query: %w", err)
	}

	var rows []teamMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}

	out := make(map[string][]team.Member, len(teamIDs))
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], team.Member{
			PlayerID:      row.PlayerID,
			Credits:       row.Credits,
			IsCaptain:     row.IsCaptain,
			IsViceCaptain: row.IsViceCaptain,
		})
	}

	return out, nil
}

func teamFromRow(row teamTableModel, members []team.Member) team.Team {
	return team.Team{
		ID:          row.PublicID,
		UserID:      row.UserID,
		ContestID:   row.ContestID,
		Name:        row.Name,
		Members:     members,
		TotalPoints: row.TotalPoints,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
