package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crickhq/fantasy-cricket/internal/domain/contest"
	"github.com/crickhq/fantasy-cricket/internal/domain/player"
	"github.com/crickhq/fantasy-cricket/internal/domain/team"
	"github.com/crickhq/fantasy-cricket/internal/domain/user"
	idgen "github.com/crickhq/fantasy-cricket/internal/platform/id"
	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
)

// AssembleTeamInput is the incoming payload for team creation. ContestID
// is optional; a blank value builds a contest-less team ranked on global
// player points.
type AssembleTeamInput struct {
	UserID        string
	ContestID     string
	Name          string
	PlayerIDs     []string
	CaptainID     string
	ViceCaptainID string
}

type TeamService struct {
	playerRepo  player.Repository
	teamRepo    team.Repository
	contestRepo contest.Repository
	rules       team.Rules
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewTeamService(
	playerRepo player.Repository,
	teamRepo team.Repository,
	contestRepo contest.Repository,
	rules team.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		playerRepo:  playerRepo,
		teamRepo:    teamRepo,
		contestRepo: contestRepo,
		rules:       rules,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// AssembleTeam validates the full selection against the roster rules and
// persists the team atomically. Nothing is written until every check has
// passed.
func (s *TeamService) AssembleTeam(ctx context.Context, input AssembleTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AssembleTeam")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.ContestID = strings.TrimSpace(input.ContestID)
	input.Name = strings.TrimSpace(input.Name)
	input.CaptainID = strings.TrimSpace(input.CaptainID)
	input.ViceCaptainID = strings.TrimSpace(input.ViceCaptainID)

	if input.UserID == "" {
		return team.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	if input.ContestID != "" {
		if err := s.validateContestEntry(ctx, input.ContestID); err != nil {
			return team.Team{}, err
		}
	}

	playerIDs, err := cleanPlayerIDs(input.PlayerIDs)
	if err != nil {
		return team.Team{}, err
	}

	if err := team.ValidateSelection(playerIDs, input.CaptainID, input.ViceCaptainID); err != nil {
		return team.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return team.Team{}, fmt.Errorf("get players by ids: %w", err)
	}

	playerByID := make(map[string]player.Player, len(players))
	for _, p := range players {
		playerByID[p.ID] = p
	}

	members := make([]team.Member, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		p, ok := playerByID[playerID]
		if !ok {
			return team.Team{}, fmt.Errorf("%w: player id %s not found in pool", ErrInvalidInput, playerID)
		}
		members = append(members, team.Member{
			PlayerID:      p.ID,
			Credits:       p.Credits,
			IsCaptain:     p.ID == input.CaptainID,
			IsViceCaptain: p.ID == input.ViceCaptainID,
		})
	}

	if err := team.ValidateMembers(members, s.rules); err != nil {
		return team.Team{}, fmt.Errorf("validate roster: %w", err)
	}

	if _, exists, err := s.teamRepo.GetByUserAndContest(ctx, input.UserID, input.ContestID); err != nil {
		return team.Team{}, fmt.Errorf("get existing team: %w", err)
	} else if exists {
		return team.Team{}, fmt.Errorf("%w: user=%s contest=%s", team.ErrDuplicateTeam, input.UserID, input.ContestID)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	t := team.Team{
		ID:        teamID,
		UserID:    input.UserID,
		ContestID: input.ContestID,
		Name:      input.Name,
		Members:   members,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The repository enforces the (user, contest) uniqueness again, so a
	// concurrent duplicate loses the race instead of slipping past the
	// check above.
	if err := s.teamRepo.Create(ctx, t); err != nil {
		if errors.Is(err, team.ErrDuplicateTeam) {
			return team.Team{}, err
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team assembled",
		"user_id", input.UserID,
		"contest_id", input.ContestID,
		"team_id", t.ID,
		"member_count", len(t.Members),
		"spent_credits", t.SpentCredits(),
	)

	return t, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return t, nil
}

func (s *TeamService) GetUserTeam(ctx context.Context, userID, contestID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetUserTeam")
	defer span.End()

	userID = strings.TrimSpace(userID)
	contestID = strings.TrimSpace(contestID)
	if userID == "" {
		return team.Team{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByUserAndContest(ctx, userID, contestID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by user and contest: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: no team for user=%s contest=%s", ErrNotFound, userID, contestID)
	}

	return t, nil
}

// DeleteTeam removes a roster. Only the owner or an admin may delete.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID string, principal user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.DeleteTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if t.UserID != principal.UserID && !principal.IsAdmin() {
		return fmt.Errorf("%w: team belongs to another user", ErrUnauthorized)
	}

	deleted, err := s.teamRepo.Delete(ctx, teamID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", teamID, "deleted_by", principal.UserID)

	return nil
}

func (s *TeamService) validateContestEntry(ctx context.Context, contestID string) error {
	c, exists, err := s.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return fmt.Errorf("get contest by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: contest=%s", ErrNotFound, contestID)
	}
	if !c.AcceptsEntries() {
		return fmt.Errorf("%w: contest %s is completed", ErrInvalidInput, contestID)
	}

	return nil
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		cleaned = append(cleaned, id)
	}

	return cleaned, nil
}
