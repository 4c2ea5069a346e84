package service

import (
	"context"
	"errors"

	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type rosterService struct {
	roster  repository.RosterRepository
	teams   repository.TeamRepository
	seasons repository.SeasonRepository
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewRosterService(roster repository.RosterRepository, teams repository.TeamRepository, seasons repository.SeasonRepository, players repository.PlayerRepository, logger zerolog.Logger) RosterService {
	l := logger.With().Str("module", "service").Str("component", "roster").Logger()
	return &rosterService{roster: roster, teams: teams, seasons: seasons, players: players, log: l}
}

func (s *rosterService) checkParticipationRefs(ctx context.Context, teamID, seasonID int64) ([]FieldError, error) {
	var ferrs []FieldError
	if teamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be > 0"})
	}
	if seasonID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "season_id", Message: "must be > 0"})
	}
	if len(ferrs) > 0 {
		return ferrs, nil
	}
	ok, err := s.teams.Exists(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "team does not exist"})
	}
	ok, err = s.seasons.Exists(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "season_id", Message: "season does not exist"})
	}
	return ferrs, nil
}

// FindOrCreateParticipation converges to exactly one row per
// (team, season) pair. When a concurrent caller wins the insert race,
// the unique constraint surfaces ErrAlreadyExists and the winner's row
// is re-read instead of propagating the conflict.
func (s *rosterService) FindOrCreateParticipation(ctx context.Context, teamID, seasonID int64) (model.TeamParticipation, error) {
	ferrs, err := s.checkParticipationRefs(ctx, teamID, seasonID)
	if err != nil {
		return model.TeamParticipation{}, err
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.TeamParticipation{}, err
	}

	p, err := s.roster.FindParticipation(ctx, teamID, seasonID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.TeamParticipation{}, err
	}
	p, err = s.roster.CreateParticipation(ctx, teamID, seasonID)
	if err == nil {
		s.log.Info().Int64("team_id", teamID).Int64("season_id", seasonID).Int64("participation_id", p.ID).Msg("participation created")
		return p, nil
	}
	if errors.Is(err, repository.ErrAlreadyExists) {
		// Lost the race; someone else inserted the pair first.
		return s.roster.FindParticipation(ctx, teamID, seasonID)
	}
	return model.TeamParticipation{}, err
}

// CreateParticipation is the hard create for callers that have already
// established uniqueness and want a conflict instead of silent reuse.
func (s *rosterService) CreateParticipation(ctx context.Context, teamID, seasonID int64) (model.TeamParticipation, error) {
	ferrs, err := s.checkParticipationRefs(ctx, teamID, seasonID)
	if err != nil {
		return model.TeamParticipation{}, err
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.TeamParticipation{}, err
	}
	return s.roster.CreateParticipation(ctx, teamID, seasonID)
}

func (s *rosterService) checkContractRefs(ctx context.Context, participationID, playerID int64) ([]FieldError, error) {
	var ferrs []FieldError
	if participationID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_participation_id", Message: "must be > 0"})
	}
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	if len(ferrs) > 0 {
		return ferrs, nil
	}
	if _, err := s.roster.GetParticipation(ctx, participationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ferrs = append(ferrs, FieldError{Field: "team_participation_id", Message: "participation does not exist"})
		} else {
			return nil, err
		}
	}
	ok, err := s.players.Exists(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "player does not exist"})
	}
	return ferrs, nil
}

// FindOrCreateContract mirrors FindOrCreateParticipation for the
// (participation, player) pair.
func (s *rosterService) FindOrCreateContract(ctx context.Context, participationID, playerID int64) (model.PlayerContract, error) {
	ferrs, err := s.checkContractRefs(ctx, participationID, playerID)
	if err != nil {
		return model.PlayerContract{}, err
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.PlayerContract{}, err
	}

	c, err := s.roster.FindContract(ctx, participationID, playerID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return model.PlayerContract{}, err
	}
	c, err = s.roster.CreateContract(ctx, participationID, playerID)
	if err == nil {
		s.log.Info().Int64("participation_id", participationID).Int64("player_id", playerID).Int64("contract_id", c.ID).Msg("contract created")
		return c, nil
	}
	if errors.Is(err, repository.ErrAlreadyExists) {
		return s.roster.FindContract(ctx, participationID, playerID)
	}
	return model.PlayerContract{}, err
}

func (s *rosterService) CreateContract(ctx context.Context, participationID, playerID int64) (model.PlayerContract, error) {
	ferrs, err := s.checkContractRefs(ctx, participationID, playerID)
	if err != nil {
		return model.PlayerContract{}, err
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.PlayerContract{}, err
	}
	return s.roster.CreateContract(ctx, participationID, playerID)
}

var _ RosterService = (*rosterService)(nil)
