package service

import (
	"context"
	"errors"

	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type scoreEventService struct {
	events  repository.ScoreEventRepository
	matches repository.MatchRepository
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewScoreEventService(events repository.ScoreEventRepository, matches repository.MatchRepository, players repository.PlayerRepository, logger zerolog.Logger) ScoreEventService {
	l := logger.With().Str("module", "service").Str("component", "score_event").Logger()
	return &scoreEventService{events: events, matches: matches, players: players, log: l}
}

// validateScoreEventDraft checks local constraints. Period 4 is overtime
// and 5 a shootout; higher values are accepted for multi-overtime games.
func validateScoreEventDraft(d model.ScoreEventDraft) []FieldError {
	var ferrs []FieldError
	if d.MatchID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "match_id", Message: "must be > 0"})
	}
	if d.TeamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be > 0"})
	}
	if d.Period < 1 {
		ferrs = append(ferrs, FieldError{Field: "period", Message: "must be >= 1"})
	}
	if d.TimeMinutes != nil && *d.TimeMinutes < 0 {
		ferrs = append(ferrs, FieldError{Field: "time_minutes", Message: "must be >= 0"})
	}
	if d.TimeSeconds != nil && (*d.TimeSeconds < 0 || *d.TimeSeconds > 59) {
		ferrs = append(ferrs, FieldError{Field: "time_seconds", Message: "must be between 0 and 59"})
	}
	for field, id := range map[string]*int64{"scorer_id": d.ScorerID, "assist1_id": d.Assist1ID, "assist2_id": d.Assist2ID} {
		if id != nil && *id <= 0 {
			ferrs = append(ferrs, FieldError{Field: field, Message: "must be > 0"})
		}
	}
	// One player cannot hold two credits on the same goal.
	if d.ScorerID != nil && d.Assist1ID != nil && *d.ScorerID == *d.Assist1ID {
		ferrs = append(ferrs, FieldError{Field: "assist1_id", Message: "must differ from scorer"})
	}
	if d.ScorerID != nil && d.Assist2ID != nil && *d.ScorerID == *d.Assist2ID {
		ferrs = append(ferrs, FieldError{Field: "assist2_id", Message: "must differ from scorer"})
	}
	if d.Assist1ID != nil && d.Assist2ID != nil && *d.Assist1ID == *d.Assist2ID {
		ferrs = append(ferrs, FieldError{Field: "assist2_id", Message: "must differ from assist1"})
	}
	return ferrs
}

// checkScoreEventRefs verifies the match exists, the team plays in it,
// and every referenced player exists. Existence checks improve client
// feedback over deferring to foreign key violations.
func (s *scoreEventService) checkScoreEventRefs(ctx context.Context, d model.ScoreEventDraft) ([]FieldError, error) {
	var ferrs []FieldError
	m, err := s.matches.GetByID(ctx, d.MatchID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return []FieldError{{Field: "match_id", Message: "match does not exist"}}, nil
		}
		return nil, err
	}
	if d.TeamID != m.HomeTeamID && d.TeamID != m.AwayTeamID {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be one of the match teams"})
	}
	for field, id := range map[string]*int64{"scorer_id": d.ScorerID, "assist1_id": d.Assist1ID, "assist2_id": d.Assist2ID} {
		if id == nil {
			continue
		}
		ok, err := s.players.Exists(ctx, *id)
		if err != nil {
			return nil, err
		}
		if !ok {
			ferrs = append(ferrs, FieldError{Field: field, Message: "player does not exist"})
		}
	}
	return ferrs, nil
}

func (s *scoreEventService) CreateScoreEvent(ctx context.Context, d model.ScoreEventDraft) (model.ScoreEvent, error) {
	if err := NewInvalidInputError(validateScoreEventDraft(d)); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("score event validation failed (structure)")
		return model.ScoreEvent{}, err
	}
	ferrs, err := s.checkScoreEventRefs(ctx, d)
	if err != nil {
		return model.ScoreEvent{}, err
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("score event validation failed (existence)")
		return model.ScoreEvent{}, err
	}

	out, err := s.events.Create(ctx, d)
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", d.MatchID).Msg("create score event failed")
		return model.ScoreEvent{}, err
	}
	s.log.Info().Int64("score_event_id", out.ID).Int64("match_id", out.MatchID).Msg("score event created")
	return out, nil
}

func (s *scoreEventService) UpdateScoreEvent(ctx context.Context, id int64, d model.ScoreEventDraft) (model.ScoreEvent, bool, error) {
	if id <= 0 {
		return model.ScoreEvent{}, false, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := NewInvalidInputError(validateScoreEventDraft(d)); err != nil {
		return model.ScoreEvent{}, false, err
	}
	ferrs, err := s.checkScoreEventRefs(ctx, d)
	if err != nil {
		return model.ScoreEvent{}, false, err
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.ScoreEvent{}, false, err
	}

	out, err := s.events.Update(ctx, id, d)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.ScoreEvent{}, false, nil
		}
		s.log.Error().Err(err).Int64("score_event_id", id).Msg("update score event failed")
		return model.ScoreEvent{}, false, err
	}
	return out, true, nil
}

func (s *scoreEventService) DeleteScoreEvent(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	existed, err := s.events.Delete(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("score_event_id", id).Msg("delete score event failed")
		return false, err
	}
	return existed, nil
}

func (s *scoreEventService) ListMatchEvents(ctx context.Context, matchID int64) ([]model.ScoreEvent, error) {
	if matchID <= 0 {
		return nil, NewInvalidInputError([]FieldError{{Field: "match_id", Message: "must be > 0"}})
	}
	return s.events.ListForMatch(ctx, matchID)
}

var _ ScoreEventService = (*scoreEventService)(nil)
