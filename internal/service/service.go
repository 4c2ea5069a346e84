// Package service holds business logic orchestration across repositories.
// Kept intentionally lean: only use-case coordination, validation and
// domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures.
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field errors are present.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// MatchService defines match-oriented use cases, including the match
// detail aggregation that realizes the score-consistency invariant.
type MatchService interface {
	CreateMatch(ctx context.Context, d model.MatchDraft) (model.Match, error)
	GetMatch(ctx context.Context, id int64) (model.Match, error)
	// UpdateMatch reports existed=false for an unknown id; that is a
	// no-op, not an error.
	UpdateMatch(ctx context.Context, id int64, d model.MatchDraft) (model.Match, bool, error)
	DeleteMatch(ctx context.Context, id int64) (bool, error)
	ListMatches(ctx context.Context, f repository.MatchFilter, sort repository.MatchSortField, order repository.SortOrder, p repository.Paging) (repository.Page[model.MatchListItem], error)
	GetMatchDetail(ctx context.Context, id int64) (model.MatchDetail, error)
}

// ScoreEventService defines score event use cases.
type ScoreEventService interface {
	CreateScoreEvent(ctx context.Context, d model.ScoreEventDraft) (model.ScoreEvent, error)
	UpdateScoreEvent(ctx context.Context, id int64, d model.ScoreEventDraft) (model.ScoreEvent, bool, error)
	DeleteScoreEvent(ctx context.Context, id int64) (bool, error)
	ListMatchEvents(ctx context.Context, matchID int64) ([]model.ScoreEvent, error)
}

// PlayerStatsService derives per-player statistics from the score event
// stream.
type PlayerStatsService interface {
	SeasonStats(ctx context.Context, playerID int64) ([]model.PlayerSeasonStats, error)
	ScoringEvents(ctx context.Context, playerID int64, f repository.ScoringEventFilter, sort repository.ScoringEventSortField, order repository.SortOrder, p repository.Paging) (repository.Page[model.PlayerScoringEvent], error)
}

// RosterService manages the unique-pair association rows. The FindOrCreate
// operations are idempotent; the Create operations fail hard on duplicates.
type RosterService interface {
	FindOrCreateParticipation(ctx context.Context, teamID, seasonID int64) (model.TeamParticipation, error)
	CreateParticipation(ctx context.Context, teamID, seasonID int64) (model.TeamParticipation, error)
	FindOrCreateContract(ctx context.Context, participationID, playerID int64) (model.PlayerContract, error)
	CreateContract(ctx context.Context, participationID, playerID int64) (model.PlayerContract, error)
}
