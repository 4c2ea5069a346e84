package repository

import (
	"context"

	"github.com/maxviazov/hockey-stats-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// MatchRepository declares persistence operations for matches.
// Update and Delete surface ErrNotFound for missing ids; the service
// layer downgrades that to a no-op result.
type MatchRepository interface {
	Create(ctx context.Context, d model.MatchDraft) (model.Match, error)
	GetByID(ctx context.Context, id int64) (model.Match, error)
	Update(ctx context.Context, id int64, d model.MatchDraft) (model.Match, error)
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f MatchFilter, sort MatchSortField, order SortOrder, p Paging) (Page[model.MatchListItem], error)
}

// ScoreEventRepository declares persistence operations for score events.
// ListForMatch returns events ordered by period, then time within period
// with absent times last, then id.
type ScoreEventRepository interface {
	Create(ctx context.Context, d model.ScoreEventDraft) (model.ScoreEvent, error)
	GetByID(ctx context.Context, id int64) (model.ScoreEvent, error)
	Update(ctx context.Context, id int64, d model.ScoreEventDraft) (model.ScoreEvent, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListForMatch(ctx context.Context, matchID int64) ([]model.ScoreEvent, error)
}

// StatsRepository declares read operations over the per-role projection
// of a player's score events.
type StatsRepository interface {
	// ListPlayerRoles returns every (event, role) row for the player,
	// unpaged, for the season-stats fold.
	ListPlayerRoles(ctx context.Context, playerID int64) ([]model.PlayerScoringEvent, error)
	// ListScoringEvents returns one filtered, sorted page of the same
	// projection with the total filtered count.
	ListScoringEvents(ctx context.Context, playerID int64, f ScoringEventFilter, sort ScoringEventSortField, order SortOrder, p Paging) (Page[model.PlayerScoringEvent], error)
}

// RosterRepository declares operations for the unique-pair association
// rows. The Find* lookups return ErrNotFound when no row exists; the
// Create* operations surface ErrAlreadyExists on a duplicate pair so the
// find-or-create resolver can fall back to re-reading the winner.
type RosterRepository interface {
	GetParticipation(ctx context.Context, id int64) (model.TeamParticipation, error)
	FindParticipation(ctx context.Context, teamID, seasonID int64) (model.TeamParticipation, error)
	CreateParticipation(ctx context.Context, teamID, seasonID int64) (model.TeamParticipation, error)
	FindContract(ctx context.Context, participationID, playerID int64) (model.PlayerContract, error)
	CreateContract(ctx context.Context, participationID, playerID int64) (model.PlayerContract, error)
}

// TeamRepository covers the slice of team persistence this core needs:
// seeding reference data and existence checks for validation layers.
type TeamRepository interface {
	Create(ctx context.Context, name string) (model.Team, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// SeasonRepository is the season counterpart of TeamRepository.
type SeasonRepository interface {
	Create(ctx context.Context, name string) (model.Season, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// PlayerRepository is the player counterpart of TeamRepository.
type PlayerRepository interface {
	Create(ctx context.Context, name string) (model.Player, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
