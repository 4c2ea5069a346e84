package service

import (
	"context"
	"sort"

	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type playerStatsService struct {
	stats   repository.StatsRepository
	players repository.PlayerRepository
	log     zerolog.Logger
}

func NewPlayerStatsService(stats repository.StatsRepository, players repository.PlayerRepository, logger zerolog.Logger) PlayerStatsService {
	l := logger.With().Str("module", "service").Str("component", "player_stats").Logger()
	return &playerStatsService{stats: stats, players: players, log: l}
}

// SeasonStats folds the player's per-role scoring rows into season
// totals. Seasons without any credit for the player are absent; this is
// a sparse summary recomputed from the event stream on every call.
func (s *playerStatsService) SeasonStats(ctx context.Context, playerID int64) ([]model.PlayerSeasonStats, error) {
	if playerID <= 0 {
		return nil, NewInvalidInputError([]FieldError{{Field: "player_id", Message: "must be > 0"}})
	}
	ok, err := s.players.Exists(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, repository.ErrNotFound
	}

	roles, err := s.stats.ListPlayerRoles(ctx, playerID)
	if err != nil {
		s.log.Error().Err(err).Int64("player_id", playerID).Msg("list player roles failed")
		return nil, err
	}
	return foldSeasonStats(roles), nil
}

// foldSeasonStats groups (event, role) rows by season and counts goals
// and assists; points = goals + assists. Output is ordered by season
// name with season id as the tiebreak.
func foldSeasonStats(roles []model.PlayerScoringEvent) []model.PlayerSeasonStats {
	bySeason := make(map[int64]*model.PlayerSeasonStats)
	for _, r := range roles {
		st, ok := bySeason[r.SeasonID]
		if !ok {
			st = &model.PlayerSeasonStats{SeasonID: r.SeasonID, SeasonName: r.SeasonName}
			bySeason[r.SeasonID] = st
		}
		if r.Role == model.RoleGoal {
			st.Goals++
		} else {
			st.Assists++
		}
		st.Points = st.Goals + st.Assists
	}
	out := make([]model.PlayerSeasonStats, 0, len(bySeason))
	for _, st := range bySeason {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeasonName != out[j].SeasonName {
			return out[i].SeasonName < out[j].SeasonName
		}
		return out[i].SeasonID < out[j].SeasonID
	})
	return out
}

func (s *playerStatsService) ScoringEvents(ctx context.Context, playerID int64, f repository.ScoringEventFilter, sortField repository.ScoringEventSortField, order repository.SortOrder, p repository.Paging) (repository.Page[model.PlayerScoringEvent], error) {
	var zero repository.Page[model.PlayerScoringEvent]
	var ferrs []FieldError
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	if !isValidRoleCategory(f.Role) {
		ferrs = append(ferrs, FieldError{Field: "role", Message: "must be goals, assists or empty"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return zero, err
	}

	p = normalizePaging(p)
	res, err := s.stats.ListScoringEvents(ctx, playerID, f, sortField, order, p)
	if err != nil {
		s.log.Error().Err(err).Int64("player_id", playerID).Msg("list scoring events failed")
		return zero, err
	}
	return res, nil
}

var _ PlayerStatsService = (*playerStatsService)(nil)
