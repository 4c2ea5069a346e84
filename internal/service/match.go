package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
	"github.com/rs/zerolog"
)

type matchService struct {
	matches repository.MatchRepository
	events  repository.ScoreEventRepository
	seasons repository.SeasonRepository
	teams   repository.TeamRepository
	tx      repository.TxManager
	log     zerolog.Logger
}

func NewMatchService(matches repository.MatchRepository, events repository.ScoreEventRepository, seasons repository.SeasonRepository, teams repository.TeamRepository, tx repository.TxManager, logger zerolog.Logger) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	return &matchService{matches: matches, events: events, seasons: seasons, teams: teams, tx: tx, log: l}
}

// validateMatchDraft checks local constraints only; existence checks run
// separately so structurally broken input never touches the database.
func validateMatchDraft(d model.MatchDraft) []FieldError {
	var ferrs []FieldError
	if d.SeasonID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "season_id", Message: "must be > 0"})
	}
	if d.HomeTeamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "home_team_id", Message: "must be > 0"})
	}
	if d.AwayTeamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "away_team_id", Message: "must be > 0"})
	}
	if d.HomeTeamID > 0 && d.AwayTeamID > 0 && d.HomeTeamID == d.AwayTeamID {
		ferrs = append(ferrs, FieldError{Field: "teams", Message: "home and away must differ"})
	}
	if d.HomeScoreUnidentified < 0 {
		ferrs = append(ferrs, FieldError{Field: "home_score_unidentified", Message: "must be >= 0"})
	}
	if d.AwayScoreUnidentified < 0 {
		ferrs = append(ferrs, FieldError{Field: "away_score_unidentified", Message: "must be >= 0"})
	}
	return ferrs
}

func (s *matchService) checkMatchRefs(ctx context.Context, d model.MatchDraft) ([]FieldError, error) {
	var ferrs []FieldError
	ok, err := s.seasons.Exists(ctx, d.SeasonID)
	if err != nil {
		return nil, err
	}
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "season_id", Message: "season does not exist"})
	}
	ok, err = s.teams.Exists(ctx, d.HomeTeamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "home_team_id", Message: "team does not exist"})
	}
	ok, err = s.teams.Exists(ctx, d.AwayTeamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		ferrs = append(ferrs, FieldError{Field: "away_team_id", Message: "team does not exist"})
	}
	return ferrs, nil
}

func (s *matchService) CreateMatch(ctx context.Context, d model.MatchDraft) (model.Match, error) {
	start := time.Now()
	d.Status = normalizeStatus(d.Status)

	if err := NewInvalidInputError(validateMatchDraft(d)); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("match validation failed (structure)")
		return model.Match{}, err
	}
	ferrs, err := s.checkMatchRefs(ctx, d)
	if err != nil {
		return model.Match{}, err
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("match validation failed (existence)")
		return model.Match{}, err
	}

	out, err := s.matches.Create(ctx, d)
	if err != nil {
		s.log.Error().Err(err).Int64("season_id", d.SeasonID).Msg("create match failed")
		return model.Match{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("match_id", out.ID).Msg("match created")
	return out, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	if id <= 0 {
		return model.Match{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.matches.GetByID(ctx, id)
}

func (s *matchService) UpdateMatch(ctx context.Context, id int64, d model.MatchDraft) (model.Match, bool, error) {
	if id <= 0 {
		return model.Match{}, false, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	d.Status = normalizeStatus(d.Status)
	if err := NewInvalidInputError(validateMatchDraft(d)); err != nil {
		return model.Match{}, false, err
	}
	ferrs, err := s.checkMatchRefs(ctx, d)
	if err != nil {
		return model.Match{}, false, err
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Match{}, false, err
	}

	out, err := s.matches.Update(ctx, id, d)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Updating a missing match is a no-op by contract.
			return model.Match{}, false, nil
		}
		s.log.Error().Err(err).Int64("match_id", id).Msg("update match failed")
		return model.Match{}, false, err
	}
	return out, true, nil
}

// DeleteMatch removes the match and its score events in one transaction.
// The cascade itself is the score_events foreign key; the transaction
// keeps the boundary explicit should accompanying cleanup appear.
func (s *matchService) DeleteMatch(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	var existed bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.matches.Delete(ctx, id)
		if err != nil {
			return err
		}
		existed = ok
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int64("match_id", id).Msg("delete match failed")
		return false, err
	}
	if existed {
		s.log.Info().Int64("match_id", id).Msg("match deleted")
	}
	return existed, nil
}

func (s *matchService) ListMatches(ctx context.Context, f repository.MatchFilter, sortField repository.MatchSortField, order repository.SortOrder, p repository.Paging) (repository.Page[model.MatchListItem], error) {
	p = normalizePaging(p)
	res, err := s.matches.List(ctx, f, sortField, order, p)
	if err != nil {
		s.log.Error().Err(err).Int("page", p.Page).Int("page_size", p.PageSize).Msg("list matches failed")
		return repository.Page[model.MatchListItem]{}, err
	}
	return res, nil
}

// GetMatchDetail is the canonical realization of the score-consistency
// invariant: total = unidentified + count of that team's score events.
// Every caller that needs a match's real score goes through here.
func (s *matchService) GetMatchDetail(ctx context.Context, id int64) (model.MatchDetail, error) {
	if id <= 0 {
		return model.MatchDetail{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	m, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return model.MatchDetail{}, err
	}
	events, err := s.events.ListForMatch(ctx, id)
	if err != nil {
		return model.MatchDetail{}, err
	}
	orderScoreEvents(events)

	homeIdentified, awayIdentified := 0, 0
	for _, ev := range events {
		switch ev.TeamID {
		case m.HomeTeamID:
			homeIdentified++
		case m.AwayTeamID:
			awayIdentified++
		}
	}
	return model.MatchDetail{
		Match:  m,
		Events: events,
		HomeScore: model.TeamScore{
			TeamID:       m.HomeTeamID,
			Unidentified: m.HomeScoreUnidentified,
			Identified:   homeIdentified,
			Total:        m.HomeScoreUnidentified + homeIdentified,
		},
		AwayScore: model.TeamScore{
			TeamID:       m.AwayTeamID,
			Unidentified: m.AwayScoreUnidentified,
			Identified:   awayIdentified,
			Total:        m.AwayScoreUnidentified + awayIdentified,
		},
	}, nil
}

// orderScoreEvents sorts by period, then time within the period with
// absent times last, then id. The repository returns the same order,
// but the detail aggregator does not depend on it.
func orderScoreEvents(events []model.ScoreEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Period != b.Period {
			return a.Period < b.Period
		}
		as, aok := eventSeconds(a)
		bs, bok := eventSeconds(b)
		if aok != bok {
			return aok // timed events before untimed ones
		}
		if aok && as != bs {
			return as < bs
		}
		return a.ID < b.ID
	})
}

// eventSeconds flattens minutes/seconds into a single offset; ok is
// false when neither component is recorded.
func eventSeconds(ev model.ScoreEvent) (int, bool) {
	if ev.TimeMinutes == nil && ev.TimeSeconds == nil {
		return 0, false
	}
	total := 0
	if ev.TimeMinutes != nil {
		total += *ev.TimeMinutes * 60
	}
	if ev.TimeSeconds != nil {
		total += *ev.TimeSeconds
	}
	return total, true
}

var _ MatchService = (*matchService)(nil)
