package service_test

import (
	"context"
	"errors"

	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
	"github.com/maxviazov/hockey-stats-service/internal/service"
)

// In-memory fakes shared by the service tests. They implement just
// enough behavior to exercise the orchestration logic; SQL-level
// behavior is covered by the repository contract suites.

type fakeTx struct{}

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }

var _ repository.TxManager = (*fakeTx)(nil)

type fakeLookup struct{ ok map[int64]bool }

func (f *fakeLookup) Exists(_ context.Context, id int64) (bool, error) { return f.ok[id], nil }

type fakeTeamRepo struct{ fakeLookup }

func (f *fakeTeamRepo) Create(_ context.Context, name string) (model.Team, error) {
	return model.Team{ID: 1, Name: name}, nil
}

type fakeSeasonRepo struct{ fakeLookup }

func (f *fakeSeasonRepo) Create(_ context.Context, name string) (model.Season, error) {
	return model.Season{ID: 1, Name: name}, nil
}

type fakePlayerRepo struct{ fakeLookup }

func (f *fakePlayerRepo) Create(_ context.Context, name string) (model.Player, error) {
	return model.Player{ID: 1, Name: name}, nil
}

var (
	_ repository.TeamRepository   = (*fakeTeamRepo)(nil)
	_ repository.SeasonRepository = (*fakeSeasonRepo)(nil)
	_ repository.PlayerRepository = (*fakePlayerRepo)(nil)
)

type fakeMatchRepo struct {
	matches map[int64]model.Match
	nextID  int64
	events  *fakeScoreEventRepo // cascade target, may be nil
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int64]model.Match), nextID: 1}
}

func (f *fakeMatchRepo) apply(id int64, d model.MatchDraft) model.Match {
	return model.Match{
		ID:                    id,
		SeasonID:              d.SeasonID,
		HomeTeamID:            d.HomeTeamID,
		AwayTeamID:            d.AwayTeamID,
		HomeScoreUnidentified: d.HomeScoreUnidentified,
		AwayScoreUnidentified: d.AwayScoreUnidentified,
		MatchDate:             d.MatchDate,
		Status:                d.Status,
		Venue:                 d.Venue,
	}
}

func (f *fakeMatchRepo) Create(_ context.Context, d model.MatchDraft) (model.Match, error) {
	m := f.apply(f.nextID, d)
	f.matches[m.ID] = m
	f.nextID++
	return m, nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, id int64) (model.Match, error) {
	m, ok := f.matches[id]
	if !ok {
		return model.Match{}, repository.ErrNotFound
	}
	return m, nil
}

func (f *fakeMatchRepo) Update(_ context.Context, id int64, d model.MatchDraft) (model.Match, error) {
	if _, ok := f.matches[id]; !ok {
		return model.Match{}, repository.ErrNotFound
	}
	m := f.apply(id, d)
	f.matches[id] = m
	return m, nil
}

func (f *fakeMatchRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.matches[id]; !ok {
		return false, nil
	}
	delete(f.matches, id)
	if f.events != nil {
		f.events.deleteByMatch(id)
	}
	return true, nil
}

func (f *fakeMatchRepo) List(_ context.Context, _ repository.MatchFilter, _ repository.MatchSortField, _ repository.SortOrder, p repository.Paging) (repository.Page[model.MatchListItem], error) {
	items := make([]model.MatchListItem, 0, len(f.matches))
	for _, m := range f.matches {
		items = append(items, model.MatchListItem{Match: m})
	}
	total := len(items)
	if len(items) > p.Limit() {
		items = items[:p.Limit()]
	}
	return repository.NewPage(items, total, p), nil
}

var _ repository.MatchRepository = (*fakeMatchRepo)(nil)

type fakeScoreEventRepo struct {
	events map[int64]model.ScoreEvent
	nextID int64
}

func newFakeScoreEventRepo() *fakeScoreEventRepo {
	return &fakeScoreEventRepo{events: make(map[int64]model.ScoreEvent), nextID: 1}
}

func (f *fakeScoreEventRepo) apply(id int64, d model.ScoreEventDraft) model.ScoreEvent {
	return model.ScoreEvent{
		ID:          id,
		MatchID:     d.MatchID,
		TeamID:      d.TeamID,
		ScorerID:    d.ScorerID,
		Assist1ID:   d.Assist1ID,
		Assist2ID:   d.Assist2ID,
		Period:      d.Period,
		TimeMinutes: d.TimeMinutes,
		TimeSeconds: d.TimeSeconds,
		GoalType:    d.GoalType,
	}
}

func (f *fakeScoreEventRepo) Create(_ context.Context, d model.ScoreEventDraft) (model.ScoreEvent, error) {
	ev := f.apply(f.nextID, d)
	f.events[ev.ID] = ev
	f.nextID++
	return ev, nil
}

func (f *fakeScoreEventRepo) GetByID(_ context.Context, id int64) (model.ScoreEvent, error) {
	ev, ok := f.events[id]
	if !ok {
		return model.ScoreEvent{}, repository.ErrNotFound
	}
	return ev, nil
}

func (f *fakeScoreEventRepo) Update(_ context.Context, id int64, d model.ScoreEventDraft) (model.ScoreEvent, error) {
	if _, ok := f.events[id]; !ok {
		return model.ScoreEvent{}, repository.ErrNotFound
	}
	ev := f.apply(id, d)
	f.events[id] = ev
	return ev, nil
}

func (f *fakeScoreEventRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := f.events[id]; !ok {
		return false, nil
	}
	delete(f.events, id)
	return true, nil
}

// ListForMatch deliberately returns events in insertion-id order without
// the period/time ordering, so tests prove the aggregator orders on its
// own instead of leaning on the repository.
func (f *fakeScoreEventRepo) ListForMatch(_ context.Context, matchID int64) ([]model.ScoreEvent, error) {
	out := make([]model.ScoreEvent, 0, len(f.events))
	for id := int64(1); id < f.nextID; id++ {
		if ev, ok := f.events[id]; ok && ev.MatchID == matchID {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeScoreEventRepo) deleteByMatch(matchID int64) {
	for id, ev := range f.events {
		if ev.MatchID == matchID {
			delete(f.events, id)
		}
	}
}

var _ repository.ScoreEventRepository = (*fakeScoreEventRepo)(nil)

type fakeStatsRepo struct {
	roles []model.PlayerScoringEvent
}

func (f *fakeStatsRepo) ListPlayerRoles(_ context.Context, _ int64) ([]model.PlayerScoringEvent, error) {
	return f.roles, nil
}

func (f *fakeStatsRepo) ListScoringEvents(_ context.Context, _ int64, filter repository.ScoringEventFilter, _ repository.ScoringEventSortField, _ repository.SortOrder, p repository.Paging) (repository.Page[model.PlayerScoringEvent], error) {
	matched := make([]model.PlayerScoringEvent, 0, len(f.roles))
	for _, r := range f.roles {
		switch filter.Role {
		case repository.RoleCategoryGoals:
			if r.Role != model.RoleGoal {
				continue
			}
		case repository.RoleCategoryAssists:
			if r.Role == model.RoleGoal {
				continue
			}
		}
		matched = append(matched, r)
	}
	total := len(matched)
	start := p.Offset()
	if start > total {
		start = total
	}
	end := start + p.Limit()
	if end > total {
		end = total
	}
	return repository.NewPage(matched[start:end], total, p), nil
}

var _ repository.StatsRepository = (*fakeStatsRepo)(nil)

type pairKey struct{ a, b int64 }

type fakeRosterRepo struct {
	participations map[pairKey]model.TeamParticipation
	contracts      map[pairKey]model.PlayerContract
	nextID         int64
	// missFindOnce makes the next pair lookup report not-found even when
	// the row exists, simulating a concurrent writer winning between the
	// resolver's read and insert.
	missFindOnce bool
	createCalls  int
}

func newFakeRosterRepo() *fakeRosterRepo {
	return &fakeRosterRepo{
		participations: make(map[pairKey]model.TeamParticipation),
		contracts:      make(map[pairKey]model.PlayerContract),
		nextID:         1,
	}
}

func (f *fakeRosterRepo) GetParticipation(_ context.Context, id int64) (model.TeamParticipation, error) {
	for _, p := range f.participations {
		if p.ID == id {
			return p, nil
		}
	}
	return model.TeamParticipation{}, repository.ErrNotFound
}

func (f *fakeRosterRepo) FindParticipation(_ context.Context, teamID, seasonID int64) (model.TeamParticipation, error) {
	if f.missFindOnce {
		f.missFindOnce = false
		return model.TeamParticipation{}, repository.ErrNotFound
	}
	p, ok := f.participations[pairKey{teamID, seasonID}]
	if !ok {
		return model.TeamParticipation{}, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeRosterRepo) CreateParticipation(_ context.Context, teamID, seasonID int64) (model.TeamParticipation, error) {
	f.createCalls++
	key := pairKey{teamID, seasonID}
	if _, ok := f.participations[key]; ok {
		return model.TeamParticipation{}, repository.ErrAlreadyExists
	}
	p := model.TeamParticipation{ID: f.nextID, TeamID: teamID, SeasonID: seasonID}
	f.participations[key] = p
	f.nextID++
	return p, nil
}

func (f *fakeRosterRepo) FindContract(_ context.Context, participationID, playerID int64) (model.PlayerContract, error) {
	c, ok := f.contracts[pairKey{participationID, playerID}]
	if !ok {
		return model.PlayerContract{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeRosterRepo) CreateContract(_ context.Context, participationID, playerID int64) (model.PlayerContract, error) {
	key := pairKey{participationID, playerID}
	if _, ok := f.contracts[key]; ok {
		return model.PlayerContract{}, repository.ErrAlreadyExists
	}
	c := model.PlayerContract{ID: f.nextID, TeamParticipationID: participationID, PlayerID: playerID}
	f.contracts[key] = c
	f.nextID++
	return c, nil
}

var _ repository.RosterRepository = (*fakeRosterRepo)(nil)

func serviceErrIsInvalid(err error) bool { return errors.Is(err, service.ErrInvalidInput) }

func hasFieldError(err error, field string) bool {
	for _, fe := range service.FieldErrors(err) {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func ptr[T any](v T) *T { return &v }
