package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
	"github.com/maxviazov/hockey-stats-service/internal/service"
)

func newMatchFixture() (service.MatchService, *fakeMatchRepo, *fakeScoreEventRepo) {
	logger := zerolog.New(io.Discard)
	events := newFakeScoreEventRepo()
	matches := newFakeMatchRepo()
	matches.events = events
	seasons := &fakeSeasonRepo{fakeLookup{ok: map[int64]bool{1: true}}}
	teams := &fakeTeamRepo{fakeLookup{ok: map[int64]bool{10: true, 20: true}}}
	svc := service.NewMatchService(matches, events, seasons, teams, &fakeTx{}, logger)
	return svc, matches, events
}

func validDraft() model.MatchDraft {
	return model.MatchDraft{SeasonID: 1, HomeTeamID: 10, AwayTeamID: 20, Status: "completed"}
}

func TestMatchService_CreateMatch_Validation(t *testing.T) {
	svc, _, _ := newMatchFixture()
	ctx := context.Background()

	cases := []struct {
		name  string
		mut   func(*model.MatchDraft)
		field string
	}{
		{"negative home score", func(d *model.MatchDraft) { d.HomeScoreUnidentified = -1 }, "home_score_unidentified"},
		{"negative away score", func(d *model.MatchDraft) { d.AwayScoreUnidentified = -3 }, "away_score_unidentified"},
		{"same teams", func(d *model.MatchDraft) { d.AwayTeamID = d.HomeTeamID }, "teams"},
		{"missing season", func(d *model.MatchDraft) { d.SeasonID = 99 }, "season_id"},
		{"missing home team", func(d *model.MatchDraft) { d.HomeTeamID = 99 }, "home_team_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mut(&d)
			_, err := svc.CreateMatch(ctx, d)
			if !serviceErrIsInvalid(err) {
				t.Fatalf("want invalid input, got %v", err)
			}
			if !hasFieldError(err, tc.field) {
				t.Fatalf("missing field error %s in %v", tc.field, service.FieldErrors(err))
			}
		})
	}
}

func TestMatchService_CreateMatch_DefaultsStatus(t *testing.T) {
	svc, _, _ := newMatchFixture()
	d := validDraft()
	d.Status = "  "
	m, err := svc.CreateMatch(context.Background(), d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != "scheduled" {
		t.Fatalf("want default status, got %q", m.Status)
	}
}

func TestMatchService_UpdateDelete_MissingIsNoOp(t *testing.T) {
	svc, _, _ := newMatchFixture()
	ctx := context.Background()

	_, existed, err := svc.UpdateMatch(ctx, 42, validDraft())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if existed {
		t.Fatalf("update of missing match must report existed=false")
	}

	existed, err = svc.DeleteMatch(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if existed {
		t.Fatalf("delete of missing match must report existed=false")
	}
}

func TestMatchService_DeleteMatch_CascadesToEvents(t *testing.T) {
	svc, _, events := newMatchFixture()
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, validDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	ev, err := events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: 10, Period: 1})
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}

	existed, err := svc.DeleteMatch(ctx, m.ID)
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	if _, err := events.GetByID(ctx, ev.ID); err != repository.ErrNotFound {
		t.Fatalf("event must be gone after cascade, got %v", err)
	}
}

func TestMatchService_GetMatchDetail_ScoreConsistency(t *testing.T) {
	svc, _, events := newMatchFixture()
	ctx := context.Background()

	cases := []struct {
		name                 string
		homeUnid, awayUnid   int
		homeEvents, awayEvents int
		wantHome, wantAway   int
	}{
		{"all unidentified", 2, 1, 0, 0, 2, 1},
		{"mixed", 2, 0, 1, 1, 3, 1},
		{"all identified", 0, 0, 4, 2, 4, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			d.HomeScoreUnidentified = tc.homeUnid
			d.AwayScoreUnidentified = tc.awayUnid
			m, err := svc.CreateMatch(ctx, d)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			for i := 0; i < tc.homeEvents; i++ {
				if _, err := events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: 10, Period: 1}); err != nil {
					t.Fatalf("seed: %v", err)
				}
			}
			for i := 0; i < tc.awayEvents; i++ {
				if _, err := events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: 20, Period: 2}); err != nil {
					t.Fatalf("seed: %v", err)
				}
			}

			detail, err := svc.GetMatchDetail(ctx, m.ID)
			if err != nil {
				t.Fatalf("detail: %v", err)
			}
			if detail.HomeScore.Total != tc.wantHome || detail.AwayScore.Total != tc.wantAway {
				t.Fatalf("totals: home=%d away=%d, want %d/%d",
					detail.HomeScore.Total, detail.AwayScore.Total, tc.wantHome, tc.wantAway)
			}
			if detail.HomeScore.Identified != tc.homeEvents || detail.AwayScore.Identified != tc.awayEvents {
				t.Fatalf("identified: %+v %+v", detail.HomeScore, detail.AwayScore)
			}
			if len(detail.Events) != tc.homeEvents+tc.awayEvents {
				t.Fatalf("event count: %d", len(detail.Events))
			}
		})
	}
}

func TestMatchService_GetMatchDetail_OrdersEvents(t *testing.T) {
	svc, _, events := newMatchFixture()
	ctx := context.Background()

	m, err := svc.CreateMatch(ctx, validDraft())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Inserted out of chronological order on purpose.
	e3, _ := events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: 10, Period: 3})
	e1b, _ := events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: 20, Period: 1, TimeMinutes: ptr(12), TimeSeconds: ptr(30)})
	e1a, _ := events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: 10, Period: 1, TimeMinutes: ptr(4)})
	e1c, _ := events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: 10, Period: 1}) // no time: sorts last within period

	detail, err := svc.GetMatchDetail(ctx, m.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	want := []int64{e1a.ID, e1b.ID, e1c.ID, e3.ID}
	for i, ev := range detail.Events {
		if ev.ID != want[i] {
			t.Fatalf("position %d: got event %d, want %d", i, ev.ID, want[i])
		}
	}

	// Repeated calls must return the same order.
	again, err := svc.GetMatchDetail(ctx, m.ID)
	if err != nil {
		t.Fatalf("detail again: %v", err)
	}
	for i := range again.Events {
		if again.Events[i].ID != detail.Events[i].ID {
			t.Fatalf("ordering not deterministic at %d", i)
		}
	}
}

func TestMatchService_GetMatchDetail_NotFound(t *testing.T) {
	svc, _, _ := newMatchFixture()
	if _, err := svc.GetMatchDetail(context.Background(), 123); err != repository.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMatchService_ListMatches_NormalizesPaging(t *testing.T) {
	svc, matches, _ := newMatchFixture()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := matches.Create(ctx, validDraft()); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	res, err := svc.ListMatches(ctx, repository.MatchFilter{}, repository.MatchSortDate, repository.SortAsc, repository.Paging{Page: 0, PageSize: 500})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Page != 1 || res.PageSize != 100 {
		t.Fatalf("paging not clamped: page=%d size=%d", res.Page, res.PageSize)
	}
	if res.Total != 3 || res.TotalPages != 1 || res.HasNext {
		t.Fatalf("unexpected page math: %+v", res)
	}
}
