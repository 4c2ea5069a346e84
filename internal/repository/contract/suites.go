// Package contract holds reusable repository contract suites. Any
// storage implementation wired through a Factory must pass them; the
// postgres package runs them against a real database when enabled.
package contract

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
)

// Env bundles every repository implementation under test. Seeding
// reference rows crosses entity boundaries, so one factory builds the
// whole set against a clean schema.
type Env struct {
	Matches repository.MatchRepository
	Events  repository.ScoreEventRepository
	Stats   repository.StatsRepository
	Roster  repository.RosterRepository
	Teams   repository.TeamRepository
	Seasons repository.SeasonRepository
	Players repository.PlayerRepository
	Tx      repository.TxManager
}

// Factory returns a fresh Env plus a cleanup that wipes all rows.
type Factory func(t *testing.T) (Env, func())

func (e Env) seedMatch(ctx context.Context, t *testing.T, tag string) (model.Match, model.Team, model.Team) {
	t.Helper()
	season, err := e.Seasons.Create(ctx, "season-"+tag)
	if err != nil {
		t.Fatalf("seed season: %v", err)
	}
	home, err := e.Teams.Create(ctx, "home-"+tag)
	if err != nil {
		t.Fatalf("seed home team: %v", err)
	}
	away, err := e.Teams.Create(ctx, "away-"+tag)
	if err != nil {
		t.Fatalf("seed away team: %v", err)
	}
	m, err := e.Matches.Create(ctx, model.MatchDraft{
		SeasonID: season.ID, HomeTeamID: home.ID, AwayTeamID: away.ID, Status: "completed",
	})
	if err != nil {
		t.Fatalf("seed match: %v", err)
	}
	return m, home, away
}

func RunMatchRepositoryContract(t *testing.T, makeEnv Factory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, _, _ := env.seedMatch(ctx, t, "cg")
		got, err := env.Matches.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != created.ID || got.SeasonID != created.SeasonID {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		if _, err := env.Matches.GetByID(context.Background(), 999999); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete_cascades_to_score_events", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m, home, away := env.seedMatch(ctx, t, "del")
		ev1, err := env.Events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: home.ID, Period: 1})
		if err != nil {
			t.Fatalf("seed event: %v", err)
		}
		ev2, err := env.Events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: away.ID, Period: 2})
		if err != nil {
			t.Fatalf("seed event: %v", err)
		}

		existed, err := env.Matches.Delete(ctx, m.ID)
		if err != nil || !existed {
			t.Fatalf("delete: existed=%v err=%v", existed, err)
		}
		for _, id := range []int64{ev1.ID, ev2.ID} {
			if _, err := env.Events.GetByID(ctx, id); err != repository.ErrNotFound {
				t.Fatalf("event %d must be cascade-deleted, got %v", id, err)
			}
		}
		if existed, _ := env.Matches.Delete(ctx, m.ID); existed {
			t.Fatalf("second delete must be a no-op")
		}
	})

	t.Run("fk_violation_names_constraint", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m, home, _ := env.seedMatch(ctx, t, "fk")
		_, err := env.Events.Create(ctx, model.ScoreEventDraft{
			MatchID: m.ID, TeamID: home.ID, Period: 1, ScorerID: int64Ptr(424242),
		})
		if err == nil {
			t.Fatalf("expected referential error")
		}
		if repository.FKConstraint(err) == "" {
			t.Fatalf("want constraint name on error, got %v", err)
		}
	})

	t.Run("list_filters_and_pagination", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		season, err := env.Seasons.Create(ctx, "season-list")
		if err != nil {
			t.Fatalf("seed season: %v", err)
		}
		a, err := env.Teams.Create(ctx, "list-a")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		b, err := env.Teams.Create(ctx, "list-b")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		c, err := env.Teams.Create(ctx, "list-c")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		// a hosts b, b hosts c, c hosts a: each team appears twice, once
		// per side, so the team filter must OR across both columns.
		for _, pair := range [][2]int64{{a.ID, b.ID}, {b.ID, c.ID}, {c.ID, a.ID}} {
			if _, err := env.Matches.Create(ctx, model.MatchDraft{
				SeasonID: season.ID, HomeTeamID: pair[0], AwayTeamID: pair[1], Status: "completed",
			}); err != nil {
				t.Fatalf("seed match: %v", err)
			}
		}

		res, err := env.Matches.List(ctx, repository.MatchFilter{TeamID: &a.ID},
			repository.MatchSortDate, repository.SortAsc, repository.NewPaging(1, 10))
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 2 {
			t.Fatalf("team filter must match home or away, total=%d", res.Total)
		}
		if res.Items[0].HomeTeamName == "" || res.Items[0].SeasonName == "" {
			t.Fatalf("joined display fields missing: %+v", res.Items[0])
		}

		paged, err := env.Matches.List(ctx, repository.MatchFilter{},
			repository.MatchSortDate, repository.SortAsc, repository.NewPaging(1, 2))
		if err != nil {
			t.Fatalf("list paged: %v", err)
		}
		if len(paged.Items) != 2 || paged.Total != 3 || paged.TotalPages != 2 || !paged.HasNext {
			t.Fatalf("unexpected page: len=%d %+v", len(paged.Items), paged)
		}

		empty, err := env.Matches.List(ctx, repository.MatchFilter{},
			repository.MatchSortDate, repository.SortAsc, repository.NewPaging(5, 2))
		if err != nil {
			t.Fatalf("list past end: %v", err)
		}
		if len(empty.Items) != 0 || empty.Total != 3 {
			t.Fatalf("page past end must keep the filtered total: %+v", empty)
		}
	})
}

func RunScoreEventRepositoryContract(t *testing.T, makeEnv Factory) {
	t.Helper()

	t.Run("list_for_match_ordering", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m, home, away := env.seedMatch(ctx, t, "ord")

		// Period 3, then two period-1 events, then an untimed period-1 row.
		p3, _ := env.Events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: home.ID, Period: 3})
		p1late, _ := env.Events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: away.ID, Period: 1, TimeMinutes: intPtr(15)})
		p1early, _ := env.Events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: home.ID, Period: 1, TimeMinutes: intPtr(2), TimeSeconds: intPtr(30)})
		p1untimed, err := env.Events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: home.ID, Period: 1})
		if err != nil {
			t.Fatalf("seed events: %v", err)
		}

		want := []int64{p1early.ID, p1late.ID, p1untimed.ID, p3.ID}
		for range [2]int{} { // repeated calls stay deterministic
			events, err := env.Events.ListForMatch(ctx, m.ID)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(events) != len(want) {
				t.Fatalf("want %d events, got %d", len(want), len(events))
			}
			for i, ev := range events {
				if ev.ID != want[i] {
					t.Fatalf("position %d: got %d want %d", i, ev.ID, want[i])
				}
			}
		}
	})

	t.Run("update_and_delete_report_existence", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m, home, _ := env.seedMatch(ctx, t, "ud")

		ev, err := env.Events.Create(ctx, model.ScoreEventDraft{MatchID: m.ID, TeamID: home.ID, Period: 1})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		updated, err := env.Events.Update(ctx, ev.ID, model.ScoreEventDraft{MatchID: m.ID, TeamID: home.ID, Period: 2})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Period != 2 {
			t.Fatalf("update not applied: %+v", updated)
		}
		if _, err := env.Events.Update(ctx, 999999, model.ScoreEventDraft{MatchID: m.ID, TeamID: home.ID, Period: 1}); err != repository.ErrNotFound {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
		existed, err := env.Events.Delete(ctx, ev.ID)
		if err != nil || !existed {
			t.Fatalf("delete: existed=%v err=%v", existed, err)
		}
		if existed, _ := env.Events.Delete(ctx, ev.ID); existed {
			t.Fatalf("second delete must report existed=false")
		}
	})
}

func RunStatsRepositoryContract(t *testing.T, makeEnv Factory) {
	t.Helper()

	t.Run("per_role_projection", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		m, home, _ := env.seedMatch(ctx, t, "roles")
		scorer, err := env.Players.Create(ctx, "scorer")
		if err != nil {
			t.Fatalf("seed player: %v", err)
		}
		mate, err := env.Players.Create(ctx, "mate")
		if err != nil {
			t.Fatalf("seed player: %v", err)
		}

		// scorer: one goal; mate: the assist on it plus a goal of his own
		// where scorer gets the secondary assist.
		if _, err := env.Events.Create(ctx, model.ScoreEventDraft{
			MatchID: m.ID, TeamID: home.ID, Period: 1, ScorerID: &scorer.ID, Assist1ID: &mate.ID,
		}); err != nil {
			t.Fatalf("seed event: %v", err)
		}
		if _, err := env.Events.Create(ctx, model.ScoreEventDraft{
			MatchID: m.ID, TeamID: home.ID, Period: 2, ScorerID: &mate.ID, Assist2ID: &scorer.ID,
		}); err != nil {
			t.Fatalf("seed event: %v", err)
		}

		roles, err := env.Stats.ListPlayerRoles(ctx, scorer.ID)
		if err != nil {
			t.Fatalf("roles: %v", err)
		}
		if len(roles) != 2 {
			t.Fatalf("scorer must have 2 credit rows, got %d", len(roles))
		}
		counts := map[model.ScoringRole]int{}
		for _, r := range roles {
			counts[r.Role]++
			if r.SeasonName == "" {
				t.Fatalf("season name must be joined: %+v", r)
			}
		}
		if counts[model.RoleGoal] != 1 || counts[model.RoleAssistSecondary] != 1 {
			t.Fatalf("unexpected role split: %v", counts)
		}

		page, err := env.Stats.ListScoringEvents(ctx, mate.ID,
			repository.ScoringEventFilter{Role: repository.RoleCategoryAssists},
			repository.ScoringEventSortPeriod, repository.SortAsc, repository.NewPaging(1, 10))
		if err != nil {
			t.Fatalf("scoring events: %v", err)
		}
		if page.Total != 1 || page.Items[0].Role != model.RoleAssistPrimary {
			t.Fatalf("assist filter mismatch: %+v", page)
		}
	})
}

func RunRosterRepositoryContract(t *testing.T, makeEnv Factory) {
	t.Helper()

	t.Run("unique_pair_conflict", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		team, err := env.Teams.Create(ctx, "pair-team")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		season, err := env.Seasons.Create(ctx, "pair-season")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		first, err := env.Roster.CreateParticipation(ctx, team.ID, season.ID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := env.Roster.CreateParticipation(ctx, team.ID, season.ID); err != repository.ErrAlreadyExists {
			t.Fatalf("want ErrAlreadyExists, got %v", err)
		}
		found, err := env.Roster.FindParticipation(ctx, team.ID, season.ID)
		if err != nil || found.ID != first.ID {
			t.Fatalf("find: %+v %v", found, err)
		}
	})

	t.Run("concurrent_creates_converge", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		team, err := env.Teams.Create(ctx, "race-team")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		season, err := env.Seasons.Create(ctx, "race-season")
		if err != nil {
			t.Fatalf("seed: %v", err)
		}

		// Both goroutines race the same pair; exactly one insert may win
		// and the loser must observe ErrAlreadyExists, never a second row.
		const callers = 8
		var wg sync.WaitGroup
		errs := make([]error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = env.Roster.CreateParticipation(ctx, team.ID, season.ID)
			}(i)
		}
		wg.Wait()

		wins := 0
		for i, err := range errs {
			switch err {
			case nil:
				wins++
			case repository.ErrAlreadyExists:
			default:
				t.Fatalf("caller %d: unexpected error %v", i, err)
			}
		}
		if wins != 1 {
			t.Fatalf("exactly one insert may win, got %d", wins)
		}
		if _, err := env.Roster.FindParticipation(ctx, team.ID, season.ID); err != nil {
			t.Fatalf("winner row must exist: %v", err)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeEnv Factory) {
	t.Helper()

	t.Run("rollback_discards_writes", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		boom := fmt.Errorf("forced failure")
		var teamID int64
		err := env.Tx.WithinTx(ctx, func(ctx context.Context) error {
			team, err := env.Teams.Create(ctx, "tx-team")
			if err != nil {
				return err
			}
			teamID = team.ID
			return boom
		})
		if err == nil {
			t.Fatalf("callback error must propagate")
		}
		exists, err := env.Teams.Exists(ctx, teamID)
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if exists {
			t.Fatalf("rolled-back insert must not be visible")
		}
	})

	t.Run("commit_keeps_writes", func(t *testing.T) {
		env, cleanup := makeEnv(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		var teamID int64
		err := env.Tx.WithinTx(ctx, func(ctx context.Context) error {
			team, err := env.Teams.Create(ctx, "tx-keep")
			if err != nil {
				return err
			}
			teamID = team.ID
			return nil
		})
		if err != nil {
			t.Fatalf("within tx: %v", err)
		}
		exists, err := env.Teams.Exists(ctx, teamID)
		if err != nil || !exists {
			t.Fatalf("committed insert must be visible: exists=%v err=%v", exists, err)
		}
	})
}

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }
