package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
)

type statsRepository struct{ pool *pgxpool.Pool }

func NewStatsRepository(pool *pgxpool.Pool) repository.StatsRepository {
	return &statsRepository{pool: pool}
}

// playerRolesCTE projects one row per (score event, role) for a player:
// a scorer credit plus up to two assist credits per event, each tagged
// with its role discriminant and joined with match/season display fields.
// $1 is the player id in all three branches.
const playerRolesCTE = `
	SELECT se.id AS score_event_id, se.match_id, m.match_date,
	       m.season_id, s.name AS season_name, se.team_id,
	       'goal' AS role, se.period, se.time_minutes, se.time_seconds, se.goal_type
	FROM score_events se
	JOIN matches m ON m.id = se.match_id
	JOIN seasons s ON s.id = m.season_id
	WHERE se.scorer_id = $1
	UNION ALL
	SELECT se.id, se.match_id, m.match_date, m.season_id, s.name, se.team_id,
	       'assist_primary', se.period, se.time_minutes, se.time_seconds, se.goal_type
	FROM score_events se
	JOIN matches m ON m.id = se.match_id
	JOIN seasons s ON s.id = m.season_id
	WHERE se.assist1_id = $1
	UNION ALL
	SELECT se.id, se.match_id, m.match_date, m.season_id, s.name, se.team_id,
	       'assist_secondary', se.period, se.time_minutes, se.time_seconds, se.goal_type
	FROM score_events se
	JOIN matches m ON m.id = se.match_id
	JOIN seasons s ON s.id = m.season_id
	WHERE se.assist2_id = $1`

func scanScoringRow(rows pgx.Rows, extra ...any) (model.PlayerScoringEvent, error) {
	var it model.PlayerScoringEvent
	dest := []any{&it.ScoreEventID, &it.MatchID, &it.MatchDate, &it.SeasonID, &it.SeasonName,
		&it.TeamID, &it.Role, &it.Period, &it.TimeMinutes, &it.TimeSeconds, &it.GoalType}
	dest = append(dest, extra...)
	err := rows.Scan(dest...)
	return it, err
}

// ListPlayerRoles returns the full, unpaged per-role projection for the
// season-stats fold. Ordered deterministically so the fold is stable.
func (r *statsRepository) ListPlayerRoles(ctx context.Context, playerID int64) ([]model.PlayerScoringEvent, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`WITH roles AS (`+playerRolesCTE+`)
		 SELECT score_event_id, match_id, match_date, season_id, season_name,
		        team_id, role, period, time_minutes, time_seconds, goal_type
		 FROM roles
		 ORDER BY match_date NULLS LAST, score_event_id, role`,
		playerID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.PlayerScoringEvent, 0, 16)
	for rows.Next() {
		it, err := scanScoringRow(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, it)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return res, nil
}

func (r *statsRepository) ListScoringEvents(ctx context.Context, playerID int64, f repository.ScoringEventFilter, sort repository.ScoringEventSortField, order repository.SortOrder, p repository.Paging) (repository.Page[model.PlayerScoringEvent], error) {
	var zero repository.Page[model.PlayerScoringEvent]
	if err := ensurePool(r.pool); err != nil {
		return zero, err
	}
	p = repository.NewPaging(p.Page, p.PageSize)

	args := []any{playerID}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	conds := make([]string, 0, 4)
	switch f.Role {
	case repository.RoleCategoryGoals:
		conds = append(conds, "role = 'goal'")
	case repository.RoleCategoryAssists:
		conds = append(conds, "role IN ('assist_primary', 'assist_secondary')")
	}
	if f.SeasonID != nil {
		conds = append(conds, "season_id = "+arg(*f.SeasonID))
	}
	if f.TeamID != nil {
		conds = append(conds, "team_id = "+arg(*f.TeamID))
	}
	if f.DateFrom != nil {
		conds = append(conds, "match_date >= "+arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		conds = append(conds, "match_date <= "+arg(*f.DateTo))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	// (score_event_id, role) is unique across the projection and serves
	// as the stable tiebreak.
	orderBy := fmt.Sprintf("ORDER BY %s %s NULLS LAST, score_event_id %s, role",
		sort.Column(), order.SQL(), order.SQL())

	query := fmt.Sprintf(
		`WITH roles AS (%s)
		 SELECT score_event_id, match_id, match_date, season_id, season_name,
		        team_id, role, period, time_minutes, time_seconds, goal_type,
		        COUNT(*) OVER() AS total
		 FROM roles
		 %s %s LIMIT %s OFFSET %s`,
		playerRolesCTE, where, orderBy, arg(p.Limit()), arg(p.Offset()),
	)

	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return zero, repository.MapPgError(err)
	}
	defer rows.Close()

	items := make([]model.PlayerScoringEvent, 0, p.Limit())
	total := 0
	for rows.Next() {
		it, err := scanScoringRow(rows, &total)
		if err != nil {
			return zero, repository.MapPgError(err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return zero, repository.MapPgError(err)
	}
	if len(items) == 0 {
		countQuery := fmt.Sprintf(`WITH roles AS (%s) SELECT COUNT(*) FROM roles %s`, playerRolesCTE, where)
		if err := exec.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return zero, repository.MapPgError(err)
		}
	}
	return repository.NewPage(items, total, p), nil
}

var _ repository.StatsRepository = (*statsRepository)(nil)
