package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
)

type matchRepository struct{ pool *pgxpool.Pool }

func NewMatchRepository(pool *pgxpool.Pool) repository.MatchRepository {
	return &matchRepository{pool: pool}
}

const matchColumns = `id, season_id, home_team_id, away_team_id,
	home_score_unidentified, away_score_unidentified,
	match_date, status, venue, created_at, updated_at`

func scanMatch(row pgx.Row) (model.Match, error) {
	var out model.Match
	err := row.Scan(&out.ID, &out.SeasonID, &out.HomeTeamID, &out.AwayTeamID,
		&out.HomeScoreUnidentified, &out.AwayScoreUnidentified,
		&out.MatchDate, &out.Status, &out.Venue, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

func (r *matchRepository) Create(ctx context.Context, d model.MatchDraft) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO matches (season_id, home_team_id, away_team_id,
			home_score_unidentified, away_score_unidentified, match_date, status, venue)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+matchColumns,
		d.SeasonID, d.HomeTeamID, d.AwayTeamID,
		d.HomeScoreUnidentified, d.AwayScoreUnidentified, d.MatchDate, d.Status, d.Venue,
	)
	out, err := scanMatch(row)
	if err != nil {
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id = $1`, id)
	out, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, repository.ErrNotFound
		}
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *matchRepository) Update(ctx context.Context, id int64, d model.MatchDraft) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE matches SET season_id = $2, home_team_id = $3, away_team_id = $4,
			home_score_unidentified = $5, away_score_unidentified = $6,
			match_date = $7, status = $8, venue = $9, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+matchColumns,
		id, d.SeasonID, d.HomeTeamID, d.AwayTeamID,
		d.HomeScoreUnidentified, d.AwayScoreUnidentified, d.MatchDate, d.Status, d.Venue,
	)
	out, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, repository.ErrNotFound
		}
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

// Delete removes the match row; score_events go with it via the
// ON DELETE CASCADE foreign key, so the removal is atomic.
func (r *matchRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *matchRepository) List(ctx context.Context, f repository.MatchFilter, sort repository.MatchSortField, order repository.SortOrder, p repository.Paging) (repository.Page[model.MatchListItem], error) {
	var zero repository.Page[model.MatchListItem]
	if err := ensurePool(r.pool); err != nil {
		return zero, err
	}
	p = repository.NewPaging(p.Page, p.PageSize)

	conds := make([]string, 0, 4)
	args := make([]any, 0, 6)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.SeasonID != nil {
		conds = append(conds, "m.season_id = "+arg(*f.SeasonID))
	}
	if f.TeamID != nil {
		// A team filter matches either side of the match.
		ph := arg(*f.TeamID)
		conds = append(conds, "(m.home_team_id = "+ph+" OR m.away_team_id = "+ph+")")
	}
	if f.Status != nil {
		conds = append(conds, "m.status = "+arg(*f.Status))
	}
	if f.DateFrom != nil {
		conds = append(conds, "m.match_date >= "+arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		conds = append(conds, "m.match_date <= "+arg(*f.DateTo))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	// Sort columns come from the closed MatchSortField enum, never from
	// raw input. NULLS LAST keeps undated legacy matches at the end in
	// either direction; m.id is the stable tiebreak.
	orderBy := fmt.Sprintf("ORDER BY %s %s NULLS LAST, m.id %s", sort.Column(), order.SQL(), order.SQL())

	query := fmt.Sprintf(
		`SELECT m.id, m.season_id, m.home_team_id, m.away_team_id,
			m.home_score_unidentified, m.away_score_unidentified,
			m.match_date, m.status, m.venue, m.created_at, m.updated_at,
			s.name AS season_name, ht.name AS home_team_name, aw.name AS away_team_name,
			COUNT(*) OVER() AS total
		 FROM matches m
		 JOIN seasons s ON s.id = m.season_id
		 JOIN teams ht ON ht.id = m.home_team_id
		 JOIN teams aw ON aw.id = m.away_team_id
		 %s %s LIMIT %s OFFSET %s`,
		where, orderBy, arg(p.Limit()), arg(p.Offset()),
	)

	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return zero, repository.MapPgError(err)
	}
	defer rows.Close()

	items := make([]model.MatchListItem, 0, p.Limit())
	total := 0
	for rows.Next() {
		var it model.MatchListItem
		if err := rows.Scan(&it.ID, &it.SeasonID, &it.HomeTeamID, &it.AwayTeamID,
			&it.HomeScoreUnidentified, &it.AwayScoreUnidentified,
			&it.MatchDate, &it.Status, &it.Venue, &it.CreatedAt, &it.UpdatedAt,
			&it.SeasonName, &it.HomeTeamName, &it.AwayTeamName, &total); err != nil {
			return zero, repository.MapPgError(err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return zero, repository.MapPgError(err)
	}
	if len(items) == 0 {
		// Empty page past the end still needs the filtered total.
		countQuery := "SELECT COUNT(*) FROM matches m " + where
		if err := exec.QueryRow(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return zero, repository.MapPgError(err)
		}
	}
	return repository.NewPage(items, total, p), nil
}

var _ repository.MatchRepository = (*matchRepository)(nil)
