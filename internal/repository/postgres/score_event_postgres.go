package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
)

type scoreEventRepository struct{ pool *pgxpool.Pool }

func NewScoreEventRepository(pool *pgxpool.Pool) repository.ScoreEventRepository {
	return &scoreEventRepository{pool: pool}
}

const scoreEventColumns = `id, match_id, team_id, scorer_id, assist1_id, assist2_id,
	period, time_minutes, time_seconds, goal_type, created_at`

func scanScoreEvent(row pgx.Row) (model.ScoreEvent, error) {
	var out model.ScoreEvent
	err := row.Scan(&out.ID, &out.MatchID, &out.TeamID, &out.ScorerID, &out.Assist1ID, &out.Assist2ID,
		&out.Period, &out.TimeMinutes, &out.TimeSeconds, &out.GoalType, &out.CreatedAt)
	return out, err
}

func (r *scoreEventRepository) Create(ctx context.Context, d model.ScoreEventDraft) (model.ScoreEvent, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.ScoreEvent{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO score_events (match_id, team_id, scorer_id, assist1_id, assist2_id,
			period, time_minutes, time_seconds, goal_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+scoreEventColumns,
		d.MatchID, d.TeamID, d.ScorerID, d.Assist1ID, d.Assist2ID,
		d.Period, d.TimeMinutes, d.TimeSeconds, d.GoalType,
	)
	out, err := scanScoreEvent(row)
	if err != nil {
		return model.ScoreEvent{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *scoreEventRepository) GetByID(ctx context.Context, id int64) (model.ScoreEvent, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.ScoreEvent{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+scoreEventColumns+` FROM score_events WHERE id = $1`, id)
	out, err := scanScoreEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ScoreEvent{}, repository.ErrNotFound
		}
		return model.ScoreEvent{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *scoreEventRepository) Update(ctx context.Context, id int64, d model.ScoreEventDraft) (model.ScoreEvent, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.ScoreEvent{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE score_events SET match_id = $2, team_id = $3, scorer_id = $4,
			assist1_id = $5, assist2_id = $6, period = $7,
			time_minutes = $8, time_seconds = $9, goal_type = $10
		 WHERE id = $1
		 RETURNING `+scoreEventColumns,
		id, d.MatchID, d.TeamID, d.ScorerID, d.Assist1ID, d.Assist2ID,
		d.Period, d.TimeMinutes, d.TimeSeconds, d.GoalType,
	)
	out, err := scanScoreEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ScoreEvent{}, repository.ErrNotFound
		}
		return model.ScoreEvent{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *scoreEventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM score_events WHERE id = $1`, id)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListForMatch orders by period, then time within the period with
// absent times last (legacy rows), then id as the insertion-order
// tiebreak.
func (r *scoreEventRepository) ListForMatch(ctx context.Context, matchID int64) ([]model.ScoreEvent, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+scoreEventColumns+`
		 FROM score_events
		 WHERE match_id = $1
		 ORDER BY period, time_minutes NULLS LAST, time_seconds NULLS LAST, id`,
		matchID,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	res := make([]model.ScoreEvent, 0, 8)
	for rows.Next() {
		it, err := scanScoreEvent(rows)
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

var _ repository.ScoreEventRepository = (*scoreEventRepository)(nil)
