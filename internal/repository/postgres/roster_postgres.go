package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/hockey-stats-service/internal/model"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
)

type rosterRepository struct{ pool *pgxpool.Pool }

func NewRosterRepository(pool *pgxpool.Pool) repository.RosterRepository {
	return &rosterRepository{pool: pool}
}

func (r *rosterRepository) GetParticipation(ctx context.Context, id int64) (model.TeamParticipation, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TeamParticipation{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, team_id, season_id FROM team_participations WHERE id = $1`, id)
	var out model.TeamParticipation
	if err := row.Scan(&out.ID, &out.TeamID, &out.SeasonID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TeamParticipation{}, repository.ErrNotFound
		}
		return model.TeamParticipation{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *rosterRepository) FindParticipation(ctx context.Context, teamID, seasonID int64) (model.TeamParticipation, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TeamParticipation{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, team_id, season_id FROM team_participations
		 WHERE team_id = $1 AND season_id = $2`,
		teamID, seasonID,
	)
	var out model.TeamParticipation
	if err := row.Scan(&out.ID, &out.TeamID, &out.SeasonID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TeamParticipation{}, repository.ErrNotFound
		}
		return model.TeamParticipation{}, repository.MapPgError(err)
	}
	return out, nil
}

// CreateParticipation is the hard create: the unique (team_id, season_id)
// constraint turns a duplicate pair into ErrAlreadyExists.
func (r *rosterRepository) CreateParticipation(ctx context.Context, teamID, seasonID int64) (model.TeamParticipation, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.TeamParticipation{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO team_participations (team_id, season_id)
		 VALUES ($1, $2)
		 RETURNING id, team_id, season_id`,
		teamID, seasonID,
	)
	var out model.TeamParticipation
	if err := row.Scan(&out.ID, &out.TeamID, &out.SeasonID); err != nil {
		return model.TeamParticipation{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *rosterRepository) FindContract(ctx context.Context, participationID, playerID int64) (model.PlayerContract, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlayerContract{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT id, team_participation_id, player_id FROM player_contracts
		 WHERE team_participation_id = $1 AND player_id = $2`,
		participationID, playerID,
	)
	var out model.PlayerContract
	if err := row.Scan(&out.ID, &out.TeamParticipationID, &out.PlayerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PlayerContract{}, repository.ErrNotFound
		}
		return model.PlayerContract{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *rosterRepository) CreateContract(ctx context.Context, participationID, playerID int64) (model.PlayerContract, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.PlayerContract{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO player_contracts (team_participation_id, player_id)
		 VALUES ($1, $2)
		 RETURNING id, team_participation_id, player_id`,
		participationID, playerID,
	)
	var out model.PlayerContract
	if err := row.Scan(&out.ID, &out.TeamParticipationID, &out.PlayerID); err != nil {
		return model.PlayerContract{}, repository.MapPgError(err)
	}
	return out, nil
}

var _ repository.RosterRepository = (*rosterRepository)(nil)
