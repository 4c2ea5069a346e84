package main

import (
	"context"
	"log"

	"github.com/maxviazov/hockey-stats-service/internal/config"
	"github.com/maxviazov/hockey-stats-service/internal/logger"
	"github.com/maxviazov/hockey-stats-service/internal/repository"
	"github.com/maxviazov/hockey-stats-service/internal/repository/postgres"
	"github.com/maxviazov/hockey-stats-service/internal/service"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("logger initialization failed: %v", err)
	}

	ctx := context.Background()
	repo, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatalf("postgres connection failed: %v", err)
	}
	defer repo.Close()

	pool := repo.Pool()
	tx := postgres.NewTxManager(pool)
	matches := postgres.NewMatchRepository(pool)
	events := postgres.NewScoreEventRepository(pool)
	stats := postgres.NewStatsRepository(pool)
	roster := postgres.NewRosterRepository(pool)
	teams := postgres.NewTeamRepository(pool)
	seasons := postgres.NewSeasonRepository(pool)
	players := postgres.NewPlayerRepository(pool)

	// The data layer is the whole of this service; transport wiring
	// lives in the consuming application.
	_ = service.NewMatchService(matches, events, seasons, teams, tx, appLogger)
	_ = service.NewScoreEventService(events, matches, players, appLogger)
	_ = service.NewPlayerStatsService(stats, players, appLogger)
	_ = service.NewRosterService(roster, teams, seasons, players, appLogger)

	if err := postgres.NewPinger(pool).Ping(ctx); err != nil {
		appLogger.Fatal().Err(err).Msg("readiness probe failed")
	}
	appLogger.Info().Msg("hockey stats data layer ready")
}
