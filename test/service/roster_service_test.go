package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/maxviazov/hockey-stats-service/internal/repository"
	"github.com/maxviazov/hockey-stats-service/internal/service"
)

func newRosterFixture() (service.RosterService, *fakeRosterRepo) {
	logger := zerolog.New(io.Discard)
	roster := newFakeRosterRepo()
	teams := &fakeTeamRepo{fakeLookup{ok: map[int64]bool{10: true}}}
	seasons := &fakeSeasonRepo{fakeLookup{ok: map[int64]bool{1: true}}}
	players := &fakePlayerRepo{fakeLookup{ok: map[int64]bool{7: true}}}
	return service.NewRosterService(roster, teams, seasons, players, logger), roster
}

func TestRosterService_FindOrCreateParticipation_Idempotent(t *testing.T) {
	svc, roster := newRosterFixture()
	ctx := context.Background()

	first, err := svc.FindOrCreateParticipation(ctx, 10, 1)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.FindOrCreateParticipation(ctx, 10, 1)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("ids diverged: %d vs %d", first.ID, second.ID)
	}
	if len(roster.participations) != 1 {
		t.Fatalf("want exactly one row, got %d", len(roster.participations))
	}
	if roster.createCalls != 1 {
		t.Fatalf("create must run once, ran %d times", roster.createCalls)
	}
}

func TestRosterService_FindOrCreateParticipation_LostRaceFallsBackToWinner(t *testing.T) {
	svc, roster := newRosterFixture()
	ctx := context.Background()

	// Seed the winner's row, then make the resolver's lookup miss once so
	// its insert collides with the unique pair constraint.
	winner, err := roster.CreateParticipation(ctx, 10, 1)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	roster.missFindOnce = true

	got, err := svc.FindOrCreateParticipation(ctx, 10, 1)
	if err != nil {
		t.Fatalf("resolver must absorb the unique violation, got %v", err)
	}
	if got.ID != winner.ID {
		t.Fatalf("must converge on the winner's row: got %d want %d", got.ID, winner.ID)
	}
	if len(roster.participations) != 1 {
		t.Fatalf("race must not duplicate rows, got %d", len(roster.participations))
	}
}

func TestRosterService_FindOrCreateParticipation_Validation(t *testing.T) {
	svc, _ := newRosterFixture()
	ctx := context.Background()

	_, err := svc.FindOrCreateParticipation(ctx, 0, 1)
	if !serviceErrIsInvalid(err) || !hasFieldError(err, "team_id") {
		t.Fatalf("want team_id field error, got %v", err)
	}
	_, err = svc.FindOrCreateParticipation(ctx, 99, 1)
	if !serviceErrIsInvalid(err) || !hasFieldError(err, "team_id") {
		t.Fatalf("want existence field error, got %v", err)
	}
	_, err = svc.FindOrCreateParticipation(ctx, 10, 99)
	if !serviceErrIsInvalid(err) || !hasFieldError(err, "season_id") {
		t.Fatalf("want season existence field error, got %v", err)
	}
}

func TestRosterService_CreateParticipation_HardConflict(t *testing.T) {
	svc, _ := newRosterFixture()
	ctx := context.Background()

	if _, err := svc.CreateParticipation(ctx, 10, 1); err != nil {
		t.Fatalf("first create: %v", err)
	}
	// The hard create must surface the duplicate instead of reusing it.
	_, err := svc.CreateParticipation(ctx, 10, 1)
	if !errors.Is(err, repository.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestRosterService_FindOrCreateContract_Idempotent(t *testing.T) {
	svc, roster := newRosterFixture()
	ctx := context.Background()

	p, err := svc.FindOrCreateParticipation(ctx, 10, 1)
	if err != nil {
		t.Fatalf("participation: %v", err)
	}
	first, err := svc.FindOrCreateContract(ctx, p.ID, 7)
	if err != nil {
		t.Fatalf("first contract: %v", err)
	}
	second, err := svc.FindOrCreateContract(ctx, p.ID, 7)
	if err != nil {
		t.Fatalf("second contract: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("contract ids diverged: %d vs %d", first.ID, second.ID)
	}
	if len(roster.contracts) != 1 {
		t.Fatalf("want exactly one contract row, got %d", len(roster.contracts))
	}
}

func TestRosterService_FindOrCreateContract_Validation(t *testing.T) {
	svc, _ := newRosterFixture()
	ctx := context.Background()

	_, err := svc.FindOrCreateContract(ctx, 999, 7)
	if !serviceErrIsInvalid(err) || !hasFieldError(err, "team_participation_id") {
		t.Fatalf("want participation existence error, got %v", err)
	}

	p, err := svc.FindOrCreateParticipation(ctx, 10, 1)
	if err != nil {
		t.Fatalf("participation: %v", err)
	}
	_, err = svc.FindOrCreateContract(ctx, p.ID, 404)
	if !serviceErrIsInvalid(err) || !hasFieldError(err, "player_id") {
		t.Fatalf("want player existence error, got %v", err)
	}
}
