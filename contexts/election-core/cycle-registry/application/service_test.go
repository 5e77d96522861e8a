package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"electora/contexts/election-core/cycle-registry/adapters/memory"
	domainerrors "electora/contexts/election-core/cycle-registry/domain/errors"
)

func newFixture() (*memory.Store, Service) {
	store := memory.NewStore()
	return store, Service{Repo: store, Clock: store, IDGen: store}
}

func inputForYear(year int) CycleInput {
	return CycleInput{
		Year:      year,
		StartDate: time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateCycleRejectsBadYear(t *testing.T) {
	_, svc := newFixture()
	if _, err := svc.CreateCycle(context.Background(), inputForYear(1812)); !errors.Is(err, domainerrors.ErrInvalidCycleInput) {
		t.Fatalf("expected ErrInvalidCycleInput, got %v", err)
	}
}

func TestCreateCycleRequiresVotingWindow(t *testing.T) {
	_, svc := newFixture()

	missing := inputForYear(2024)
	missing.EndDate = time.Time{}
	if _, err := svc.CreateCycle(context.Background(), missing); !errors.Is(err, domainerrors.ErrInvalidCycleInput) {
		t.Fatalf("expected ErrInvalidCycleInput for missing end, got %v", err)
	}

	inverted := inputForYear(2024)
	inverted.StartDate, inverted.EndDate = inverted.EndDate, inverted.StartDate
	if _, err := svc.CreateCycle(context.Background(), inverted); !errors.Is(err, domainerrors.ErrInvalidCycleInput) {
		t.Fatalf("expected ErrInvalidCycleInput for inverted window, got %v", err)
	}
}

func TestCreateCycleRecordsVotingWindow(t *testing.T) {
	_, svc := newFixture()
	input := inputForYear(2024)
	cycle, err := svc.CreateCycle(context.Background(), input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !cycle.StartDate.Equal(input.StartDate) || !cycle.EndDate.Equal(input.EndDate) {
		t.Fatalf("window not recorded: start=%v end=%v", cycle.StartDate, cycle.EndDate)
	}

	fetched, err := svc.GetCycle(context.Background(), cycle.CycleID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !fetched.StartDate.Equal(input.StartDate) || !fetched.EndDate.Equal(input.EndDate) {
		t.Fatalf("window lost on read: start=%v end=%v", fetched.StartDate, fetched.EndDate)
	}
}

func TestCreateCycleRejectsDuplicateYear(t *testing.T) {
	_, svc := newFixture()
	if _, err := svc.CreateCycle(context.Background(), inputForYear(2024)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.CreateCycle(context.Background(), inputForYear(2024)); !errors.Is(err, domainerrors.ErrCycleExists) {
		t.Fatalf("expected ErrCycleExists, got %v", err)
	}
}

func TestCreateCycleStartsInactive(t *testing.T) {
	_, svc := newFixture()
	cycle, err := svc.CreateCycle(context.Background(), inputForYear(2024))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if cycle.IsActive {
		t.Fatal("new cycle must start inactive")
	}
	if _, err := svc.GetActiveCycle(context.Background()); !errors.Is(err, domainerrors.ErrNoActiveCycle) {
		t.Fatalf("expected ErrNoActiveCycle, got %v", err)
	}
}

func TestActivateCycleSwapsSingleActiveFlag(t *testing.T) {
	_, svc := newFixture()
	older, err := svc.CreateCycle(context.Background(), inputForYear(2023))
	if err != nil {
		t.Fatalf("create 2023 failed: %v", err)
	}
	newer, err := svc.CreateCycle(context.Background(), inputForYear(2024))
	if err != nil {
		t.Fatalf("create 2024 failed: %v", err)
	}

	if _, err := svc.ActivateCycle(context.Background(), older.CycleID); err != nil {
		t.Fatalf("activate 2023 failed: %v", err)
	}
	if _, err := svc.ActivateCycle(context.Background(), newer.CycleID); err != nil {
		t.Fatalf("activate 2024 failed: %v", err)
	}

	cycles, err := svc.ListCycles(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	activeCount := 0
	for _, cycle := range cycles {
		if cycle.IsActive {
			activeCount++
			if cycle.CycleID != newer.CycleID {
				t.Fatalf("wrong cycle active: %s", cycle.CycleID)
			}
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active cycle, got %d", activeCount)
	}
}

func TestActivateUnknownCycleKeepsCurrentActive(t *testing.T) {
	_, svc := newFixture()
	cycle, err := svc.CreateCycle(context.Background(), inputForYear(2024))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.ActivateCycle(context.Background(), cycle.CycleID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	if _, err := svc.ActivateCycle(context.Background(), "cycle-missing"); !errors.Is(err, domainerrors.ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound, got %v", err)
	}
	active, err := svc.GetActiveCycle(context.Background())
	if err != nil {
		t.Fatalf("active lookup failed: %v", err)
	}
	if active.CycleID != cycle.CycleID {
		t.Fatal("failed activation must not deactivate the current cycle")
	}
}

func TestDeleteCycleRefusedWhenVotesExist(t *testing.T) {
	store, svc := newFixture()
	cycle, err := svc.CreateCycle(context.Background(), inputForYear(2024))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	store.AddVoteRefs(cycle.CycleID, 3)

	if err := svc.DeleteCycle(context.Background(), cycle.CycleID); !errors.Is(err, domainerrors.ErrCycleInUse) {
		t.Fatalf("expected ErrCycleInUse, got %v", err)
	}
	if _, err := svc.GetCycle(context.Background(), cycle.CycleID); err != nil {
		t.Fatalf("refused delete must leave the cycle intact: %v", err)
	}
}

func TestDeleteUnusedCycle(t *testing.T) {
	store, svc := newFixture()
	cycle, err := svc.CreateCycle(context.Background(), inputForYear(2024))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	store.AddBallotRefs(cycle.CycleID, 2, 4)

	if err := svc.DeleteCycle(context.Background(), cycle.CycleID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetCycle(context.Background(), cycle.CycleID); !errors.Is(err, domainerrors.ErrCycleNotFound) {
		t.Fatalf("expected ErrCycleNotFound after delete, got %v", err)
	}
}

func TestUpdateCycleRejectsCollision(t *testing.T) {
	_, svc := newFixture()
	if _, err := svc.CreateCycle(context.Background(), inputForYear(2023)); err != nil {
		t.Fatalf("create 2023 failed: %v", err)
	}
	cycle, err := svc.CreateCycle(context.Background(), inputForYear(2024))
	if err != nil {
		t.Fatalf("create 2024 failed: %v", err)
	}
	if _, err := svc.UpdateCycle(context.Background(), cycle.CycleID, inputForYear(2023)); !errors.Is(err, domainerrors.ErrCycleExists) {
		t.Fatalf("expected ErrCycleExists, got %v", err)
	}
	updated, err := svc.UpdateCycle(context.Background(), cycle.CycleID, inputForYear(2025))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Year != 2025 {
		t.Fatalf("expected year 2025, got %d", updated.Year)
	}
	if updated.StartDate.Year() != 2025 || updated.EndDate.Year() != 2025 {
		t.Fatalf("window not moved with the year: start=%v end=%v", updated.StartDate, updated.EndDate)
	}
}
