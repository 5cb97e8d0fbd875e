package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/matchpool/tournament-engine/internal/domain/standing"
	"github.com/matchpool/tournament-engine/internal/domain/tournament"
	"github.com/matchpool/tournament-engine/internal/domain/trophy"
	"github.com/matchpool/tournament-engine/internal/infrastructure/repository/memory"
	"github.com/matchpool/tournament-engine/internal/platform/logging"
)

func trophyComputation(participants ...string) *Computation {
	comp := &Computation{
		Tournament:   testTournament("tt1", 1, 3),
		Participants: participants,
		Facts:        make(map[string]*UserFacts, len(participants)),
	}
	for _, userID := range participants {
		comp.Facts[userID] = &UserFacts{
			Streak: StreakSummary{ReachedAt: make(map[int]time.Time)},
		}
	}
	return comp
}

func eventTypes(events []trophy.UnlockEvent) []trophy.Type {
	out := make([]trophy.Type, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func TestTrophyService_Evaluate_FactsToUnlocks(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 7, 17, 0, 0, 0, time.UTC)
	comp := trophyComputation("alice")
	facts := comp.Facts["alice"]
	facts.FirstCorrectAt = at
	facts.FirstExactAt = at
	facts.Streak.ReachedAt[1] = at
	facts.Streak.ReachedAt[2] = at.Add(7 * 24 * time.Hour)
	facts.OpportunistAt = at

	svc := NewTrophyService(memory.NewTrophyRepository(), logging.NewNop())
	events, err := svc.Evaluate(context.Background(), comp)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	want := []trophy.Type{
		trophy.TypeDoubleKing,
		trophy.TypeFirstCorrectResult,
		trophy.TypeFirstExactScore,
		trophy.TypeKingOfDay,
		trophy.TypeOpportunist,
	}
	got := eventTypes(events)
	if len(got) != len(want) {
		t.Fatalf("unexpected unlocks: got=%v want=%v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected unlocks: got=%v want=%v", got, want)
		}
	}
	for _, e := range events {
		if e.UnlockedAt.IsZero() {
			t.Fatalf("event %s has no timestamp", e.Type)
		}
	}
}

func TestTrophyService_Evaluate_Idempotent(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 7, 17, 0, 0, 0, time.UTC)
	comp := trophyComputation("alice")
	comp.Facts["alice"].FirstCorrectAt = at

	repo := memory.NewTrophyRepository()
	svc := NewTrophyService(repo, logging.NewNop())

	first, err := svc.Evaluate(context.Background(), comp)
	if err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected one unlock, got %d", len(first))
	}
	if err := repo.RecordUnlocks(context.Background(), first); err != nil {
		t.Fatalf("record: %v", err)
	}

	second, err := svc.Evaluate(context.Background(), comp)
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("replay produced %d unlocks, want 0", len(second))
	}
}

func TestTrophyService_Evaluate_BallonDOr(t *testing.T) {
	t.Parallel()

	lastDecided := time.Date(2026, 5, 30, 22, 0, 0, 0, time.UTC)

	t.Run("strict winner on completed tournament", func(t *testing.T) {
		t.Parallel()

		comp := trophyComputation("alice", "bob")
		comp.Tournament.Status = tournament.StatusCompleted
		comp.AllDecided = true
		comp.LastDecidedAt = lastDecided
		comp.Standings = []standing.Standing{
			{UserID: "alice", Rank: 1, TotalPoints: 40},
			{UserID: "bob", Rank: 2, TotalPoints: 31},
		}

		svc := NewTrophyService(memory.NewTrophyRepository(), logging.NewNop())
		events, err := svc.Evaluate(context.Background(), comp)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if len(events) != 1 || events[0].Type != trophy.TypeBallonDOr {
			t.Fatalf("unexpected events: %v", eventTypes(events))
		}
		if events[0].UserID != "alice" || !events[0].UnlockedAt.Equal(lastDecided) {
			t.Fatalf("unexpected winner event: %+v", events[0])
		}
	})

	t.Run("tie for first awards nobody", func(t *testing.T) {
		t.Parallel()

		comp := trophyComputation("alice", "bob")
		comp.Tournament.Status = tournament.StatusCompleted
		comp.AllDecided = true
		comp.LastDecidedAt = lastDecided
		comp.Standings = []standing.Standing{
			{UserID: "alice", Rank: 1, TotalPoints: 40},
			{UserID: "bob", Rank: 1, TotalPoints: 40},
		}

		svc := NewTrophyService(memory.NewTrophyRepository(), logging.NewNop())
		events, err := svc.Evaluate(context.Background(), comp)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if len(events) != 0 {
			t.Fatalf("tie produced events: %v", eventTypes(events))
		}
	})

	t.Run("completed with undecided matches awards nobody", func(t *testing.T) {
		t.Parallel()

		comp := trophyComputation("alice")
		comp.Tournament.Status = tournament.StatusCompleted
		comp.AllDecided = false
		comp.Standings = []standing.Standing{{UserID: "alice", Rank: 1, TotalPoints: 12}}

		svc := NewTrophyService(memory.NewTrophyRepository(), logging.NewNop())
		events, err := svc.Evaluate(context.Background(), comp)
		if err != nil {
			t.Fatalf("evaluate: %v", err)
		}
		if len(events) != 0 {
			t.Fatalf("inconsistent completion produced events: %v", eventTypes(events))
		}
	})
}
