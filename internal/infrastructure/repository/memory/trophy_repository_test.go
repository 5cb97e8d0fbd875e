package memory

import (
	"context"
	"testing"
	"time"

	"github.com/matchpool/tournament-engine/internal/domain/trophy"
)

func TestTrophyRepository_RecordUnlocksIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTrophyRepository()
	first := time.Date(2026, 3, 7, 17, 0, 0, 0, time.UTC)

	events := []trophy.UnlockEvent{
		{TournamentID: "t1", UserID: "alice", Type: trophy.TypeKingOfDay, UnlockedAt: first},
	}
	if err := repo.RecordUnlocks(ctx, events); err != nil {
		t.Fatalf("record: %v", err)
	}

	// Replaying with a later timestamp must not overwrite the original.
	replay := []trophy.UnlockEvent{
		{TournamentID: "t1", UserID: "alice", Type: trophy.TypeKingOfDay, UnlockedAt: first.Add(time.Hour)},
	}
	if err := repo.RecordUnlocks(ctx, replay); err != nil {
		t.Fatalf("replay: %v", err)
	}

	kept := repo.Events("t1", "alice")
	if len(kept) != 1 {
		t.Fatalf("unexpected event count: %d", len(kept))
	}
	if !kept[0].UnlockedAt.Equal(first) {
		t.Fatalf("replay overwrote unlock time: %v", kept[0].UnlockedAt)
	}

	types, err := repo.ListUnlockedTypes(ctx, "t1", "alice")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(types) != 1 || types[0] != trophy.TypeKingOfDay {
		t.Fatalf("unexpected types: %v", types)
	}
}
