package trophy

import "context"

// Repository stores trophy unlocks. RecordUnlocks must be upsert-idempotent
// keyed by (tournament, user, type): replaying the same events is a no-op.
type Repository interface {
	ListUnlockedTypes(ctx context.Context, tournamentID, userID string) ([]Type, error)
	RecordUnlocks(ctx context.Context, events []UnlockEvent) error
}
