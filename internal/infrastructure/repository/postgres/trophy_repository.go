package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpool/tournament-engine/internal/domain/trophy"
)

type TrophyRepository struct {
	db *sqlx.DB
}

func NewTrophyRepository(db *sqlx.DB) *TrophyRepository {
	return &TrophyRepository{db: db}
}

const selectUnlockedTypes = `
SELECT trophy_type
FROM trophy_unlocks
WHERE tournament_public_id = $1 AND user_public_id = $2
ORDER BY trophy_type`

func (r *TrophyRepository) ListUnlockedTypes(ctx context.Context, tournamentID, userID string) ([]trophy.Type, error) {
	var types []string
	if err := r.db.SelectContext(ctx, &types, selectUnlockedTypes, tournamentID, userID); err != nil {
		return nil, fmt.Errorf("select unlocked trophies: %w", err)
	}

	out := make([]trophy.Type, 0, len(types))
	for _, t := range types {
		out = append(out, trophy.Type(t))
	}
	return out, nil
}

const insertTrophyUnlock = `
INSERT INTO trophy_unlocks (tournament_public_id, user_public_id, trophy_type, unlocked_at, created_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (tournament_public_id, user_public_id, trophy_type) DO NOTHING`

// RecordUnlocks relies on the unique constraint for idempotency, so
// concurrent sweeps of the same tournament cannot double-award.
func (r *TrophyRepository) RecordUnlocks(ctx context.Context, events []trophy.UnlockEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin trophy unlocks: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, event := range events {
		if _, err := tx.ExecContext(ctx, insertTrophyUnlock,
			event.TournamentID, event.UserID, string(event.Type), event.UnlockedAt,
		); err != nil {
			return fmt.Errorf("insert trophy unlock user=%s type=%s: %w", event.UserID, event.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit trophy unlocks: %w", err)
	}
	return nil
}
