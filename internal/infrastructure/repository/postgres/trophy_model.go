package postgres

import "time"

type trophyUnlockTableModel struct {
	ID           int64     `db:"id"`
	TournamentID string    `db:"tournament_public_id"`
	UserID       string    `db:"user_public_id"`
	TrophyType   string    `db:"trophy_type"`
	UnlockedAt   time.Time `db:"unlocked_at"`
	CreatedAt    time.Time `db:"created_at"`
}
