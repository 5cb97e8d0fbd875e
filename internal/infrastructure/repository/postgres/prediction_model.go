package postgres

import "time"

type predictionTableModel struct {
	ID           int64      `db:"id"`
	UserID       string     `db:"user_public_id"`
	TournamentID string     `db:"tournament_public_id"`
	MatchID      string     `db:"match_public_id"`
	HomeScore    int        `db:"home_score"`
	AwayScore    int        `db:"away_score"`
	IsDefault    bool       `db:"is_default"`
	SubmittedAt  time.Time  `db:"submitted_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}
