package postgres

import "time"

type standingTableModel struct {
	ID             int64      `db:"id"`
	TournamentID   string     `db:"tournament_public_id"`
	UserID         string     `db:"user_public_id"`
	Rank           int        `db:"rank"`
	TotalPoints    int        `db:"total_points"`
	ExactScores    int        `db:"exact_scores"`
	CorrectResults int        `db:"correct_results"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}
