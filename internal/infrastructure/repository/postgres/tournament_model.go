package postgres

import (
	"time"
)

type tournamentTableModel struct {
	ID                          int64      `db:"id"`
	PublicID                    string     `db:"public_id"`
	CompetitionRef              string     `db:"competition_ref"`
	StartingMatchday            int        `db:"starting_matchday"`
	EndingMatchday              int        `db:"ending_matchday"`
	Status                      string     `db:"status"`
	BonusMatchEnabled           bool       `db:"bonus_match_enabled"`
	EarlyPredictionBonusEnabled bool       `db:"early_prediction_bonus_enabled"`
	ExactScorePoints            int        `db:"exact_score_points"`
	CorrectWinnerPoints         int        `db:"correct_winner_points"`
	DefaultDrawPoints           int        `db:"default_draw_points"`
	EndingDate                  *time.Time `db:"ending_date"`
	EndingDateEstimated         bool       `db:"ending_date_estimated"`
	CreatedAt                   time.Time  `db:"created_at"`
	UpdatedAt                   time.Time  `db:"updated_at"`
	DeletedAt                   *time.Time `db:"deleted_at"`
}
