package postgres

import (
	"context"
	"fmt"

	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchpool/tournament-engine/internal/domain/prediction"
	"github.com/matchpool/tournament-engine/internal/domain/tournament"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

const selectTournamentByID = `
SELECT public_id, competition_ref, starting_matchday, ending_matchday, status,
       bonus_match_enabled, early_prediction_bonus_enabled,
       exact_score_points, correct_winner_points, default_draw_points,
       ending_date
FROM tournaments
WHERE public_id = $1 AND deleted_at IS NULL`

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, selectTournamentByID, tournamentID); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("select tournament: %w", err)
	}

	return tournament.Tournament{
		ID:                          row.PublicID,
		CompetitionRef:              row.CompetitionRef,
		StartingMatchday:            row.StartingMatchday,
		EndingMatchday:              row.EndingMatchday,
		Status:                      tournament.Status(row.Status),
		BonusMatchEnabled:           row.BonusMatchEnabled,
		EarlyPredictionBonusEnabled: row.EarlyPredictionBonusEnabled,
		Scoring: prediction.ScoringRules{
			ExactScorePoints:    row.ExactScorePoints,
			CorrectWinnerPoints: row.CorrectWinnerPoints,
			DefaultDrawPoints:   row.DefaultDrawPoints,
		},
		EndingDate: row.EndingDate,
	}, true, nil
}

const selectParticipants = `
SELECT user_public_id
FROM tournament_participants
WHERE tournament_public_id = $1 AND deleted_at IS NULL
ORDER BY user_public_id`

func (r *TournamentRepository) ListParticipants(ctx context.Context, tournamentID string) ([]string, error) {
	var out []string
	if err := r.db.SelectContext(ctx, &out, selectParticipants, tournamentID); err != nil {
		return nil, fmt.Errorf("select tournament participants: %w", err)
	}
	return out, nil
}

const selectActiveTournamentIDs = `
SELECT public_id
FROM tournaments
WHERE status = 'active' AND deleted_at IS NULL
ORDER BY public_id`

func (r *TournamentRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	var out []string
	if err := r.db.SelectContext(ctx, &out, selectActiveTournamentIDs); err != nil {
		return nil, fmt.Errorf("select active tournaments: %w", err)
	}
	return out, nil
}

const updateTournamentEndingDate = `
UPDATE tournaments
SET ending_date = $2, ending_date_estimated = $3, updated_at = NOW()
WHERE public_id = $1 AND deleted_at IS NULL`

const insertEndingDateEvent = `
INSERT INTO ending_date_events (tournament_public_id, ending_date, estimation_used, details, created_at)
VALUES ($1, $2, $3, $4, NOW())`

// UpdateEndingDate revises the date and appends the recalculation event in
// the same transaction, so the audit trail can never drift from the value.
func (r *TournamentRepository) UpdateEndingDate(ctx context.Context, tournamentID string, endingDate *time.Time, estimationUsed bool, details string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ending date update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, updateTournamentEndingDate, tournamentID, endingDate, estimationUsed); err != nil {
		return fmt.Errorf("update tournament ending date: %w", err)
	}
	if _, err := tx.ExecContext(ctx, insertEndingDateEvent, tournamentID, endingDate, estimationUsed, details); err != nil {
		return fmt.Errorf("insert ending date event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ending date update: %w", err)
	}
	return nil
}
