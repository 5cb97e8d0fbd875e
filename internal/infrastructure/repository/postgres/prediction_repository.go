package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpool/tournament-engine/internal/domain/prediction"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

const selectPredictionsByTournament = `
SELECT user_public_id, tournament_public_id, match_public_id,
       home_score, away_score, is_default, submitted_at
FROM predictions
WHERE tournament_public_id = $1 AND deleted_at IS NULL
ORDER BY user_public_id, match_public_id`

func (r *PredictionRepository) ListByTournament(ctx context.Context, tournamentID string) ([]prediction.Prediction, error) {
	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, selectPredictionsByTournament, tournamentID); err != nil {
		return nil, fmt.Errorf("select predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, prediction.Prediction{
			UserID:       row.UserID,
			TournamentID: row.TournamentID,
			MatchID:      row.MatchID,
			HomeScore:    row.HomeScore,
			AwayScore:    row.AwayScore,
			IsDefault:    row.IsDefault,
			SubmittedAt:  row.SubmittedAt,
		})
	}
	return out, nil
}
