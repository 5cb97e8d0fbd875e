package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpool/tournament-engine/internal/domain/standing"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

const deleteStandings = `
DELETE FROM tournament_standings
WHERE tournament_public_id = $1`

const insertStanding = `
INSERT INTO tournament_standings
  (tournament_public_id, user_public_id, rank, total_points, exact_scores, correct_results, created_at, updated_at)
VALUES
  (:tournament_public_id, :user_public_id, :rank, :total_points, :exact_scores, :correct_results, NOW(), NOW())`

// ApplySnapshot swaps the whole ranking in one transaction. Standings are
// derived state, so delete-and-insert is simpler and safer than diffing.
func (r *StandingRepository) ApplySnapshot(ctx context.Context, tournamentID string, rows []standing.Standing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin standings snapshot: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, deleteStandings, tournamentID); err != nil {
		return fmt.Errorf("delete standings: %w", err)
	}

	for _, row := range rows {
		model := standingTableModel{
			TournamentID:   tournamentID,
			UserID:         row.UserID,
			Rank:           row.Rank,
			TotalPoints:    row.TotalPoints,
			ExactScores:    row.ExactScores,
			CorrectResults: row.CorrectResults,
		}
		if _, err := tx.NamedExecContext(ctx, insertStanding, model); err != nil {
			return fmt.Errorf("insert standing user=%s: %w", row.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit standings snapshot: %w", err)
	}
	return nil
}

const selectStandings = `
SELECT tournament_public_id, user_public_id, rank, total_points, exact_scores, correct_results
FROM tournament_standings
WHERE tournament_public_id = $1 AND deleted_at IS NULL
ORDER BY rank, user_public_id`

func (r *StandingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]standing.Standing, error) {
	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, selectStandings, tournamentID); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{
			TournamentID:   row.TournamentID,
			UserID:         row.UserID,
			Rank:           row.Rank,
			TotalPoints:    row.TotalPoints,
			ExactScores:    row.ExactScores,
			CorrectResults: row.CorrectResults,
		})
	}
	return out, nil
}
