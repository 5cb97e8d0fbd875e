package prediction

import "context"

// Repository exposes the read-only prediction view the engine consumes.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Prediction, error)
}
