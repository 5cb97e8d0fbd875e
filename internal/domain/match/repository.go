package match

import "context"

// Repository exposes the read-only match view the engine consumes. Rows are
// already canonical: adapters resolve the league/custom union on the way out.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Match, error)
}
