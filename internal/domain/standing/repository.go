package standing

import "context"

// Repository persists ranking snapshots. ApplySnapshot replaces the whole
// ranking of one tournament in a single batch so readers never observe a
// half-updated table.
type Repository interface {
	ApplySnapshot(ctx context.Context, tournamentID string, rows []Standing) error
	ListByTournament(ctx context.Context, tournamentID string) ([]Standing, error)
}
