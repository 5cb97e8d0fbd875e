package tournament

import (
	"context"
	"time"
)

// Repository exposes tournament configuration reads plus the single write
// the engine owns: the ending-date revision, always accompanied by its
// recalculation details for auditability.
type Repository interface {
	GetByID(ctx context.Context, tournamentID string) (Tournament, bool, error)
	ListParticipants(ctx context.Context, tournamentID string) ([]string, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
	UpdateEndingDate(ctx context.Context, tournamentID string, endingDate *time.Time, estimationUsed bool, details string) error
}
