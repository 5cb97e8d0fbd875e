package memory

import (
	"context"
	"sync"

	"github.com/matchpool/tournament-engine/internal/domain/standing"
)

type StandingRepository struct {
	mu                    sync.RWMutex
	standingsByTournament map[string][]standing.Standing
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{standingsByTournament: make(map[string][]standing.Standing)}
}

// ApplySnapshot replaces the tournament's ranking wholesale. Standings are
// derived state, so a full swap is the correct write shape.
func (r *StandingRepository) ApplySnapshot(_ context.Context, tournamentID string, rows []standing.Standing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.standingsByTournament[tournamentID] = append([]standing.Standing(nil), rows...)
	return nil
}

func (r *StandingRepository) ListByTournament(_ context.Context, tournamentID string) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.standingsByTournament[tournamentID]
	out := make([]standing.Standing, 0, len(items))
	out = append(out, items...)
	return out, nil
}
