package memory

import (
	"context"
	"sync"

	"github.com/matchpool/tournament-engine/internal/domain/match"
)

// MatchRepository keeps raw competition rows and normalizes them on read, so
// the in-memory adapter exercises the same view boundary as the database one.
type MatchRepository struct {
	mu                  sync.RWMutex
	recordsByTournament map[string][]match.Record
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{recordsByTournament: make(map[string][]match.Record)}
}

func (r *MatchRepository) Put(tournamentID string, records ...match.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recordsByTournament[tournamentID] = append(r.recordsByTournament[tournamentID], records...)
}

func (r *MatchRepository) Replace(tournamentID string, records ...match.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recordsByTournament[tournamentID] = append([]match.Record(nil), records...)
}

func (r *MatchRepository) ListByTournament(_ context.Context, tournamentID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return match.Normalize(r.recordsByTournament[tournamentID]), nil
}
