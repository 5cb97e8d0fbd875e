package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matchpool/tournament-engine/internal/domain/tournament"
)

// EndingDateUpdate is the last ending-date revision recorded for a
// tournament, retained so callers can inspect the audit trail.
type EndingDateUpdate struct {
	EndingDate     *time.Time
	EstimationUsed bool
	Details        string
}

type TournamentRepository struct {
	mu                sync.RWMutex
	tournaments       map[string]tournament.Tournament
	participantsByID  map[string][]string
	lastEndingUpdates map[string]EndingDateUpdate
}

func NewTournamentRepository() *TournamentRepository {
	return &TournamentRepository{
		tournaments:       make(map[string]tournament.Tournament),
		participantsByID:  make(map[string][]string),
		lastEndingUpdates: make(map[string]EndingDateUpdate),
	}
}

func (r *TournamentRepository) Put(t tournament.Tournament, participants []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tournaments[t.ID] = t
	r.participantsByID[t.ID] = append([]string(nil), participants...)
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tournaments[tournamentID]
	return t, ok, nil
}

func (r *TournamentRepository) ListParticipants(_ context.Context, tournamentID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.participantsByID[tournamentID]
	out := make([]string, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *TournamentRepository) ListActiveIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.tournaments))
	for id, t := range r.tournaments {
		if t.Status == tournament.StatusActive {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *TournamentRepository) UpdateEndingDate(_ context.Context, tournamentID string, endingDate *time.Time, estimationUsed bool, details string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tournaments[tournamentID]
	if !ok {
		return nil
	}
	t.EndingDate = endingDate
	r.tournaments[tournamentID] = t
	r.lastEndingUpdates[tournamentID] = EndingDateUpdate{
		EndingDate:     endingDate,
		EstimationUsed: estimationUsed,
		Details:        details,
	}
	return nil
}

func (r *TournamentRepository) LastEndingDateUpdate(tournamentID string) (EndingDateUpdate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	update, ok := r.lastEndingUpdates[tournamentID]
	return update, ok
}
