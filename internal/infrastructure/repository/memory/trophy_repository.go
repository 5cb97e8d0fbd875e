package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchpool/tournament-engine/internal/domain/trophy"
)

type trophyKey struct {
	tournamentID string
	userID       string
}

type TrophyRepository struct {
	mu      sync.RWMutex
	unlocks map[trophyKey]map[trophy.Type]trophy.UnlockEvent
}

func NewTrophyRepository() *TrophyRepository {
	return &TrophyRepository{unlocks: make(map[trophyKey]map[trophy.Type]trophy.UnlockEvent)}
}

func (r *TrophyRepository) ListUnlockedTypes(_ context.Context, tournamentID, userID string) ([]trophy.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byType := r.unlocks[trophyKey{tournamentID: tournamentID, userID: userID}]
	out := make([]trophy.Type, 0, len(byType))
	for t := range byType {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// RecordUnlocks keeps the first event per (user, type); replays are no-ops.
func (r *TrophyRepository) RecordUnlocks(_ context.Context, events []trophy.UnlockEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, event := range events {
		key := trophyKey{tournamentID: event.TournamentID, userID: event.UserID}
		byType, ok := r.unlocks[key]
		if !ok {
			byType = make(map[trophy.Type]trophy.UnlockEvent)
			r.unlocks[key] = byType
		}
		if _, seen := byType[event.Type]; seen {
			continue
		}
		byType[event.Type] = event
	}
	return nil
}

func (r *TrophyRepository) Events(tournamentID, userID string) []trophy.UnlockEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byType := r.unlocks[trophyKey{tournamentID: tournamentID, userID: userID}]
	out := make([]trophy.UnlockEvent, 0, len(byType))
	for _, event := range byType {
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
