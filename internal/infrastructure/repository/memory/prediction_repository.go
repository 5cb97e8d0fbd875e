package memory

import (
	"context"
	"sync"

	"github.com/matchpool/tournament-engine/internal/domain/prediction"
)

type PredictionRepository struct {
	mu                      sync.RWMutex
	predictionsByTournament map[string][]prediction.Prediction
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{predictionsByTournament: make(map[string][]prediction.Prediction)}
}

func (r *PredictionRepository) Put(tournamentID string, predictions ...prediction.Prediction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.predictionsByTournament[tournamentID] = append(r.predictionsByTournament[tournamentID], predictions...)
}

func (r *PredictionRepository) ListByTournament(_ context.Context, tournamentID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.predictionsByTournament[tournamentID]
	out := make([]prediction.Prediction, 0, len(items))
	out = append(out, items...)
	return out, nil
}
