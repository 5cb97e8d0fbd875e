package cache

import (
	"context"
	"time"

	"github.com/matchpool/tournament-engine/internal/domain/tournament"
	basecache "github.com/matchpool/tournament-engine/internal/platform/cache"
)

// TournamentRepository caches configuration reads in front of the database
// adapter. Only slow-moving tournament data is cached; matches and
// predictions always come fresh, a sweep must see the latest results.
type TournamentRepository struct {
	next  tournament.Repository
	cache *basecache.Store
}

func NewTournamentRepository(next tournament.Repository, cache *basecache.Store) *TournamentRepository {
	return &TournamentRepository{next: next, cache: cache}
}

type cachedTournamentByID struct {
	value  tournament.Tournament
	exists bool
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	key := "tournament:id:" + tournamentID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return cachedTournamentByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return tournament.Tournament{}, false, err
	}

	cached, _ := v.(cachedTournamentByID)
	return cached.value, cached.exists, nil
}

func (r *TournamentRepository) ListParticipants(ctx context.Context, tournamentID string) ([]string, error) {
	key := "tournament:participants:" + tournamentID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListParticipants(ctx, tournamentID)
		if err != nil {
			return nil, err
		}
		return append([]string(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]string)
	return append([]string(nil), items...), nil
}

// ListActiveIDs is deliberately uncached: it drives the sweep schedule and
// must notice newly activated tournaments immediately.
func (r *TournamentRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	return r.next.ListActiveIDs(ctx)
}

func (r *TournamentRepository) UpdateEndingDate(ctx context.Context, tournamentID string, endingDate *time.Time, estimationUsed bool, details string) error {
	if err := r.next.UpdateEndingDate(ctx, tournamentID, endingDate, estimationUsed, details); err != nil {
		return err
	}
	r.cache.Delete(ctx, "tournament:id:"+tournamentID)
	return nil
}
