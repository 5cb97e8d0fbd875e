package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/matchpool/tournament-engine/internal/domain/tournament"
	"github.com/matchpool/tournament-engine/internal/domain/trophy"
	"github.com/matchpool/tournament-engine/internal/platform/logging"
)

// TrophyService turns a tournament computation into unlock events. It is
// stateless and idempotent: trophies already recorded for a user are never
// emitted again, so replaying the engine on unchanged inputs yields nothing.
type TrophyService struct {
	trophyRepo trophy.Repository
	logger     *logging.Logger
}

func NewTrophyService(trophyRepo trophy.Repository, logger *logging.Logger) *TrophyService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TrophyService{
		trophyRepo: trophyRepo,
		logger:     logger,
	}
}

func (s *TrophyService) Evaluate(ctx context.Context, comp *Computation) ([]trophy.UnlockEvent, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrophyService.Evaluate")
	defer span.End()

	if comp == nil {
		return nil, fmt.Errorf("%w: computation is required", ErrInvalidInput)
	}

	winnerID, wonAt := s.tournamentWinner(ctx, comp)

	events := make([]trophy.UnlockEvent, 0)
	for _, userID := range comp.Participants {
		recorded, err := s.trophyRepo.ListUnlockedTypes(ctx, comp.Tournament.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("list unlocked trophies user=%s: %w", userID, err)
		}
		recordedSet := make(map[trophy.Type]struct{}, len(recorded))
		for _, t := range recorded {
			recordedSet[t] = struct{}{}
		}

		candidates := candidateUnlocks(comp.Facts[userID])
		if userID == winnerID {
			candidates = append(candidates, candidate{trophy.TypeBallonDOr, wonAt})
		}

		for _, c := range candidates {
			if _, seen := recordedSet[c.trophyType]; seen {
				continue
			}
			events = append(events, trophy.UnlockEvent{
				TournamentID: comp.Tournament.ID,
				UserID:       userID,
				Type:         c.trophyType,
				UnlockedAt:   c.at,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].UserID != events[j].UserID {
			return events[i].UserID < events[j].UserID
		}
		return events[i].Type < events[j].Type
	})

	return events, nil
}

// tournamentWinner resolves the Ballon d'Or holder: tournament completed,
// every match in range decided, and a strict points maximum. Any tie for
// first disqualifies the trophy for everyone.
func (s *TrophyService) tournamentWinner(ctx context.Context, comp *Computation) (string, time.Time) {
	if comp.Tournament.Status != tournament.StatusCompleted {
		return "", time.Time{}
	}
	if !comp.AllDecided {
		// Upstream lifecycle bug, not a reason to guess a winner.
		s.logger.WarnContext(ctx, "data integrity: tournament completed with undecided matches",
			"tournament_id", comp.Tournament.ID,
			"error", ErrInconsistentCompletion,
		)
		return "", time.Time{}
	}
	if len(comp.Standings) == 0 {
		return "", time.Time{}
	}
	top := comp.Standings[0]
	if len(comp.Standings) > 1 && comp.Standings[1].TotalPoints == top.TotalPoints {
		return "", time.Time{}
	}
	return top.UserID, comp.LastDecidedAt
}

type candidate struct {
	trophyType trophy.Type
	at         time.Time
}

func candidateUnlocks(facts *UserFacts) []candidate {
	if facts == nil {
		return nil
	}

	out := make([]candidate, 0, 15)
	add := func(t trophy.Type, at time.Time) {
		if !at.IsZero() {
			out = append(out, candidate{t, at})
		}
	}

	add(trophy.TypeFirstCorrectResult, facts.FirstCorrectAt)
	add(trophy.TypeFirstExactScore, facts.FirstExactAt)
	add(trophy.TypeKingOfDay, facts.Streak.ReachedAt[1])
	add(trophy.TypeDoubleKing, facts.Streak.ReachedAt[2])
	add(trophy.TypeTripleKing, facts.Streak.ReachedAt[3])
	add(trophy.TypeOpportunist, facts.OpportunistAt)
	add(trophy.TypeNostradamus, facts.NostradamusAt)
	add(trophy.TypeSniper, facts.SniperAt)
	add(trophy.TypeBonusProfiteer, facts.BonusCorrectAt)
	add(trophy.TypeBonusOptimizer, facts.BonusExactAt)
	add(trophy.TypeEarlyBird, facts.FirstOnTimeAt)
	add(trophy.TypeClockwork, facts.ThirdOnTimeAt)
	add(trophy.TypeCentury, facts.CenturyAt)
	add(trophy.TypePerfectDay, facts.PerfectDayAt)
	add(trophy.TypeComeback, facts.ComebackAt)

	return out
}
