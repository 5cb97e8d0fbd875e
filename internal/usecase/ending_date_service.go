package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/matchpool/tournament-engine/internal/domain/match"
	"github.com/matchpool/tournament-engine/internal/domain/tournament"
	"github.com/matchpool/tournament-engine/internal/platform/logging"
)

const (
	EndingStateNoEstimate = "no_estimate"
	EndingStateExact      = "exact"
	EndingStateEstimated  = "estimated"
	EndingStateFinalized  = "finalized"
)

// EndingDateEstimate is the estimator's verdict for one recomputation.
// Details carries the audit payload (previous/new values, sample sizes)
// serialized for the recalculation event log.
type EndingDateEstimate struct {
	State          string
	EndingDate     *time.Time
	EstimationUsed bool
	Details        string
}

type endingDateAudit struct {
	TournamentID   string  `json:"tournament_id"`
	State          string  `json:"state"`
	PreviousDate   *string `json:"previous_date"`
	NewDate        *string `json:"new_date"`
	EstimationUsed bool    `json:"estimation_used"`
}

// EndingDateService projects when a tournament will end. It consumes only
// schedule data: an exact path when the configured ending matchday has known
// kickoffs, and interval extrapolation when a flat championship's tail is
// still unscheduled.
type EndingDateService struct {
	matchRepo match.Repository
	logger    *logging.Logger
}

func NewEndingDateService(matchRepo match.Repository, logger *logging.Logger) *EndingDateService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EndingDateService{
		matchRepo: matchRepo,
		logger:    logger,
	}
}

func (s *EndingDateService) Recompute(ctx context.Context, t tournament.Tournament) (EndingDateEstimate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EndingDateService.Recompute")
	defer span.End()

	matches, err := s.matchRepo.ListByTournament(ctx, t.ID)
	if err != nil {
		return EndingDateEstimate{}, fmt.Errorf("list matches for ending date: %w", err)
	}

	groups := match.BuildGroups(matches, t.StartingMatchday, t.EndingMatchday)
	estimate := s.estimate(t, matches, groups)

	estimate.Details, err = s.auditPayload(t, estimate)
	if err != nil {
		return EndingDateEstimate{}, err
	}

	// Every recomputation is an explicit event; the date may only move
	// backward through one of these, never silently.
	s.logger.InfoContext(ctx, "ending date recomputed",
		"tournament_id", t.ID,
		"state", estimate.State,
		"previous", formatDate(t.EndingDate),
		"new", formatDate(estimate.EndingDate),
		"estimation_used", estimate.EstimationUsed,
	)

	return estimate, nil
}

func (s *EndingDateService) estimate(t tournament.Tournament, matches []match.Match, groups []match.Group) EndingDateEstimate {
	if allGroupsDecided(groups) {
		// Done: hand off to the completion workflow, no new estimate.
		last := latestKickoff(matches)
		return EndingDateEstimate{State: EndingStateFinalized, EndingDate: last}
	}

	endingGroup, found := groupAt(groups, t.EndingMatchday)

	if match.HasKnockoutStages(matches) {
		// Bracket not seeded yet means nothing to anchor on.
		if !found {
			return EndingDateEstimate{State: EndingStateNoEstimate}
		}
		if last, ok := endingGroup.LatestKickoff(); ok {
			return EndingDateEstimate{State: EndingStateExact, EndingDate: &last}
		}
		return EndingDateEstimate{State: EndingStateNoEstimate}
	}

	if found {
		if last, ok := endingGroup.LatestKickoff(); ok {
			return EndingDateEstimate{State: EndingStateExact, EndingDate: &last}
		}
	}

	return s.extrapolate(t, groups)
}

// extrapolate averages the intervals between consecutive dated matchdays and
// projects forward from the latest one. Needs at least two dated matchdays.
func (s *EndingDateService) extrapolate(t tournament.Tournament, groups []match.Group) EndingDateEstimate {
	type datedMatchday struct {
		matchday int
		latest   time.Time
	}

	dated := make([]datedMatchday, 0, len(groups))
	for _, g := range groups {
		if match.IsKnockout(g.Stage) {
			continue
		}
		if last, ok := g.LatestKickoff(); ok {
			dated = append(dated, datedMatchday{matchday: g.VirtualOrder, latest: last})
		}
	}
	if len(dated) < 2 {
		return EndingDateEstimate{State: EndingStateNoEstimate}
	}
	sort.Slice(dated, func(i, j int) bool { return dated[i].matchday < dated[j].matchday })

	var totalInterval time.Duration
	intervals := 0
	for i := 1; i < len(dated); i++ {
		gap := dated[i].matchday - dated[i-1].matchday
		if gap <= 0 {
			continue
		}
		// Holes in the dated range still yield one per-matchday interval.
		totalInterval += dated[i].latest.Sub(dated[i-1].latest) / time.Duration(gap)
		intervals++
	}
	if intervals == 0 {
		return EndingDateEstimate{State: EndingStateNoEstimate}
	}

	avgInterval := totalInterval / time.Duration(intervals)
	last := dated[len(dated)-1]
	remaining := t.EndingMatchday - last.matchday
	if remaining <= 0 {
		return EndingDateEstimate{State: EndingStateNoEstimate}
	}

	projected := last.latest.Add(avgInterval * time.Duration(remaining))
	return EndingDateEstimate{
		State:          EndingStateEstimated,
		EndingDate:     &projected,
		EstimationUsed: true,
	}
}

func (s *EndingDateService) auditPayload(t tournament.Tournament, estimate EndingDateEstimate) (string, error) {
	audit := endingDateAudit{
		TournamentID:   t.ID,
		State:          estimate.State,
		PreviousDate:   formatDate(t.EndingDate),
		NewDate:        formatDate(estimate.EndingDate),
		EstimationUsed: estimate.EstimationUsed,
	}

	encoded, err := sonic.Marshal(audit)
	if err != nil {
		return "", fmt.Errorf("encode ending date audit: %w", err)
	}
	return string(encoded), nil
}

func allGroupsDecided(groups []match.Group) bool {
	if len(groups) == 0 {
		return false
	}
	for _, g := range groups {
		if !g.Decided() {
			return false
		}
	}
	return true
}

func groupAt(groups []match.Group, virtualOrder int) (match.Group, bool) {
	for _, g := range groups {
		if g.VirtualOrder == virtualOrder && len(g.Matches) > 0 {
			return g, true
		}
	}
	return match.Group{}, false
}

func latestKickoff(matches []match.Match) *time.Time {
	var max time.Time
	for _, m := range matches {
		if m.KickoffAt.After(max) {
			max = m.KickoffAt
		}
	}
	if max.IsZero() {
		return nil
	}
	return &max
}

func formatDate(value *time.Time) *string {
	if value == nil {
		return nil
	}
	formatted := value.UTC().Format(time.RFC3339)
	return &formatted
}
