package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/matchpool/tournament-engine/internal/domain/standing"
	"github.com/matchpool/tournament-engine/internal/domain/tournament"
	"github.com/matchpool/tournament-engine/internal/domain/trophy"
	"github.com/matchpool/tournament-engine/internal/platform/logging"
)

const (
	sweepStatusSuccess = "success"
	sweepStatusFailed  = "failed"
	sweepStatusSkipped = "skipped"

	defaultSweepWorkers     = 4
	defaultTournamentBudget = 30 * time.Second
)

// SweepResult summarizes one pass over all active tournaments.
type SweepResult struct {
	TournamentCount int                     `json:"tournament_count"`
	SuccessCount    int                     `json:"success_count"`
	FailedCount     int                     `json:"failed_count"`
	SkippedCount    int                     `json:"skipped_count"`
	WorkerCount     int                     `json:"worker_count"`
	Tournaments     []TournamentSweepResult `json:"tournaments"`
}

// TournamentSweepResult reports one tournament's recomputation.
type TournamentSweepResult struct {
	TournamentID     string `json:"tournament_id"`
	Status           string `json:"status"`
	DurationMs       int64  `json:"duration_ms"`
	Message          string `json:"message,omitempty"`
	Standings        int    `json:"standings"`
	TrophiesUnlocked int    `json:"trophies_unlocked"`
	EndingState      string `json:"ending_state,omitempty"`
}

// SweepService drives the whole pipeline: tournaments fan out across a
// bounded worker pool, while everything inside one tournament stays strictly
// sequential (streak walking is order-dependent). Derived results are
// committed per tournament as one batch, so a crash mid-computation never
// leaves partial state behind.
type SweepService struct {
	tournamentRepo tournament.Repository
	standingRepo   standing.Repository
	trophyRepo     trophy.Repository
	rankings       *RankingService
	trophies       *TrophyService
	endingDates    *EndingDateService
	logger         *logging.Logger
	now            func() time.Time
	workerCount    int
	budget         time.Duration
}

func NewSweepService(
	tournamentRepo tournament.Repository,
	standingRepo standing.Repository,
	trophyRepo trophy.Repository,
	rankings *RankingService,
	trophies *TrophyService,
	endingDates *EndingDateService,
	logger *logging.Logger,
	workerCount int,
	budget time.Duration,
) *SweepService {
	if logger == nil {
		logger = logging.Default()
	}
	if workerCount <= 0 {
		workerCount = defaultSweepWorkers
	}
	if budget <= 0 {
		budget = defaultTournamentBudget
	}
	return &SweepService{
		tournamentRepo: tournamentRepo,
		standingRepo:   standingRepo,
		trophyRepo:     trophyRepo,
		rankings:       rankings,
		trophies:       trophies,
		endingDates:    endingDates,
		logger:         logger,
		now:            time.Now,
		workerCount:    workerCount,
		budget:         budget,
	}
}

// Sweep recomputes every active tournament. Individual failures never abort
// the pass; they are reported per tournament and retried next cycle.
func (s *SweepService) Sweep(ctx context.Context) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.Sweep")
	defer span.End()

	ids, err := s.tournamentRepo.ListActiveIDs(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list active tournaments: %w", err)
	}

	workerCount := s.workerCount
	if len(ids) > 0 && len(ids) < workerCount {
		workerCount = len(ids)
	}

	result := SweepResult{
		TournamentCount: len(ids),
		WorkerCount:     workerCount,
		Tournaments:     make([]TournamentSweepResult, 0, len(ids)),
	}
	if len(ids) == 0 {
		return result, nil
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan TournamentSweepResult, len(ids))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	var workers sync.WaitGroup
	for _, id := range ids {
		id := id
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := s.recomputeOne(ctx, id)
			switch row.Status {
			case sweepStatusSuccess:
				successCount.Add(1)
			case sweepStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return SweepResult{}, fmt.Errorf("submit tournament to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tournaments = append(result.Tournaments, row)
	}
	sort.SliceStable(result.Tournaments, func(i, j int) bool {
		return result.Tournaments[i].TournamentID < result.Tournaments[j].TournamentID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "sweep finished",
		"tournaments", result.TournamentCount,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
	)
	return result, nil
}

// RecomputeTournament is the on-demand path, e.g. when a ranking page wants
// fresh numbers outside the periodic schedule.
func (s *SweepService) RecomputeTournament(ctx context.Context, tournamentID string) (TournamentSweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SweepService.RecomputeTournament")
	defer span.End()

	if tournamentID == "" {
		return TournamentSweepResult{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}
	return s.recomputeOne(ctx, tournamentID), nil
}

func (s *SweepService) recomputeOne(ctx context.Context, tournamentID string) TournamentSweepResult {
	start := s.now()
	row := TournamentSweepResult{TournamentID: tournamentID}

	finish := func(status, message string) TournamentSweepResult {
		row.Status = status
		row.Message = message
		row.DurationMs = s.now().Sub(start).Milliseconds()
		return row
	}

	overBudget := func() bool {
		return s.now().Sub(start) > s.budget
	}

	comp, err := s.rankings.Compute(ctx, tournamentID)
	if err != nil {
		s.logger.WarnContext(ctx, "tournament recomputation failed", "tournament_id", tournamentID, "error", err)
		return finish(sweepStatusFailed, err.Error())
	}
	if overBudget() {
		return s.skipOverBudget(ctx, finish, tournamentID)
	}

	events, err := s.trophies.Evaluate(ctx, comp)
	if err != nil {
		s.logger.WarnContext(ctx, "trophy evaluation failed", "tournament_id", tournamentID, "error", err)
		return finish(sweepStatusFailed, err.Error())
	}
	if overBudget() {
		return s.skipOverBudget(ctx, finish, tournamentID)
	}

	estimate, err := s.endingDates.Recompute(ctx, comp.Tournament)
	if err != nil {
		s.logger.WarnContext(ctx, "ending date recomputation failed", "tournament_id", tournamentID, "error", err)
		return finish(sweepStatusFailed, err.Error())
	}
	row.EndingState = estimate.State

	// Commit everything as one batch; on any write failure the prior
	// derived state stays untouched and the next sweep retries.
	if err := s.standingRepo.ApplySnapshot(ctx, tournamentID, comp.Standings); err != nil {
		s.logger.WarnContext(ctx, "apply ranking snapshot failed", "tournament_id", tournamentID, "error", err)
		return finish(sweepStatusFailed, err.Error())
	}
	row.Standings = len(comp.Standings)

	if len(events) > 0 {
		if err := s.trophyRepo.RecordUnlocks(ctx, events); err != nil {
			s.logger.WarnContext(ctx, "record trophy unlocks failed", "tournament_id", tournamentID, "error", err)
			return finish(sweepStatusFailed, err.Error())
		}
	}
	row.TrophiesUnlocked = len(events)

	if s.shouldCommitEndingDate(comp.Tournament, estimate) {
		if err := s.tournamentRepo.UpdateEndingDate(ctx, tournamentID, estimate.EndingDate, estimate.EstimationUsed, estimate.Details); err != nil {
			s.logger.WarnContext(ctx, "update ending date failed", "tournament_id", tournamentID, "error", err)
			return finish(sweepStatusFailed, err.Error())
		}
	}

	return finish(sweepStatusSuccess, "")
}

func (s *SweepService) shouldCommitEndingDate(t tournament.Tournament, estimate EndingDateEstimate) bool {
	if estimate.State == EndingStateNoEstimate {
		// Clearing only matters when a date was previously set.
		return t.EndingDate != nil
	}
	return true
}

func (s *SweepService) skipOverBudget(
	ctx context.Context,
	finish func(status, message string) TournamentSweepResult,
	tournamentID string,
) TournamentSweepResult {
	err := crerr.Wrapf(ErrComputationBudgetExceeded, "budget=%s", s.budget)
	s.logger.WarnContext(ctx, "tournament skipped, computation budget exceeded",
		"tournament_id", tournamentID,
		"budget", s.budget.String(),
	)
	return finish(sweepStatusSkipped, err.Error())
}
