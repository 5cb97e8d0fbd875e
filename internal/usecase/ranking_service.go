package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/matchpool/tournament-engine/internal/domain/match"
	"github.com/matchpool/tournament-engine/internal/domain/prediction"
	"github.com/matchpool/tournament-engine/internal/domain/standing"
	"github.com/matchpool/tournament-engine/internal/domain/tournament"
	"github.com/matchpool/tournament-engine/internal/platform/logging"
)

// earlyPredictionBonusPoints is the flat bonus for a matchday group where
// every prediction was submitted before the first kickoff.
const earlyPredictionBonusPoints = 1

// RankingService computes the derived ranking artifacts for one tournament:
// per-group leaderboards, leadership streaks, per-user trophy facts and the
// final standings. It only reads; the sweep commits results in one batch.
type RankingService struct {
	tournamentRepo tournament.Repository
	matchRepo      match.Repository
	predictionRepo prediction.Repository
	logger         *logging.Logger
}

func NewRankingService(
	tournamentRepo tournament.Repository,
	matchRepo match.Repository,
	predictionRepo prediction.Repository,
	logger *logging.Logger,
) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		logger:         logger,
	}
}

// GroupStanding is the computed leaderboard of one virtual matchday group.
// PointsByUser covers decided matches only; leadership fields are only
// meaningful when the group is Eligible (every match decided).
type GroupStanding struct {
	Group        match.Group
	Eligible     bool
	PointsByUser map[string]int
	MaxPoints    int
	LeaderIDs    []string
	SoleLeaderID string
	OnTime       map[string]bool
	EndsAt       time.Time
}

// StreakSummary tracks one participant's consecutive sole-leadership runs.
// ReachedAt records when a run first hit each length, for trophy timestamps.
type StreakSummary struct {
	Current   int
	Max       int
	ReachedAt map[int]time.Time
}

// UserFacts aggregates everything the trophy engine needs per participant.
// Zero time values mean "never happened".
type UserFacts struct {
	TotalPoints    int
	ExactScores    int
	CorrectResults int

	FirstCorrectAt time.Time
	FirstExactAt   time.Time
	BonusCorrectAt time.Time
	BonusExactAt   time.Time

	OnTimeGroups  int
	FirstOnTimeAt time.Time
	ThirdOnTimeAt time.Time

	OpportunistAt time.Time
	NostradamusAt time.Time
	SniperAt      time.Time
	PerfectDayAt  time.Time
	ComebackAt    time.Time
	CenturyAt     time.Time

	Streak StreakSummary
}

// Computation is the full derived state of one tournament at one point in
// time, built from an immutable snapshot of matches and predictions.
type Computation struct {
	Tournament    tournament.Tournament
	Participants  []string
	Groups        []GroupStanding
	Facts         map[string]*UserFacts
	Standings     []standing.Standing
	AllDecided    bool
	LastDecidedAt time.Time
}

func (s *RankingService) Compute(ctx context.Context, tournamentID string) (*Computation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RankingService.Compute")
	defer span.End()

	if tournamentID == "" {
		return nil, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	t, ok, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("get tournament: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	participants, err := s.tournamentRepo.ListParticipants(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	predictions, err := s.predictionRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	predByUser := indexPredictions(predictions)
	groups := match.BuildGroups(matches, t.StartingMatchday, t.EndingMatchday)

	comp := &Computation{
		Tournament:   t,
		Participants: participants,
		Groups:       make([]GroupStanding, 0, len(groups)),
		Facts:        make(map[string]*UserFacts, len(participants)),
	}
	for _, userID := range participants {
		comp.Facts[userID] = &UserFacts{
			Streak: StreakSummary{ReachedAt: make(map[int]time.Time)},
		}
	}

	zeroRun := make(map[string]int, len(participants))

	comp.AllDecided = len(groups) > 0
	endingGroupSeen := false
	for _, group := range groups {
		gs := s.computeGroupStanding(group, participants, predByUser, t)
		comp.Groups = append(comp.Groups, gs)

		if group.VirtualOrder == t.EndingMatchday {
			endingGroupSeen = true
		}
		if !group.Decided() {
			comp.AllDecided = false
		}
		if gs.Eligible {
			if last, ok := group.LatestKickoff(); ok && last.After(comp.LastDecidedAt) {
				comp.LastDecidedAt = last
			}
		}

		s.accumulateFacts(comp, gs, predByUser, t, zeroRun)
	}
	if !endingGroupSeen {
		comp.AllDecided = false
	}

	comp.Standings = buildStandings(t.ID, participants, comp.Facts)
	return comp, nil
}

// computeGroupStanding sums points per participant across the group's
// decided matches and derives the leader set when the group is eligible.
func (s *RankingService) computeGroupStanding(
	group match.Group,
	participants []string,
	predByUser map[string]map[string]prediction.Prediction,
	t tournament.Tournament,
) GroupStanding {
	gs := GroupStanding{
		Group:        group,
		Eligible:     group.Decided(),
		PointsByUser: make(map[string]int, len(participants)),
		OnTime:       make(map[string]bool, len(participants)),
	}
	if last, ok := group.LatestKickoff(); ok {
		gs.EndsAt = last
	}

	earliest, hasKickoff := group.EarliestKickoff()

	for _, userID := range participants {
		points := 0
		onTime := gs.Eligible && hasKickoff
		for _, m := range group.Matches {
			if !m.Decided() {
				onTime = false
				continue
			}
			pred, ok := predByUser[userID][m.ID]
			if !ok {
				// Missing prediction: zero points, and the group can
				// no longer count as fully on time.
				onTime = false
				continue
			}
			points += prediction.Points(pred, m, t.Scoring)
			if pred.IsDefault || !pred.SubmittedAt.Before(earliest) {
				onTime = false
			}
		}
		gs.PointsByUser[userID] = points
		gs.OnTime[userID] = onTime
	}

	if !gs.Eligible {
		return gs
	}

	for _, userID := range participants {
		points := gs.PointsByUser[userID]
		switch {
		case len(gs.LeaderIDs) == 0 || points > gs.MaxPoints:
			gs.MaxPoints = points
			gs.LeaderIDs = []string{userID}
		case points == gs.MaxPoints:
			gs.LeaderIDs = append(gs.LeaderIDs, userID)
		}
	}

	// A score of zero only counts as leadership when a single participant
	// holds it; a matchday where nobody scored crowns nobody.
	if len(gs.LeaderIDs) == 1 && (gs.MaxPoints > 0 || len(participants) == 1) {
		gs.SoleLeaderID = gs.LeaderIDs[0]
	}

	return gs
}

// accumulateFacts advances every participant's streaks, totals and trophy
// facts by one group. Must be called in ascending virtual order.
func (s *RankingService) accumulateFacts(
	comp *Computation,
	gs GroupStanding,
	predByUser map[string]map[string]prediction.Prediction,
	t tournament.Tournament,
	zeroRun map[string]int,
) {
	for _, userID := range comp.Participants {
		facts := comp.Facts[userID]

		// Streaks: an ineligible or empty group is an unknown gap and
		// always breaks the run; there is no skip-and-continue.
		if gs.Eligible && gs.SoleLeaderID == userID {
			facts.Streak.Current++
			if facts.Streak.Current > facts.Streak.Max {
				facts.Streak.Max = facts.Streak.Current
			}
			if _, seen := facts.Streak.ReachedAt[facts.Streak.Current]; !seen {
				facts.Streak.ReachedAt[facts.Streak.Current] = gs.EndsAt
			}
		} else {
			facts.Streak.Current = 0
		}

		groupPoints := gs.PointsByUser[userID]
		exactInGroup := 0
		correctInGroup := 0
		decidedPredicted := 0
		decidedMatches := 0

		for _, m := range gs.Group.Matches {
			if !m.Decided() {
				continue
			}
			decidedMatches++
			pred, ok := predByUser[userID][m.ID]
			if !ok {
				continue
			}
			decidedPredicted++

			if prediction.IsCorrectResult(pred, m) {
				correctInGroup++
				facts.CorrectResults++
				setIfZero(&facts.FirstCorrectAt, m.KickoffAt)
				if m.IsBonus {
					setIfZero(&facts.BonusCorrectAt, m.KickoffAt)
				}
			}
			if prediction.IsExact(pred, m) {
				exactInGroup++
				facts.ExactScores++
				setIfZero(&facts.FirstExactAt, m.KickoffAt)
				if m.IsBonus {
					setIfZero(&facts.BonusExactAt, m.KickoffAt)
				}
			}
		}

		if gs.Eligible {
			if gs.OnTime[userID] {
				facts.OnTimeGroups++
				if t.EarlyPredictionBonusEnabled {
					groupPoints += earlyPredictionBonusPoints
				}
				setIfZero(&facts.FirstOnTimeAt, gs.EndsAt)
				if facts.OnTimeGroups == 3 {
					setIfZero(&facts.ThirdOnTimeAt, gs.EndsAt)
				}
			}
			if correctInGroup >= 2 {
				setIfZero(&facts.OpportunistAt, gs.EndsAt)
			}
			if exactInGroup >= 2 {
				setIfZero(&facts.NostradamusAt, gs.EndsAt)
			}
			if exactInGroup >= 3 {
				setIfZero(&facts.SniperAt, gs.EndsAt)
			}
			if decidedMatches >= 2 && decidedPredicted == decidedMatches && exactInGroup == decidedMatches {
				setIfZero(&facts.PerfectDayAt, gs.EndsAt)
			}
			if groupPoints > 0 && zeroRun[userID] >= 2 {
				setIfZero(&facts.ComebackAt, gs.EndsAt)
			}
			if groupPoints == 0 {
				zeroRun[userID]++
			} else {
				zeroRun[userID] = 0
			}
		}

		facts.TotalPoints += groupPoints
		if facts.TotalPoints >= 100 {
			setIfZero(&facts.CenturyAt, gs.EndsAt)
		}
	}
}

func buildStandings(tournamentID string, participants []string, facts map[string]*UserFacts) []standing.Standing {
	rows := make([]standing.Standing, 0, len(participants))
	for _, userID := range participants {
		f := facts[userID]
		rows = append(rows, standing.Standing{
			TournamentID:   tournamentID,
			UserID:         userID,
			TotalPoints:    f.TotalPoints,
			ExactScores:    f.ExactScores,
			CorrectResults: f.CorrectResults,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		if rows[i].ExactScores != rows[j].ExactScores {
			return rows[i].ExactScores > rows[j].ExactScores
		}
		if rows[i].CorrectResults != rows[j].CorrectResults {
			return rows[i].CorrectResults > rows[j].CorrectResults
		}
		return rows[i].UserID < rows[j].UserID
	})

	lastPoints := 0
	rank := 0
	for idx := range rows {
		if idx == 0 || rows[idx].TotalPoints != lastPoints {
			rank++
			lastPoints = rows[idx].TotalPoints
		}
		rows[idx].Rank = rank
	}

	return rows
}

func indexPredictions(predictions []prediction.Prediction) map[string]map[string]prediction.Prediction {
	out := make(map[string]map[string]prediction.Prediction)
	for _, p := range predictions {
		byMatch, ok := out[p.UserID]
		if !ok {
			byMatch = make(map[string]prediction.Prediction)
			out[p.UserID] = byMatch
		}
		byMatch[p.MatchID] = p
	}
	return out
}

func setIfZero(target *time.Time, value time.Time) {
	if target.IsZero() {
		*target = value
	}
}
