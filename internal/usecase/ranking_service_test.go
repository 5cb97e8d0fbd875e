package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchpool/tournament-engine/internal/domain/match"
	"github.com/matchpool/tournament-engine/internal/domain/prediction"
	"github.com/matchpool/tournament-engine/internal/domain/tournament"
	"github.com/matchpool/tournament-engine/internal/infrastructure/repository/memory"
	"github.com/matchpool/tournament-engine/internal/platform/logging"
)

type fixtureRepos struct {
	tournaments *memory.TournamentRepository
	matches     *memory.MatchRepository
	predictions *memory.PredictionRepository
}

func newFixtureRepos(t tournament.Tournament, participants []string) fixtureRepos {
	repos := fixtureRepos{
		tournaments: memory.NewTournamentRepository(),
		matches:     memory.NewMatchRepository(),
		predictions: memory.NewPredictionRepository(),
	}
	repos.tournaments.Put(t, participants)
	return repos
}

func (f fixtureRepos) rankingService() *RankingService {
	return NewRankingService(f.tournaments, f.matches, f.predictions, logging.NewNop())
}

func testTournament(id string, from, to int) tournament.Tournament {
	return tournament.Tournament{
		ID:               id,
		CompetitionRef:   "comp-" + id,
		StartingMatchday: from,
		EndingMatchday:   to,
		Status:           tournament.StatusActive,
		Scoring:          prediction.DefaultScoringRules(),
	}
}

func finishedLeague(id string, matchday int, kickoff time.Time, home, away int) match.Record {
	return match.LeagueMatch{
		ID:           id,
		Stage:        match.StageRegularSeason,
		Matchday:     matchday,
		UTCDate:      kickoff,
		Status:       match.StatusFinished,
		FullTimeHome: &home,
		FullTimeAway: &away,
	}
}

func scheduledLeague(id string, matchday int, kickoff time.Time) match.Record {
	return match.LeagueMatch{
		ID:       id,
		Stage:    match.StageRegularSeason,
		Matchday: matchday,
		UTCDate:  kickoff,
		Status:   match.StatusScheduled,
	}
}

func tip(userID, matchID string, home, away int, submitted time.Time) prediction.Prediction {
	return prediction.Prediction{
		UserID:      userID,
		MatchID:     matchID,
		HomeScore:   home,
		AwayScore:   away,
		SubmittedAt: submitted,
	}
}

func TestRankingService_Compute_LeadershipAndStandings(t *testing.T) {
	t.Parallel()

	tour := testTournament("t1", 1, 2)
	repos := newFixtureRepos(tour, []string{"alice", "bob"})

	kickoff := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	submitted := kickoff.Add(-24 * time.Hour)
	repos.matches.Put("t1",
		finishedLeague("m1", 1, kickoff, 2, 1),
		finishedLeague("m2", 1, kickoff.Add(2*time.Hour), 0, 0),
		scheduledLeague("m3", 2, kickoff.Add(7*24*time.Hour)),
	)
	repos.predictions.Put("t1",
		tip("alice", "m1", 2, 1, submitted), // exact: 5
		tip("alice", "m2", 1, 1, submitted), // wrong score, right outcome: 3
		tip("bob", "m1", 1, 0, submitted),   // correct winner: 3
	)

	comp, err := repos.rankingService().Compute(context.Background(), "t1")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if len(comp.Groups) != 2 {
		t.Fatalf("unexpected group count: got=%d want=2", len(comp.Groups))
	}

	first := comp.Groups[0]
	if !first.Eligible {
		t.Fatal("fully decided group should be eligible")
	}
	if first.SoleLeaderID != "alice" {
		t.Fatalf("unexpected sole leader: %q", first.SoleLeaderID)
	}
	if first.PointsByUser["alice"] != 8 || first.PointsByUser["bob"] != 3 {
		t.Fatalf("unexpected group points: %v", first.PointsByUser)
	}

	if comp.Groups[1].Eligible {
		t.Fatal("undecided group must not be eligible")
	}
	if comp.AllDecided {
		t.Fatal("tournament with a scheduled match is not all decided")
	}

	if len(comp.Standings) != 2 {
		t.Fatalf("unexpected standings length: %d", len(comp.Standings))
	}
	if comp.Standings[0].UserID != "alice" || comp.Standings[0].Rank != 1 {
		t.Fatalf("unexpected top row: %+v", comp.Standings[0])
	}
	if comp.Standings[1].UserID != "bob" || comp.Standings[1].Rank != 2 {
		t.Fatalf("unexpected second row: %+v", comp.Standings[1])
	}
	if comp.Standings[0].TotalPoints != 8 || comp.Standings[0].ExactScores != 1 {
		t.Fatalf("unexpected totals: %+v", comp.Standings[0])
	}
}

func TestRankingService_Compute_ZeroScoreGroupCrownsNobody(t *testing.T) {
	t.Parallel()

	tour := testTournament("t2", 1, 1)
	repos := newFixtureRepos(tour, []string{"alice", "bob"})

	kickoff := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	repos.matches.Put("t2", finishedLeague("m1", 1, kickoff, 2, 1))
	repos.predictions.Put("t2",
		tip("alice", "m1", 0, 2, kickoff.Add(-time.Hour)),
		tip("bob", "m1", 0, 3, kickoff.Add(-time.Hour)),
	)

	comp, err := repos.rankingService().Compute(context.Background(), "t2")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	group := comp.Groups[0]
	if group.SoleLeaderID != "" {
		t.Fatalf("zero-score matchday crowned %q", group.SoleLeaderID)
	}
	if comp.Facts["alice"].Streak.Current != 0 || comp.Facts["bob"].Streak.Current != 0 {
		t.Fatal("nobody should hold a streak after a scoreless matchday")
	}
}

func TestRankingService_Compute_StreakBreaksOnUndecidedGap(t *testing.T) {
	t.Parallel()

	tour := testTournament("t3", 1, 3)
	repos := newFixtureRepos(tour, []string{"alice", "bob"})

	base := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	submitted := base.Add(-24 * time.Hour)
	repos.matches.Put("t3",
		finishedLeague("m1", 1, base, 1, 0),
		scheduledLeague("m2", 2, base.Add(7*24*time.Hour)),
		finishedLeague("m3", 3, base.Add(14*24*time.Hour), 2, 0),
	)
	repos.predictions.Put("t3",
		tip("alice", "m1", 1, 0, submitted),
		tip("alice", "m3", 2, 0, submitted),
	)

	comp, err := repos.rankingService().Compute(context.Background(), "t3")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	streak := comp.Facts["alice"].Streak
	if streak.Current != 1 {
		t.Fatalf("unexpected current streak: got=%d want=1", streak.Current)
	}
	if streak.Max != 1 {
		t.Fatalf("gap must break the run: max=%d", streak.Max)
	}
	if _, ok := streak.ReachedAt[2]; ok {
		t.Fatal("streak of two should never have been reached across the gap")
	}
}

func TestRankingService_Compute_EarlyPredictionBonus(t *testing.T) {
	t.Parallel()

	tour := testTournament("t4", 1, 1)
	tour.EarlyPredictionBonusEnabled = true
	repos := newFixtureRepos(tour, []string{"alice", "bob"})

	kickoff := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	repos.matches.Put("t4", finishedLeague("m1", 1, kickoff, 2, 1))
	repos.predictions.Put("t4",
		tip("alice", "m1", 2, 1, kickoff.Add(-48*time.Hour)), // early: 5+1
		tip("bob", "m1", 2, 1, kickoff.Add(time.Minute)),     // late: 5
	)

	comp, err := repos.rankingService().Compute(context.Background(), "t4")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if got := comp.Facts["alice"].TotalPoints; got != 6 {
		t.Fatalf("early predictor total: got=%d want=6", got)
	}
	if got := comp.Facts["bob"].TotalPoints; got != 5 {
		t.Fatalf("late predictor total: got=%d want=5", got)
	}
	if comp.Facts["alice"].FirstOnTimeAt.IsZero() {
		t.Fatal("on-time fact not recorded for early predictor")
	}
	if !comp.Facts["bob"].FirstOnTimeAt.IsZero() {
		t.Fatal("late predictor must not count as on time")
	}
}

func TestRankingService_Compute_DenseRanking(t *testing.T) {
	t.Parallel()

	tour := testTournament("t5", 1, 1)
	repos := newFixtureRepos(tour, []string{"alice", "bob", "cara", "dan"})

	kickoff := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	submitted := kickoff.Add(-time.Hour)
	repos.matches.Put("t5",
		finishedLeague("m1", 1, kickoff, 2, 1),
		finishedLeague("m2", 1, kickoff.Add(2*time.Hour), 1, 1),
	)
	repos.predictions.Put("t5",
		tip("alice", "m1", 2, 1, submitted), // 5
		tip("alice", "m2", 1, 1, submitted), // 5 -> 10
		tip("bob", "m1", 1, 0, submitted),   // 3
		tip("bob", "m2", 3, 3, submitted),   // right draw, wrong score: 3 -> 6
		tip("cara", "m1", 1, 0, submitted),  // 3
		tip("cara", "m2", 2, 2, submitted),  // right draw, wrong score: 3 -> 6
	)

	comp, err := repos.rankingService().Compute(context.Background(), "t5")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	// alice 10, then bob and cara tied on 6 share a rank, dan trails.
	wantRanks := map[string]int{"alice": 1, "bob": 2, "cara": 2, "dan": 3}
	for _, row := range comp.Standings {
		if wantRanks[row.UserID] != row.Rank {
			t.Fatalf("user %s rank=%d want=%d", row.UserID, row.Rank, wantRanks[row.UserID])
		}
	}
}

func TestRankingService_Compute_UnknownTournament(t *testing.T) {
	t.Parallel()

	repos := newFixtureRepos(testTournament("t6", 1, 1), nil)
	_, err := repos.rankingService().Compute(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = repos.rankingService().Compute(context.Background(), "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
