package memory

import (
	"time"

	"github.com/matchpool/tournament-engine/internal/domain/match"
	"github.com/matchpool/tournament-engine/internal/domain/prediction"
	"github.com/matchpool/tournament-engine/internal/domain/tournament"
)

const (
	TournamentIDDemo   = "demo-epl-2026"
	CompetitionRefDemo = "eng-premier-league-2026"
)

func SeedTournament() tournament.Tournament {
	return tournament.Tournament{
		ID:                          TournamentIDDemo,
		CompetitionRef:              CompetitionRefDemo,
		StartingMatchday:            1,
		EndingMatchday:              3,
		Status:                      tournament.StatusActive,
		BonusMatchEnabled:           true,
		EarlyPredictionBonusEnabled: false,
		Scoring:                     prediction.DefaultScoringRules(),
	}
}

func SeedParticipants() []string {
	return []string{"user-ayu", "user-bagus", "user-citra"}
}

func SeedMatches() []match.Record {
	score := func(v int) *int { return &v }
	return []match.Record{
		match.LeagueMatch{
			ID:            "lm-001",
			CompetitionID: CompetitionRefDemo,
			Stage:         match.StageRegularSeason,
			Matchday:      1,
			UTCDate:       time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC),
			Status:        match.StatusFinished,
			FullTimeHome:  score(2),
			FullTimeAway:  score(1),
		},
		match.LeagueMatch{
			ID:            "lm-002",
			CompetitionID: CompetitionRefDemo,
			Stage:         match.StageRegularSeason,
			Matchday:      1,
			UTCDate:       time.Date(2026, 8, 15, 16, 30, 0, 0, time.UTC),
			Status:        match.StatusFinished,
			FullTimeHome:  score(0),
			FullTimeAway:  score(0),
			IsBonus:       true,
		},
		match.LeagueMatch{
			ID:            "lm-003",
			CompetitionID: CompetitionRefDemo,
			Stage:         match.StageRegularSeason,
			Matchday:      2,
			UTCDate:       time.Date(2026, 8, 22, 14, 0, 0, 0, time.UTC),
			Status:        match.StatusFinished,
			FullTimeHome:  score(3),
			FullTimeAway:  score(2),
		},
		match.LeagueMatch{
			ID:            "lm-004",
			CompetitionID: CompetitionRefDemo,
			Stage:         match.StageRegularSeason,
			Matchday:      2,
			UTCDate:       time.Date(2026, 8, 22, 16, 30, 0, 0, time.UTC),
			Status:        match.StatusFinished,
			FullTimeHome:  score(1),
			FullTimeAway:  score(1),
		},
		match.LeagueMatch{
			ID:            "lm-005",
			CompetitionID: CompetitionRefDemo,
			Stage:         match.StageRegularSeason,
			Matchday:      3,
			UTCDate:       time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC),
			Status:        match.StatusScheduled,
		},
	}
}

func SeedPredictions() []prediction.Prediction {
	submitted := time.Date(2026, 8, 14, 9, 0, 0, 0, time.UTC)
	return []prediction.Prediction{
		{UserID: "user-ayu", TournamentID: TournamentIDDemo, MatchID: "lm-001", HomeScore: 2, AwayScore: 1, SubmittedAt: submitted},
		{UserID: "user-ayu", TournamentID: TournamentIDDemo, MatchID: "lm-002", HomeScore: 1, AwayScore: 0, SubmittedAt: submitted},
		{UserID: "user-ayu", TournamentID: TournamentIDDemo, MatchID: "lm-003", HomeScore: 1, AwayScore: 0, SubmittedAt: submitted},
		{UserID: "user-bagus", TournamentID: TournamentIDDemo, MatchID: "lm-001", HomeScore: 1, AwayScore: 0, SubmittedAt: submitted},
		{UserID: "user-bagus", TournamentID: TournamentIDDemo, MatchID: "lm-002", HomeScore: 0, AwayScore: 0, SubmittedAt: submitted},
		{UserID: "user-bagus", TournamentID: TournamentIDDemo, MatchID: "lm-004", HomeScore: 1, AwayScore: 1, SubmittedAt: submitted},
		{UserID: "user-citra", TournamentID: TournamentIDDemo, MatchID: "lm-001", HomeScore: 0, AwayScore: 0, IsDefault: true, SubmittedAt: submitted},
		{UserID: "user-citra", TournamentID: TournamentIDDemo, MatchID: "lm-003", HomeScore: 3, AwayScore: 2, SubmittedAt: submitted},
	}
}
