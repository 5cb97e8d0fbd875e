package match

import (
	"strings"
	"time"
)

// Stage identifies the competition phase a match belongs to. Imported
// competitions carry a stage; custom competitions have none.
type Stage string

const (
	StageRegularSeason Stage = "REGULAR_SEASON"
	StageLeague        Stage = "LEAGUE_STAGE"
	StageGroup         Stage = "GROUP_STAGE"
	StagePreliminary   Stage = "PRELIMINARY_ROUND"
	StagePlayoffs      Stage = "PLAYOFFS"
	StageLast32        Stage = "LAST_32"
	StageLast16        Stage = "LAST_16"
	StageQuarterFinals Stage = "QUARTER_FINALS"
	StageSemiFinals    Stage = "SEMI_FINALS"
	StageThirdPlace    Stage = "THIRD_PLACE"
	StageFinal         Stage = "FINAL"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusFinished  = "FINISHED"
	StatusAwarded   = "AWARDED"
)

// Outcome is the result of a match or a prediction from the home side's view.
type Outcome string

const (
	OutcomeHome Outcome = "HOME"
	OutcomeAway Outcome = "AWAY"
	OutcomeDraw Outcome = "DRAW"
)

// Match is the canonical shape every downstream component consumes. Matchday
// numbers are not globally unique: knockout stages restart at 1.
type Match struct {
	ID             string
	CompetitionRef string
	Stage          *Stage
	Matchday       int
	KickoffAt      time.Time
	Status         string
	HomeScore      *int
	AwayScore      *int
	IsBonus        bool
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

// Decided reports whether the match result counts for scoring. AWARDED
// results (forfeits, administrative decisions) count like FINISHED ones.
func (m Match) Decided() bool {
	switch NormalizeStatus(m.Status) {
	case StatusFinished, StatusAwarded:
		return m.HomeScore != nil && m.AwayScore != nil
	default:
		return false
	}
}

// Result returns the match outcome; ok is false while the match is undecided.
func (m Match) Result() (Outcome, bool) {
	if !m.Decided() {
		return "", false
	}
	return CompareScores(*m.HomeScore, *m.AwayScore), true
}

func CompareScores(home, away int) Outcome {
	switch {
	case home > away:
		return OutcomeHome
	case home < away:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

func IsKnockout(stage *Stage) bool {
	if stage == nil {
		return false
	}
	switch *stage {
	case StageRegularSeason, StageLeague, StageGroup:
		return false
	default:
		return true
	}
}

func (s Stage) Label() string {
	switch s {
	case StageRegularSeason:
		return "Regular season"
	case StageLeague:
		return "League stage"
	case StageGroup:
		return "Group stage"
	case StagePreliminary:
		return "Preliminary round"
	case StagePlayoffs:
		return "Playoffs"
	case StageLast32:
		return "Round of 32"
	case StageLast16:
		return "Round of 16"
	case StageQuarterFinals:
		return "Quarter-finals"
	case StageSemiFinals:
		return "Semi-finals"
	case StageThirdPlace:
		return "Third place"
	case StageFinal:
		return "Final"
	default:
		return string(s)
	}
}
