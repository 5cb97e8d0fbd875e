package prediction

import (
	"time"

	"github.com/matchpool/tournament-engine/internal/domain/match"
)

// Prediction is one user's tip for one match. At most one row exists per
// (user, match); rows never change once the match is decided.
type Prediction struct {
	UserID       string
	TournamentID string
	MatchID      string
	HomeScore    int
	AwayScore    int
	// IsDefault marks the placeholder draw back-filled at lock time when
	// the user never submitted.
	IsDefault   bool
	SubmittedAt time.Time
}

func (p Prediction) Outcome() match.Outcome {
	return match.CompareScores(p.HomeScore, p.AwayScore)
}

// ScoringRules holds a tournament's configured point values.
type ScoringRules struct {
	ExactScorePoints    int `validate:"gte=0"`
	CorrectWinnerPoints int `validate:"gte=0"`
	DefaultDrawPoints   int `validate:"gte=0"`
}

func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		ExactScorePoints:    5,
		CorrectWinnerPoints: 3,
		DefaultDrawPoints:   1,
	}
}
