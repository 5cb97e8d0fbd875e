package prediction

import "github.com/matchpool/tournament-engine/internal/domain/match"

// Points scores one prediction against a decided match. Undecided matches
// score 0.
//
// A default prediction can only ever earn the configured draw bonus: the
// placeholder is a draw, but awarding exact-score or correct-winner points
// for a tip the user never made would reward absence. Bonus matches double
// whatever base was earned.
func Points(p Prediction, m match.Match, rules ScoringRules) int {
	result, ok := m.Result()
	if !ok {
		return 0
	}

	base := 0
	switch {
	case p.IsDefault:
		if result == match.OutcomeDraw {
			base = rules.DefaultDrawPoints
		}
	case p.HomeScore == *m.HomeScore && p.AwayScore == *m.AwayScore:
		base = rules.ExactScorePoints
	case p.Outcome() == result:
		base = rules.CorrectWinnerPoints
	}

	if m.IsBonus {
		return base * 2
	}
	return base
}

// IsExact reports whether the prediction hit the decided score exactly.
// Default predictions never count, mirroring Points.
func IsExact(p Prediction, m match.Match) bool {
	if p.IsDefault || !m.Decided() {
		return false
	}
	return p.HomeScore == *m.HomeScore && p.AwayScore == *m.AwayScore
}

// IsCorrectResult reports whether the prediction called the winner, exact
// scores included. Default predictions never count.
func IsCorrectResult(p Prediction, m match.Match) bool {
	if p.IsDefault {
		return false
	}
	result, ok := m.Result()
	if !ok {
		return false
	}
	return p.Outcome() == result
}
