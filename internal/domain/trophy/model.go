package trophy

import "time"

// Type names one of the unlockable trophies. The engine re-evaluates every
// predicate on each run; recording is idempotent per (user, type).
type Type string

const (
	TypeFirstCorrectResult Type = "FIRST_CORRECT_RESULT"
	TypeFirstExactScore    Type = "FIRST_EXACT_SCORE"
	TypeKingOfDay          Type = "KING_OF_DAY"
	TypeDoubleKing         Type = "DOUBLE_KING"
	TypeTripleKing         Type = "TRIPLE_KING"
	TypeOpportunist        Type = "OPPORTUNIST"
	TypeNostradamus        Type = "NOSTRADAMUS"
	TypeSniper             Type = "SNIPER"
	TypeBonusProfiteer     Type = "BONUS_PROFITEER"
	TypeBonusOptimizer     Type = "BONUS_OPTIMIZER"
	TypeEarlyBird          Type = "EARLY_BIRD"
	TypeClockwork          Type = "CLOCKWORK"
	TypeCentury            Type = "CENTURY"
	TypePerfectDay         Type = "PERFECT_DAY"
	TypeComeback           Type = "COMEBACK"
	TypeBallonDOr          Type = "BALLON_DOR"
)

var AllTypes = map[Type]struct{}{
	TypeFirstCorrectResult: {},
	TypeFirstExactScore:    {},
	TypeKingOfDay:          {},
	TypeDoubleKing:         {},
	TypeTripleKing:         {},
	TypeOpportunist:        {},
	TypeNostradamus:        {},
	TypeSniper:             {},
	TypeBonusProfiteer:     {},
	TypeBonusOptimizer:     {},
	TypeEarlyBird:          {},
	TypeClockwork:          {},
	TypeCentury:            {},
	TypePerfectDay:         {},
	TypeComeback:           {},
	TypeBallonDOr:          {},
}

// UnlockEvent is the fact that a user earned a trophy. UnlockedAt carries
// match time, not wall-clock time, so re-runs reproduce identical events.
type UnlockEvent struct {
	TournamentID string
	UserID       string
	Type         Type
	UnlockedAt   time.Time
}
