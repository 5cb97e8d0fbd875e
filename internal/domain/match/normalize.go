package match

import "time"

// The two competition flavors arrive with different shapes. Both resolve to
// the canonical Match exactly once, at the repository edge, so nothing
// downstream has to care which kind of competition a tournament follows.

// LeagueMatch is a fixture imported from the sports-data feed. Stage and
// matchday always come paired; matchday restarts at 1 inside each stage.
type LeagueMatch struct {
	ID            string
	CompetitionID string
	Stage         Stage
	Matchday      int
	UTCDate       time.Time
	Status        string
	FullTimeHome  *int
	FullTimeAway  *int
	IsBonus       bool
}

// CustomMatch is a match authored inside a user-created competition. There
// are no stages; the owner numbers matchdays directly.
type CustomMatch struct {
	ID            string
	CompetitionID string
	Matchday      int
	KickoffAt     time.Time
	Finished      bool
	HomeScore     *int
	AwayScore     *int
	IsBonus       bool
}

// Record is one raw match row of either competition flavor.
type Record interface {
	Canonical() Match
}

func (m LeagueMatch) Canonical() Match {
	stage := m.Stage
	return Match{
		ID:             m.ID,
		CompetitionRef: m.CompetitionID,
		Stage:          &stage,
		Matchday:       m.Matchday,
		KickoffAt:      m.UTCDate,
		Status:         NormalizeStatus(m.Status),
		HomeScore:      m.FullTimeHome,
		AwayScore:      m.FullTimeAway,
		IsBonus:        m.IsBonus,
	}
}

func (m CustomMatch) Canonical() Match {
	status := StatusScheduled
	if m.Finished {
		status = StatusFinished
	}
	return Match{
		ID:             m.ID,
		CompetitionRef: m.CompetitionID,
		Matchday:       m.Matchday,
		KickoffAt:      m.KickoffAt,
		Status:         status,
		HomeScore:      m.HomeScore,
		AwayScore:      m.AwayScore,
		IsBonus:        m.IsBonus,
	}
}

func Normalize(records []Record) []Match {
	out := make([]Match, 0, len(records))
	for _, record := range records {
		out = append(out, record.Canonical())
	}
	return out
}
