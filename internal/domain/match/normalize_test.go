package match

import (
	"testing"
	"time"
)

func TestLeagueMatchCanonical(t *testing.T) {
	t.Parallel()

	home, away := 2, 2
	kickoff := time.Date(2026, 5, 2, 18, 45, 0, 0, time.UTC)
	raw := LeagueMatch{
		ID:            "lm-10",
		CompetitionID: "uefa-cl-2026",
		Stage:         StageSemiFinals,
		Matchday:      2,
		UTCDate:       kickoff,
		Status:        "finished",
		FullTimeHome:  &home,
		FullTimeAway:  &away,
		IsBonus:       true,
	}

	got := raw.Canonical()
	if got.Stage == nil || *got.Stage != StageSemiFinals {
		t.Fatalf("stage not carried over: %v", got.Stage)
	}
	if got.Status != StatusFinished {
		t.Fatalf("status not normalized: %q", got.Status)
	}
	if !got.Decided() {
		t.Fatal("finished match with scores should be decided")
	}
	if !got.IsBonus {
		t.Fatal("bonus flag lost in normalization")
	}
}

func TestCustomMatchCanonical(t *testing.T) {
	t.Parallel()

	raw := CustomMatch{
		ID:            "cm-3",
		CompetitionID: "office-cup",
		Matchday:      3,
		KickoffAt:     time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC),
		Finished:      false,
	}

	got := raw.Canonical()
	if got.Stage != nil {
		t.Fatalf("custom matches must not carry a stage, got %v", *got.Stage)
	}
	if got.Status != StatusScheduled {
		t.Fatalf("unfinished custom match should be scheduled, got %q", got.Status)
	}
	if got.Decided() {
		t.Fatal("unfinished custom match must not be decided")
	}
}

func TestDecidedRequiresScores(t *testing.T) {
	t.Parallel()

	m := Match{ID: "m", Status: StatusAwarded}
	if m.Decided() {
		t.Fatal("awarded match without scores must not be decided")
	}

	home, away := 3, 0
	m.HomeScore, m.AwayScore = &home, &away
	if !m.Decided() {
		t.Fatal("awarded match with scores should count like a finished one")
	}
	if result, ok := m.Result(); !ok || result != OutcomeHome {
		t.Fatalf("unexpected result: %v ok=%t", result, ok)
	}
}
