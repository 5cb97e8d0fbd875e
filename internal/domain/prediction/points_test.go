package prediction

import (
	"testing"

	"github.com/matchpool/tournament-engine/internal/domain/match"
)

func decidedMatch(home, away int, bonus bool) match.Match {
	return match.Match{
		ID:        "m1",
		Status:    match.StatusFinished,
		HomeScore: &home,
		AwayScore: &away,
		IsBonus:   bonus,
	}
}

func TestPoints(t *testing.T) {
	t.Parallel()

	rules := DefaultScoringRules()

	cases := []struct {
		name string
		pred Prediction
		m    match.Match
		want int
	}{
		{
			name: "exact score",
			pred: Prediction{HomeScore: 2, AwayScore: 1},
			m:    decidedMatch(2, 1, false),
			want: 5,
		},
		{
			name: "correct winner on bonus match doubles",
			pred: Prediction{HomeScore: 1, AwayScore: 0},
			m:    decidedMatch(3, 1, true),
			want: 6,
		},
		{
			name: "wrong outcome",
			pred: Prediction{HomeScore: 0, AwayScore: 2},
			m:    decidedMatch(2, 0, false),
			want: 0,
		},
		{
			name: "default prediction earns draw bonus only",
			pred: Prediction{HomeScore: 0, AwayScore: 0, IsDefault: true},
			m:    decidedMatch(1, 1, false),
			want: 1,
		},
		{
			name: "default placeholder matching score still earns draw bonus only",
			pred: Prediction{HomeScore: 0, AwayScore: 0, IsDefault: true},
			m:    decidedMatch(0, 0, false),
			want: 1,
		},
		{
			name: "default prediction never scores exact",
			pred: Prediction{HomeScore: 0, AwayScore: 0, IsDefault: true},
			m:    decidedMatch(2, 0, false),
			want: 0,
		},
		{
			name: "default draw on bonus match doubles",
			pred: Prediction{HomeScore: 0, AwayScore: 0, IsDefault: true},
			m:    decidedMatch(2, 2, true),
			want: 2,
		},
		{
			name: "undecided match scores zero",
			pred: Prediction{HomeScore: 1, AwayScore: 0},
			m:    match.Match{ID: "m2", Status: match.StatusScheduled},
			want: 0,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Points(tc.pred, tc.m, rules)
			if got != tc.want {
				t.Fatalf("unexpected points: got=%d want=%d", got, tc.want)
			}
		})
	}
}

func TestIsExactAndIsCorrectResultExcludeDefaults(t *testing.T) {
	t.Parallel()

	m := decidedMatch(1, 1, false)
	def := Prediction{HomeScore: 1, AwayScore: 1, IsDefault: true}

	if IsExact(def, m) {
		t.Fatal("default prediction must not count as exact")
	}
	if IsCorrectResult(def, m) {
		t.Fatal("default prediction must not count as correct result")
	}

	real := Prediction{HomeScore: 1, AwayScore: 1}
	if !IsExact(real, m) {
		t.Fatal("matching scores should count as exact")
	}
	if !IsCorrectResult(real, m) {
		t.Fatal("exact score should also count as correct result")
	}
}
