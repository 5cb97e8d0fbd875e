package standing

// Standing is one participant's row in a tournament ranking. Derived state:
// recomputable from predictions and matches at any time, never authoritative.
type Standing struct {
	TournamentID   string
	UserID         string
	Rank           int
	TotalPoints    int
	ExactScores    int
	CorrectResults int
}
