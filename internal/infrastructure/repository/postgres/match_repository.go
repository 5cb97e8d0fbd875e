package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpool/tournament-engine/internal/domain/match"
)

// MatchRepository reads both competition flavors and hands back the
// canonical view. A tournament follows exactly one competition, so one of
// the two selects always comes back empty.
type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

const selectLeagueMatches = `
SELECT lm.public_id, lm.competition_ref, lm.stage, lm.matchday, lm.utc_date,
       lm.status, lm.full_time_home, lm.full_time_away, lm.is_bonus
FROM league_matches lm
JOIN tournaments t ON t.competition_ref = lm.competition_ref
WHERE t.public_id = $1 AND lm.deleted_at IS NULL AND t.deleted_at IS NULL
ORDER BY lm.utc_date, lm.public_id`

const selectCustomMatches = `
SELECT cm.public_id, cm.competition_ref, cm.matchday, cm.kickoff_at,
       cm.finished, cm.home_score, cm.away_score, cm.is_bonus
FROM custom_matches cm
JOIN tournaments t ON t.competition_ref = cm.competition_ref
WHERE t.public_id = $1 AND cm.deleted_at IS NULL AND t.deleted_at IS NULL
ORDER BY cm.kickoff_at, cm.public_id`

func (r *MatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]match.Match, error) {
	var leagueRows []leagueMatchTableModel
	if err := r.db.SelectContext(ctx, &leagueRows, selectLeagueMatches, tournamentID); err != nil {
		return nil, fmt.Errorf("select league matches: %w", err)
	}

	var customRows []customMatchTableModel
	if err := r.db.SelectContext(ctx, &customRows, selectCustomMatches, tournamentID); err != nil {
		return nil, fmt.Errorf("select custom matches: %w", err)
	}

	records := make([]match.Record, 0, len(leagueRows)+len(customRows))
	for _, row := range leagueRows {
		records = append(records, match.LeagueMatch{
			ID:            row.PublicID,
			CompetitionID: row.CompetitionID,
			Stage:         match.Stage(row.Stage),
			Matchday:      row.Matchday,
			UTCDate:       row.UTCDate,
			Status:        row.Status,
			FullTimeHome:  nullIntToPtr(row.FullTimeHome),
			FullTimeAway:  nullIntToPtr(row.FullTimeAway),
			IsBonus:       row.IsBonus,
		})
	}
	for _, row := range customRows {
		records = append(records, match.CustomMatch{
			ID:            row.PublicID,
			CompetitionID: row.CompetitionID,
			Matchday:      row.Matchday,
			KickoffAt:     row.KickoffAt,
			Finished:      row.Finished,
			HomeScore:     nullIntToPtr(row.HomeScore),
			AwayScore:     nullIntToPtr(row.AwayScore),
			IsBonus:       row.IsBonus,
		})
	}

	return match.Normalize(records), nil
}
