package postgres

import (
	"database/sql"
	"time"
)

type leagueMatchTableModel struct {
	ID            int64         `db:"id"`
	PublicID      string        `db:"public_id"`
	CompetitionID string        `db:"competition_ref"`
	Stage         string        `db:"stage"`
	Matchday      int           `db:"matchday"`
	UTCDate       time.Time     `db:"utc_date"`
	Status        string        `db:"status"`
	FullTimeHome  sql.NullInt64 `db:"full_time_home"`
	FullTimeAway  sql.NullInt64 `db:"full_time_away"`
	IsBonus       bool          `db:"is_bonus"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
	DeletedAt     *time.Time    `db:"deleted_at"`
}

type customMatchTableModel struct {
	ID            int64         `db:"id"`
	PublicID      string        `db:"public_id"`
	CompetitionID string        `db:"competition_ref"`
	Matchday      int           `db:"matchday"`
	KickoffAt     time.Time     `db:"kickoff_at"`
	Finished      bool          `db:"finished"`
	HomeScore     sql.NullInt64 `db:"home_score"`
	AwayScore     sql.NullInt64 `db:"away_score"`
	IsBonus       bool          `db:"is_bonus"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
	DeletedAt     *time.Time    `db:"deleted_at"`
}
