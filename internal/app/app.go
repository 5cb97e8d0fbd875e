package app

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/matchpool/tournament-engine/internal/config"
	"github.com/matchpool/tournament-engine/internal/domain/match"
	"github.com/matchpool/tournament-engine/internal/domain/prediction"
	"github.com/matchpool/tournament-engine/internal/domain/standing"
	"github.com/matchpool/tournament-engine/internal/domain/tournament"
	"github.com/matchpool/tournament-engine/internal/domain/trophy"
	cacherepo "github.com/matchpool/tournament-engine/internal/infrastructure/repository/cache"
	"github.com/matchpool/tournament-engine/internal/infrastructure/repository/memory"
	pgrepo "github.com/matchpool/tournament-engine/internal/infrastructure/repository/postgres"
	basecache "github.com/matchpool/tournament-engine/internal/platform/cache"
	"github.com/matchpool/tournament-engine/internal/platform/logging"
	"github.com/matchpool/tournament-engine/internal/usecase"
)

// Engine bundles the wired sweep pipeline and its shutdown hook.
type Engine struct {
	Sweeper *usecase.SweepService
	Close   func() error
}

// NewEngine wires repositories and services. With DB_URL set it runs against
// postgres; without one it runs on seeded in-memory repositories, which is
// enough for local development and demos.
func NewEngine(cfg config.Config, logger *logging.Logger) (*Engine, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		tournamentRepo tournament.Repository
		matchRepo      match.Repository
		predictionRepo prediction.Repository
		standingRepo   standing.Repository
		trophyRepo     trophy.Repository
	)
	closeFn := func() error { return nil }

	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("storage backend", "backend", "memory")

		memTournaments := memory.NewTournamentRepository()
		memTournaments.Put(memory.SeedTournament(), memory.SeedParticipants())

		memMatches := memory.NewMatchRepository()
		memMatches.Put(memory.TournamentIDDemo, memory.SeedMatches()...)

		memPredictions := memory.NewPredictionRepository()
		memPredictions.Put(memory.TournamentIDDemo, memory.SeedPredictions()...)

		tournamentRepo = memTournaments
		matchRepo = memMatches
		predictionRepo = memPredictions
		standingRepo = memory.NewStandingRepository()
		trophyRepo = memory.NewTrophyRepository()
	} else {
		dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
		db, err := otelsqlx.Connect("postgres", dbURL,
			otelsql.WithDBName(dbNameFromURL(dbURL)),
		)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		logger.Info("storage backend", "backend", "postgres", "db", dbNameFromURL(dbURL))

		tournamentRepo = pgrepo.NewTournamentRepository(db)
		matchRepo = pgrepo.NewMatchRepository(db)
		predictionRepo = pgrepo.NewPredictionRepository(db)
		standingRepo = pgrepo.NewStandingRepository(db)
		trophyRepo = pgrepo.NewTrophyRepository(db)

		if cfg.CacheEnabled {
			tournamentRepo = cacherepo.NewTournamentRepository(tournamentRepo, basecache.NewStore(cfg.CacheTTL))
		}
		closeFn = db.Close
	}

	rankings := usecase.NewRankingService(tournamentRepo, matchRepo, predictionRepo, logger)
	trophies := usecase.NewTrophyService(trophyRepo, logger)
	endingDates := usecase.NewEndingDateService(matchRepo, logger)

	sweeper := usecase.NewSweepService(
		tournamentRepo,
		standingRepo,
		trophyRepo,
		rankings,
		trophies,
		endingDates,
		logger,
		cfg.SweepWorkers,
		cfg.TournamentBudget,
	)

	return &Engine{Sweeper: sweeper, Close: closeFn}, nil
}

// Shutdown closes shared resources; safe to call once after the last sweep.
func (e *Engine) Shutdown(context.Context) error {
	if e == nil || e.Close == nil {
		return nil
	}
	return e.Close()
}
