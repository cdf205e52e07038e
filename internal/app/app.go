package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/matchdayhq/matchday-api/internal/config"
	"github.com/matchdayhq/matchday-api/internal/domain/match"
	"github.com/matchdayhq/matchday-api/internal/domain/season"
	"github.com/matchdayhq/matchday-api/internal/domain/team"
	cacherepo "github.com/matchdayhq/matchday-api/internal/infrastructure/repository/cache"
	"github.com/matchdayhq/matchday-api/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/matchday-api/internal/infrastructure/repository/postgres"
	"github.com/matchdayhq/matchday-api/internal/infrastructure/stats"
	"github.com/matchdayhq/matchday-api/internal/interfaces/httpapi"
	basecache "github.com/matchdayhq/matchday-api/internal/platform/cache"
	idgen "github.com/matchdayhq/matchday-api/internal/platform/id"
	"github.com/matchdayhq/matchday-api/internal/platform/logging"
	"github.com/matchdayhq/matchday-api/internal/platform/resilience"
	"github.com/matchdayhq/matchday-api/internal/usecase"
)

// App bundles the HTTP server with the resources it owns so shutdown can
// drain them in order: server first, then the stats dispatcher, then the DB.
type App struct {
	Server *http.Server

	db         *sqlx.DB
	dispatcher *stats.Dispatcher
	logger     *slog.Logger
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if appLogger == nil {
		appLogger = logging.Default()
	}

	var (
		db         *sqlx.DB
		matchRepo  match.Repository
		seasonRepo season.Repository
		teamRepo   team.Repository
	)

	if cfg.DBURL != "" {
		dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
		opened, err := otelsqlx.Open("postgres", dsn,
			otelsql.WithDBSystem("postgresql"),
			otelsql.WithDBName(dbNameFromURL(dsn)),
			otelsql.WithQueryFormatter(formatDBQueryForTrace),
		)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := opened.PingContext(ctx); err != nil {
			_ = opened.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		if err := postgres.BootstrapSeed(ctx, opened); err != nil {
			_ = opened.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}

		db = opened
		matchRepo = postgres.NewMatchRepository(db)
		seasonRepo = postgres.NewSeasonRepository(db)
		teamRepo = postgres.NewTeamRepository(db)
		logger.Info("storage backend", "kind", "postgres", "db", dbNameFromURL(dsn))
	} else {
		teams := memory.SeedTeams()
		seasons := memory.SeedSeasons()
		matchRepo = memory.NewMatchRepository(teams, seasons)
		seasonRepo = memory.NewSeasonRepository(seasons, memory.SeedRegistrations())
		teamRepo = memory.NewTeamRepository(teams)
		logger.Info("storage backend", "kind", "memory")
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		matchRepo = cacherepo.NewMatchRepository(matchRepo, store)
		seasonRepo = cacherepo.NewSeasonRepository(seasonRepo, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL)
	}

	var (
		notifier   usecase.StatsNotifier
		dispatcher *stats.Dispatcher
	)
	if cfg.StatsAggEnabled {
		client := stats.NewClient(stats.ClientConfig{
			HTTPClient: &http.Client{Timeout: cfg.StatsAggTimeout},
			BaseURL:    cfg.StatsAggBaseURL,
			Token:      cfg.StatsAggToken,
			Timeout:    cfg.StatsAggTimeout,
			MaxRetries: cfg.StatsAggMaxRetries,
			Logger:     appLogger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.StatsAggCircuitEnabled,
				FailureThreshold: cfg.StatsAggCircuitFailures,
				OpenTimeout:      cfg.StatsAggCircuitOpenFor,
				HalfOpenMaxReq:   cfg.StatsAggCircuitHalfOpenReq,
			},
		})
		dispatcher = stats.NewDispatcher(client, cfg.StatsAggRedeliverDelay, cfg.StatsAggRedeliverAttempts, appLogger)
		notifier = dispatcher
		logger.Info("stats aggregator enabled", "base_url", cfg.StatsAggBaseURL)
	}

	matchSvc := usecase.NewMatchService(matchRepo)
	fixtureSvc := usecase.NewFixtureService(seasonRepo, matchRepo, teamRepo, idgen.NewUUIDGenerator(), cfg.FixtureDoubleRoundRobin)
	resultSvc := usecase.NewResultService(matchRepo, notifier, logger)
	resyncSvc := usecase.NewStatsResyncService(seasonRepo, matchRepo, notifier, cfg.ResyncWorkerCount, logger)

	handler := httpapi.NewHandler(matchSvc, fixtureSvc, resultSvc, resyncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:     server,
		db:         db,
		dispatcher: dispatcher,
		logger:     logger,
	}, nil
}

// Shutdown stops the HTTP server, drains pending stats redeliveries, and
// closes the database pool.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	if err := a.Server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("shutdown http server: %w", err)
	}

	if a.dispatcher != nil {
		a.dispatcher.Close()
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close database: %w", err)
		}
	}

	return firstErr
}
