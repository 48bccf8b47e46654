package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/crickhq/fantasy-cricket/internal/config"
	"github.com/crickhq/fantasy-cricket/internal/domain/contest"
	"github.com/crickhq/fantasy-cricket/internal/domain/performance"
	"github.com/crickhq/fantasy-cricket/internal/domain/player"
	"github.com/crickhq/fantasy-cricket/internal/domain/team"
	"github.com/crickhq/fantasy-cricket/internal/infrastructure/account/gatekeeper"
	"github.com/crickhq/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/crickhq/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/crickhq/fantasy-cricket/internal/interfaces/httpapi"
	"github.com/crickhq/fantasy-cricket/internal/platform/cache"
	idgen "github.com/crickhq/fantasy-cricket/internal/platform/id"
	"github.com/crickhq/fantasy-cricket/internal/platform/logging"
	"github.com/crickhq/fantasy-cricket/internal/platform/resilience"
	"github.com/crickhq/fantasy-cricket/internal/usecase"
)

type repositories struct {
	players      player.Repository
	contests     contest.Repository
	teams        team.Repository
	performances performance.Repository
	db           *sqlx.DB
}

// NewHTTPServer wires repositories, services, and the router into a
// ready-to-run server. A blank DB_URL selects the in-memory store with
// seeded fixtures, which is how local dev and tests run.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	playerSvc := usecase.NewPlayerService(repos.players, logger)
	contestSvc := usecase.NewContestService(repos.contests, logger)
	teamSvc := usecase.NewTeamService(
		repos.players,
		repos.teams,
		repos.contests,
		team.Rules{CreditCap: cfg.TeamCreditCap},
		idgen.NewRandomGenerator(),
		logger,
	)
	scoringSvc := usecase.NewScoringService(
		repos.players,
		repos.teams,
		repos.performances,
		cacheStore,
		cfg.ScoringWorkerCount,
		logger,
	)
	leaderboardSvc := usecase.NewLeaderboardService(
		repos.teams,
		repos.contests,
		scoringSvc,
		cacheStore,
		cfg.LeaderboardMaxConcurrency,
		logger,
	)

	gatekeeperClient := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(playerSvc, contestSvc, teamSvc, scoringSvc, leaderboardSvc, logger)
	router := httpapi.NewRouter(handler, gatekeeperClient, logger, httpapi.RouterConfig{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		SwaggerEnabled: cfg.SwaggerEnabled,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() error {
		if repos.db != nil {
			return repos.db.Close()
		}
		return nil
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("storage backend selected", "backend", "memory")
		return repositories{
			players:      memory.NewPlayerRepository(memory.SeedPlayers()),
			contests:     memory.NewContestRepository(memory.SeedContests()),
			teams:        memory.NewTeamRepository(),
			performances: memory.NewPerformanceRepository(),
		}, nil
	}

	db, err := connectDB(cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("connect database: %w", err)
	}
	logger.Info("storage backend selected", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))

	return repositories{
		players:      postgres.NewPlayerRepository(db),
		contests:     postgres.NewContestRepository(db),
		teams:        postgres.NewTeamRepository(db),
		performances: postgres.NewPerformanceRepository(db),
		db:           db,
	}, nil
}

func connectDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, true)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)

	return db, nil
}
