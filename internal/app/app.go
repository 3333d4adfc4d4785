package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"github.com/youthscout/talent-tracker/external/apifootball"
	"github.com/youthscout/talent-tracker/internal/config"
	"github.com/youthscout/talent-tracker/internal/domain/club"
	"github.com/youthscout/talent-tracker/internal/domain/country"
	"github.com/youthscout/talent-tracker/internal/domain/injury"
	"github.com/youthscout/talent-tracker/internal/domain/league"
	"github.com/youthscout/talent-tracker/internal/domain/player"
	"github.com/youthscout/talent-tracker/internal/domain/playerstat"
	"github.com/youthscout/talent-tracker/internal/domain/sidelined"
	"github.com/youthscout/talent-tracker/internal/domain/transfer"
	"github.com/youthscout/talent-tracker/internal/domain/trophy"
	cacherepo "github.com/youthscout/talent-tracker/internal/infrastructure/repository/cache"
	"github.com/youthscout/talent-tracker/internal/infrastructure/repository/memory"
	"github.com/youthscout/talent-tracker/internal/infrastructure/repository/postgres"
	"github.com/youthscout/talent-tracker/internal/interfaces/httpapi"
	basecache "github.com/youthscout/talent-tracker/internal/platform/cache"
	"github.com/youthscout/talent-tracker/internal/platform/logging"
	"github.com/youthscout/talent-tracker/internal/platform/resilience"
	"github.com/youthscout/talent-tracker/internal/scheduler"
	"github.com/youthscout/talent-tracker/internal/usecase"

	_ "github.com/lib/pq"
)

// Application bundles the wired service so main only starts and stops
// it.
type Application struct {
	Config    config.Config
	Logger    *logging.Logger
	DB        *sqlx.DB
	Scheduler *scheduler.Scheduler
	Server    *http.Server
}

type repositories struct {
	countries country.Repository
	leagues   league.Repository
	clubs     club.Repository
	players   player.Repository
	stats     playerstat.Repository
	transfers transfer.Repository
	injuries  injury.Repository
	sidelined sidelined.Repository
	trophies  trophy.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var db *sqlx.DB
	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		opened, err := openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		repos = repositories{
			countries: postgres.NewCountryRepository(db),
			leagues:   postgres.NewLeagueRepository(db),
			clubs:     postgres.NewClubRepository(db),
			players:   postgres.NewPlayerRepository(db),
			stats:     postgres.NewStatRepository(db),
			transfers: postgres.NewTransferRepository(db),
			injuries:  postgres.NewInjuryRepository(db),
			sidelined: postgres.NewSidelinedRepository(db),
			trophies:  postgres.NewTrophyRepository(db),
		}
	case config.StorageMemory:
		store := memory.NewStore()
		repos = repositories{
			countries: store.Countries(),
			leagues:   store.Leagues(),
			clubs:     store.Clubs(),
			players:   store.Players(),
			stats:     store.Statistics(),
			transfers: store.Transfers(),
			injuries:  store.Injuries(),
			sidelined: store.Sidelined(),
			trophies:  store.Trophies(),
		}
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.countries = cacherepo.NewCountryRepository(repos.countries, store)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
		repos.clubs = cacherepo.NewClubRepository(repos.clubs, store)
	}

	budget := usecase.NewCallBudget(cfg.PopulationDailyCallCap)

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:        cfg.FootballAPIBaseURL,
		APIKey:         cfg.FootballAPIKey,
		APIHost:        cfg.FootballAPIHost,
		Timeout:        cfg.FootballAPITimeout,
		MaxAttempts:    cfg.FootballAPIMaxAttempts,
		MinInterval:    cfg.FootballAPIMinInterval,
		RetryBaseDelay: cfg.FootballAPIRetryBaseDelay,
		Logger:         logger,
		Recorder:       budget,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballAPICircuitEnabled,
			FailureThreshold: cfg.FootballAPICircuitFailureCount,
			OpenTimeout:      cfg.FootballAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballAPICircuitHalfOpenMax,
		},
	})

	reconciler := usecase.NewReconcileService(
		repos.countries,
		repos.leagues,
		repos.clubs,
		repos.stats,
		repos.transfers,
		provider,
		logger,
	)
	resolver := usecase.NewClubResolver(reconciler, provider, logger)

	sched, err := scheduler.New(cfg.PopulationRunAt, logger)
	if err != nil {
		return nil, fmt.Errorf("build scheduler: %w", err)
	}

	population := usecase.NewPopulationService(
		provider,
		reconciler,
		resolver,
		repos.players,
		repos.clubs,
		repos.injuries,
		repos.sidelined,
		repos.trophies,
		budget,
		sched,
		usecase.PopulationConfig{
			LeagueExternalIDs: cfg.PopulationLeagueIDs,
			CurrentSeason:     cfg.PopulationSeason,
			PageDelay:         cfg.PopulationPageDelay,
		},
		logger,
	)
	sched.SetRunner(population)

	handler := httpapi.NewHandler(sched, logger)
	router := httpapi.NewRouter(handler, logger, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Application{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Scheduler: sched,
		Server:    server,
	}, nil
}

// Start launches the daily population loop. The HTTP server is started
// by the caller so it owns listen errors.
func (a *Application) Start(ctx context.Context) {
	a.Scheduler.Start(ctx)
}

// Shutdown stops the HTTP server, waits for any in-flight population
// run and closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	if err := a.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	a.Scheduler.Stop()

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	return nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
