package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/championship-simulator/internal/config"
	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/domain/team"
	cacherepo "github.com/riskibarqy/championship-simulator/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/championship-simulator/internal/infrastructure/repository/file"
	"github.com/riskibarqy/championship-simulator/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/championship-simulator/internal/interfaces/httpapi"
	"github.com/riskibarqy/championship-simulator/internal/platform/logging"
	"github.com/riskibarqy/championship-simulator/internal/usecase"
)

// Season bundles the repositories a championship is loaded from.
type Season struct {
	Standings standing.Repository
	Fixtures  fixture.Repository
	Teams     team.Repository
	Caches    map[string]httpapi.CacheReporter
	Source    string
}

// OpenSeason reads the configured data files, or falls back to the built-in
// seed when none are configured.
func OpenSeason(ctx context.Context, cfg config.Config, logger *logging.Logger) (Season, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var season Season
	if cfg.UsesDataFiles() {
		store, err := file.Open(ctx, cfg.DataTeamsPath, cfg.DataFixturesPath, logger)
		if err != nil {
			return Season{}, fmt.Errorf("open season files: %w", err)
		}
		season = Season{
			Standings: store.Standings(),
			Fixtures:  store.Fixtures(),
			Teams:     store.Teams(),
			Source:    "file",
		}
	} else {
		season = Season{
			Standings: memory.NewStandingRepository(memory.SeedStandings()),
			Fixtures:  memory.NewFixtureRepository(memory.SeedRounds()),
			Teams:     memory.NewTeamRepository(memory.SeedTeams()),
			Source:    "seed",
		}
	}

	if cfg.CacheEnabled {
		teams := cacherepo.NewTeamRepository(season.Teams, cfg.CacheTTL)
		fixtures := cacherepo.NewFixtureRepository(season.Fixtures, cfg.CacheTTL)
		season.Teams = teams
		season.Fixtures = fixtures
		season.Caches = map[string]httpapi.CacheReporter{
			"teams":    teams,
			"fixtures": fixtures,
		}
	}

	logger.InfoContext(ctx, "season source opened",
		"source", season.Source,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL.String(),
	)
	return season, nil
}

// ResolveSeed keeps a configured seed and derives one from the clock when it
// is zero.
func ResolveSeed(seed uint64, now func() time.Time) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(now().UnixNano())
}

// NewChampionship opens the season and loads it into a ready service.
func NewChampionship(ctx context.Context, cfg config.Config, logger *logging.Logger) (*usecase.ChampionshipService, Season, error) {
	season, err := OpenSeason(ctx, cfg, logger)
	if err != nil {
		return nil, Season{}, err
	}

	championship := usecase.NewChampionshipService(
		season.Standings,
		season.Fixtures,
		season.Teams,
		usecase.ChampionshipConfig{
			MaxGoals:   cfg.SimMaxGoals,
			Seed:       ResolveSeed(cfg.SimSeed, time.Now),
			StartRound: cfg.SimStartRound,
		},
		logger.Named("usecase"),
	)
	if err := championship.Load(ctx); err != nil {
		return nil, Season{}, fmt.Errorf("load championship: %w", err)
	}

	return championship, season, nil
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	championship, season, err := NewChampionship(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	oddsSvc := usecase.NewOddsService(championship, usecase.OddsConfig{
		Runs:    cfg.OddsRuns,
		Workers: cfg.OddsWorkers,
		Seed:    ResolveSeed(cfg.SimSeed, time.Now),
	}, logger.Named("usecase"))
	teamSvc := usecase.NewTeamService(season.Teams, championship)

	httpLogger := logger.Named("httpapi")
	handler := httpapi.NewHandler(championship, oddsSvc, teamSvc, season.Caches, httpLogger)
	router := httpapi.NewRouter(handler, httpLogger, httpapi.RouterConfig{
		SwaggerEnabled:      cfg.SwaggerEnabled,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		CaptureRequestBody:  cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody,
		RequestBodyMaxBytes: cfg.UptraceRequestBodyMaxBytes,
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
