package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const maxOddsRuns = 100000

type OddsConfig struct {
	Runs    int
	Workers int
	Seed    uint64
}

// TitleOdds is one team's share of simulated championships.
type TitleOdds struct {
	TeamID          string  `json:"team_id"`
	TeamName        string  `json:"team_name"`
	Titles          int     `json:"titles"`
	Probability     float64 `json:"probability"`
	AveragePosition float64 `json:"average_position"`
}

type OddsProjection struct {
	Runs             int         `json:"runs"`
	RemainingMatches int         `json:"remaining_matches"`
	WorkerCount      int         `json:"worker_count"`
	DurationMs       int64       `json:"duration_ms"`
	Teams            []TitleOdds `json:"teams"`
}

// OddsService projects title chances by playing out the rest of the season
// many times from the current standings.
type OddsService struct {
	championship *ChampionshipService
	cfg          OddsConfig
	logger       *logging.Logger
}

func NewOddsService(championship *ChampionshipService, cfg OddsConfig, logger *logging.Logger) *OddsService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Runs <= 0 {
		cfg.Runs = 1000
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}

	return &OddsService{
		championship: championship,
		cfg:          cfg,
		logger:       logger,
	}
}

type oddsTally struct {
	titles        int
	positionTotal int
}

// Project runs the remaining fixtures runs times. A runs value of zero uses
// the configured default.
func (s *OddsService) Project(ctx context.Context, runs int) (OddsProjection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.Project",
		attribute.Int("odds.requested_runs", runs),
	)
	defer span.End()

	if runs == 0 {
		runs = s.cfg.Runs
	}
	if runs < 0 || runs > maxOddsRuns {
		return OddsProjection{}, fmt.Errorf("%w: runs must be between 1 and %d", ErrInvalidInput, maxOddsRuns)
	}
	if s.championship == nil {
		return OddsProjection{}, fmt.Errorf("%w: championship service is not configured", ErrDependencyUnavailable)
	}

	base, directory, err := s.championship.snapshot()
	if err != nil {
		return OddsProjection{}, failSpan(span, err)
	}

	remaining := base.RemainingMatches()
	if remaining == 0 {
		// nothing left to play, one run is the exact answer
		runs = 1
	}

	workerCount := normalizeOddsWorkerCount(s.cfg.Workers, runs)
	started := time.Now()

	tallies := make(map[string]*oddsTally, len(base.Standings()))
	for _, row := range base.Standings() {
		tallies[row.ID] = &oddsTally{}
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return OddsProjection{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for run := 0; run < runs; run++ {
		seed := s.cfg.Seed + uint64(run)
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()
			if ctx.Err() != nil {
				return
			}

			ledger := base.Clone(NewWeightedSampler(seed))
			ledger.SimulateRemaining()
			final := ledger.Standings()

			mu.Lock()
			defer mu.Unlock()
			for _, row := range final {
				tally, ok := tallies[row.ID]
				if !ok {
					continue
				}
				tally.positionTotal += row.Position
				if row.Position == 1 {
					tally.titles++
				}
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return OddsProjection{}, fmt.Errorf("submit run to worker pool: %w", err)
		}
	}
	workers.Wait()

	if err := ctx.Err(); err != nil {
		return OddsProjection{}, failSpan(span, err)
	}
	span.SetAttributes(
		attribute.Int("odds.runs", runs),
		attribute.Int("odds.remaining_matches", remaining),
	)

	out := OddsProjection{
		Runs:             runs,
		RemainingMatches: remaining,
		WorkerCount:      workerCount,
		DurationMs:       time.Since(started).Milliseconds(),
		Teams:            make([]TitleOdds, 0, len(tallies)),
	}
	for _, row := range base.Standings() {
		tally := tallies[row.ID]
		name := row.Name
		if resolved, ok := directory.ResolveName(row.ID); ok {
			name = resolved
		}
		out.Teams = append(out.Teams, TitleOdds{
			TeamID:          row.ID,
			TeamName:        name,
			Titles:          tally.titles,
			Probability:     float64(tally.titles) / float64(runs),
			AveragePosition: float64(tally.positionTotal) / float64(runs),
		})
	}

	col := standing.NewNameCollator()
	sort.SliceStable(out.Teams, func(i, j int) bool {
		if out.Teams[i].Titles != out.Teams[j].Titles {
			return out.Teams[i].Titles > out.Teams[j].Titles
		}
		if c := col.CompareString(out.Teams[i].TeamName, out.Teams[j].TeamName); c != 0 {
			return c < 0
		}
		return out.Teams[i].TeamID < out.Teams[j].TeamID
	})

	s.logger.InfoContext(ctx, "title odds projected",
		"runs", runs,
		"remaining_matches", remaining,
		"worker_count", workerCount,
		"duration_ms", out.DurationMs,
	)
	return out, nil
}

func normalizeOddsWorkerCount(workers, runs int) int {
	if workers <= 0 {
		workers = 1
	}
	if runs > 0 && workers > runs {
		workers = runs
	}
	return workers
}
