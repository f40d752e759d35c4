package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/domain/team"
	"github.com/riskibarqy/championship-simulator/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type ChampionshipConfig struct {
	MaxGoals   int
	Seed       uint64
	StartRound int
}

// StandingsView is the table after the latest operation together with the
// movement of every team relative to the table before it.
type StandingsView struct {
	Round     int
	Standings standing.Snapshot
	Changes   standing.PositionChanges
}

// RoundOutcome reports a round level operation.
type RoundOutcome struct {
	StandingsView
	Matches  []fixture.Match
	Affected int
}

type UpdateScoreInput struct {
	MatchID string
	Field   string
	Value   string
}

type ScoreUpdate struct {
	StandingsView
	Match fixture.Match
}

// ChampionshipService serializes access to a single MatchLedger and loads
// the season it starts from.
type ChampionshipService struct {
	standingRepo standing.Repository
	fixtureRepo  fixture.Repository
	teamRepo     team.Repository
	cfg          ChampionshipConfig
	logger       *logging.Logger

	mu        sync.Mutex
	ledger    *MatchLedger
	directory team.Directory
	loadedAt  time.Time
}

func NewChampionshipService(
	standingRepo standing.Repository,
	fixtureRepo fixture.Repository,
	teamRepo team.Repository,
	cfg ChampionshipConfig,
	logger *logging.Logger,
) *ChampionshipService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.MaxGoals <= 0 {
		cfg.MaxGoals = fixture.DefaultMaxGoals
	}

	return &ChampionshipService{
		standingRepo: standingRepo,
		fixtureRepo:  fixtureRepo,
		teamRepo:     teamRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

type seasonData struct {
	initial []standing.TeamStats
	teams   []team.Team
	rounds  []fixture.Round
}

// Load reads the season from the repositories and replaces any state held
// so far.
func (s *ChampionshipService) Load(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Load")
	defer span.End()

	if s.standingRepo == nil || s.fixtureRepo == nil || s.teamRepo == nil {
		return fmt.Errorf("%w: championship repositories are not configured", ErrDependencyUnavailable)
	}
	if s.cfg.MaxGoals < MaxSampledGoals {
		return fmt.Errorf("%w: max goals %d is below the simulated maximum %d", ErrInvalidInput, s.cfg.MaxGoals, MaxSampledGoals)
	}

	data, err := s.fetchSeason(ctx)
	if err != nil {
		return failSpan(span, err)
	}

	directory := team.NewDirectory(data.teams)
	for ri := range data.rounds {
		for mi := range data.rounds[ri].Matches {
			match := &data.rounds[ri].Matches[mi]
			match.Home = enrichTeamRef(match.Home, directory)
			match.Away = enrichTeamRef(match.Away, directory)
		}
	}

	ledger, err := NewMatchLedger(data.initial, data.rounds, directory, NewWeightedSampler(s.cfg.Seed))
	if err != nil {
		return failSpan(span, fmt.Errorf("build match ledger: %w", err))
	}
	if s.cfg.StartRound > 0 {
		if err := ledger.SelectRound(s.cfg.StartRound); err != nil {
			return failSpan(span, fmt.Errorf("select start round: %w", err))
		}
	}

	s.mu.Lock()
	s.ledger = ledger
	s.directory = directory
	s.loadedAt = time.Now().UTC()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "championship loaded",
		"teams", len(data.initial),
		"rounds", len(data.rounds),
		"current_round", ledger.CurrentRound().Number,
	)
	return nil
}

func (s *ChampionshipService) fetchSeason(ctx context.Context) (seasonData, error) {
	var data seasonData

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		items, err := s.standingRepo.ListInitial(ctx)
		if err != nil {
			return fmt.Errorf("list initial standings: %w", err)
		}
		data.initial = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		data.teams = items
		return nil
	})
	p.Go(func(ctx context.Context) error {
		rounds, err := s.loadRounds(ctx)
		if err != nil {
			return err
		}
		data.rounds = rounds
		return nil
	})
	if err := p.Wait(); err != nil {
		return seasonData{}, err
	}

	return data, nil
}

func (s *ChampionshipService) loadRounds(ctx context.Context) ([]fixture.Round, error) {
	numbers, err := s.fixtureRepo.ListRounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}

	rounds := make([]fixture.Round, 0, len(numbers))
	for _, number := range numbers {
		matches, err := s.fixtureRepo.ListByRound(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("list matches round=%d: %w", number, err)
		}
		date, _, err := s.fixtureRepo.RoundDate(ctx, number)
		if err != nil {
			return nil, fmt.Errorf("get round date round=%d: %w", number, err)
		}
		rounds = append(rounds, fixture.Round{Number: number, Date: date, Matches: matches})
	}

	return rounds, nil
}

func enrichTeamRef(ref fixture.TeamRef, directory team.Directory) fixture.TeamRef {
	item, ok := directory[ref.ID]
	if !ok {
		return ref
	}
	if strings.TrimSpace(ref.Name) == "" {
		ref.Name = item.Name
	}
	if strings.TrimSpace(ref.Short) == "" {
		ref.Short = item.Short
	}
	if strings.TrimSpace(ref.CrestURL) == "" {
		ref.CrestURL = item.CrestURL
	}
	return ref
}

// withLedger runs fn while holding the service lock.
func (s *ChampionshipService) withLedger(fn func(ledger *MatchLedger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ledger == nil {
		return fmt.Errorf("%w: championship is not loaded", ErrDependencyUnavailable)
	}
	return fn(s.ledger)
}

func viewOf(ledger *MatchLedger) StandingsView {
	return StandingsView{
		Round:     ledger.CurrentRound().Number,
		Standings: ledger.Standings(),
		Changes:   ledger.PositionChanges(),
	}
}

func (s *ChampionshipService) Standings(ctx context.Context) (StandingsView, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Standings")
	defer span.End()

	var out StandingsView
	err := s.withLedger(func(ledger *MatchLedger) error {
		out = viewOf(ledger)
		return nil
	})
	return out, err
}

func (s *ChampionshipService) Rounds(ctx context.Context) ([]int, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Rounds")
	defer span.End()

	var out []int
	err := s.withLedger(func(ledger *MatchLedger) error {
		out = ledger.Rounds()
		return nil
	})
	return out, err
}

func (s *ChampionshipService) CurrentRound(ctx context.Context) (fixture.Round, error) {
	_, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.CurrentRound")
	defer span.End()

	var out fixture.Round
	err := s.withLedger(func(ledger *MatchLedger) error {
		out = ledger.CurrentRound()
		return nil
	})
	return out, err
}

func (s *ChampionshipService) SelectRound(ctx context.Context, number int) (fixture.Round, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.SelectRound",
		attribute.Int("championship.round", number),
	)
	defer span.End()

	if number <= 0 {
		return fixture.Round{}, fmt.Errorf("%w: round must be > 0", ErrInvalidInput)
	}

	var out fixture.Round
	err := s.withLedger(func(ledger *MatchLedger) error {
		if err := ledger.SelectRound(number); err != nil {
			return err
		}
		out = ledger.CurrentRound()
		return nil
	})
	if err != nil {
		return fixture.Round{}, err
	}

	s.logger.DebugContext(ctx, "round selected", "round", number)
	return out, nil
}

func (s *ChampionshipService) SimulateRound(ctx context.Context) (RoundOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.SimulateRound")
	defer span.End()

	var out RoundOutcome
	err := s.withLedger(func(ledger *MatchLedger) error {
		out.Affected = ledger.SimulateRound()
		out.StandingsView = viewOf(ledger)
		out.Matches = ledger.CurrentRound().Matches
		return nil
	})
	if err != nil {
		return RoundOutcome{}, err
	}

	s.logger.InfoContext(ctx, "round simulated", "round", out.Round, "simulated_matches", out.Affected)
	return out, nil
}

func (s *ChampionshipService) ClearRound(ctx context.Context) (RoundOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.ClearRound")
	defer span.End()

	var out RoundOutcome
	err := s.withLedger(func(ledger *MatchLedger) error {
		out.Affected = ledger.ClearRound()
		out.StandingsView = viewOf(ledger)
		out.Matches = ledger.CurrentRound().Matches
		return nil
	})
	if err != nil {
		return RoundOutcome{}, err
	}

	s.logger.InfoContext(ctx, "round cleared", "round", out.Round, "cleared_matches", out.Affected)
	return out, nil
}

func (s *ChampionshipService) UpdateMatchScore(ctx context.Context, input UpdateScoreInput) (ScoreUpdate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.UpdateMatchScore",
		attribute.String("championship.match_id", input.MatchID),
		attribute.String("championship.score_field", input.Field),
	)
	defer span.End()

	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		return ScoreUpdate{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	field, err := fixture.ParseScoreField(input.Field)
	if err != nil {
		return ScoreUpdate{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	value, err := fixture.ParseScore(input.Value, s.cfg.MaxGoals)
	if err != nil {
		return ScoreUpdate{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var out ScoreUpdate
	err = s.withLedger(func(ledger *MatchLedger) error {
		match, err := ledger.UpdateMatchScore(matchID, field, value)
		if err != nil {
			return err
		}
		out.Match = match
		out.StandingsView = viewOf(ledger)
		return nil
	})
	if err != nil {
		return ScoreUpdate{}, err
	}

	s.logger.DebugContext(ctx, "match score updated",
		"match_id", matchID,
		"field", string(field),
		"value", value.String(),
		"complete", out.Match.IsComplete(),
	)
	return out, nil
}

func (s *ChampionshipService) Reset(ctx context.Context) (StandingsView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChampionshipService.Reset")
	defer span.End()

	var out StandingsView
	err := s.withLedger(func(ledger *MatchLedger) error {
		ledger.Reset()
		out = viewOf(ledger)
		return nil
	})
	if err != nil {
		return StandingsView{}, err
	}

	s.logger.InfoContext(ctx, "championship reset")
	return out, nil
}

// SimulateSeason plays every round from the current one to the last,
// calling fn with the outcome of each round.
func (s *ChampionshipService) SimulateSeason(ctx context.Context, fn func(RoundOutcome) error) error {
	rounds, err := s.Rounds(ctx)
	if err != nil {
		return err
	}
	current, err := s.CurrentRound(ctx)
	if err != nil {
		return err
	}

	sort.Ints(rounds)
	for _, number := range rounds {
		if number < current.Number {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.SelectRound(ctx, number); err != nil {
			return err
		}
		outcome, err := s.SimulateRound(ctx)
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(outcome); err != nil {
				return err
			}
		}
	}

	return nil
}

// snapshot returns an independent copy of the ledger for read-only
// projections together with the name directory.
func (s *ChampionshipService) snapshot() (*MatchLedger, team.Directory, error) {
	var (
		clone     *MatchLedger
		directory team.Directory
	)
	err := s.withLedger(func(ledger *MatchLedger) error {
		clone = ledger.Clone(nil)
		directory = s.directory
		return nil
	})
	return clone, directory, err
}

func (s *ChampionshipService) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}
