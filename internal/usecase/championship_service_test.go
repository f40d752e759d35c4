package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/domain/team"
	fixturemock "github.com/riskibarqy/championship-simulator/internal/mocks/domain/fixture"
	standingmock "github.com/riskibarqy/championship-simulator/internal/mocks/domain/standing"
	teammock "github.com/riskibarqy/championship-simulator/internal/mocks/domain/team"
	"github.com/riskibarqy/championship-simulator/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

var roundOneDate = time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)

func newLoadedChampionship(t *testing.T, cfg ChampionshipConfig) *ChampionshipService {
	t.Helper()

	standingRepo := standingmock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	standingRepo.On("ListInitial", mock.Anything).Return(ledgerTeams(), nil).Once()
	teamRepo.On("List", mock.Anything).Return([]team.Team{
		{ID: "a", Name: "Atlético Mineiro", Short: "CAM"},
		{ID: "b", Name: "Bahia", Short: "BAH"},
		{ID: "c", Name: "Corinthians", Short: "COR"},
		{ID: "d", Name: "Flamengo", Short: "FLA", CrestURL: "https://example.org/fla.png"},
	}, nil).Once()

	rounds := ledgerRounds()
	fixtureRepo.On("ListRounds", mock.Anything).Return([]int{1, 2}, nil).Once()
	fixtureRepo.On("ListByRound", mock.Anything, 1).Return(rounds[1].Matches, nil).Once()
	fixtureRepo.On("ListByRound", mock.Anything, 2).Return(rounds[0].Matches, nil).Once()
	fixtureRepo.On("RoundDate", mock.Anything, 1).Return(roundOneDate, true, nil).Once()
	fixtureRepo.On("RoundDate", mock.Anything, 2).Return(time.Time{}, false, nil).Once()

	service := NewChampionshipService(standingRepo, fixtureRepo, teamRepo, cfg, logging.NewNop())
	if err := service.Load(context.Background()); err != nil {
		t.Fatalf("load championship: %v", err)
	}
	return service
}

func TestChampionshipService_Load(t *testing.T) {
	t.Parallel()

	service := newLoadedChampionship(t, ChampionshipConfig{Seed: 1, StartRound: 2})
	ctx := context.Background()

	current, err := service.CurrentRound(ctx)
	if err != nil {
		t.Fatalf("current round: %v", err)
	}
	if current.Number != 2 {
		t.Fatalf("expected start round 2, got %d", current.Number)
	}

	first, err := service.SelectRound(ctx, 1)
	if err != nil {
		t.Fatalf("select round: %v", err)
	}
	if !first.Date.Equal(roundOneDate) {
		t.Fatalf("unexpected round date: %v", first.Date)
	}
	if first.Matches[1].Away.Name != "Flamengo" || first.Matches[1].Away.CrestURL == "" {
		t.Fatalf("team metadata not attached: %+v", first.Matches[1].Away)
	}

	view, err := service.Standings(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if len(view.Standings) != 4 || view.Standings[0].ID != "a" {
		t.Fatalf("unexpected initial standings: %+v", view.Standings)
	}
	if service.LoadedAt().IsZero() {
		t.Fatalf("expected load time to be recorded")
	}
}

func TestChampionshipService_Load_RepositoryError(t *testing.T) {
	t.Parallel()

	standingRepo := standingmock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	boom := errors.New("disk on fire")
	standingRepo.On("ListInitial", mock.Anything).Return(nil, boom).Maybe()
	teamRepo.On("List", mock.Anything).Return([]team.Team{}, nil).Maybe()
	fixtureRepo.On("ListRounds", mock.Anything).Return([]int{}, nil).Maybe()

	service := NewChampionshipService(standingRepo, fixtureRepo, teamRepo, ChampionshipConfig{}, logging.NewNop())
	if err := service.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if _, err := service.Standings(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable before a successful load, got %v", err)
	}
}

func TestChampionshipService_UpdateMatchScore(t *testing.T) {
	t.Parallel()

	service := newLoadedChampionship(t, ChampionshipConfig{Seed: 1})
	ctx := context.Background()

	if _, err := service.UpdateMatchScore(ctx, UpdateScoreInput{MatchID: "m1", Field: "homeScore", Value: "2"}); err != nil {
		t.Fatalf("update home score: %v", err)
	}
	update, err := service.UpdateMatchScore(ctx, UpdateScoreInput{MatchID: "m1", Field: "away_score", Value: " 1 "})
	if err != nil {
		t.Fatalf("update away score: %v", err)
	}
	if !update.Match.IsComplete() {
		t.Fatalf("expected complete match: %+v", update.Match)
	}
	leader, _ := update.Standings.Leader()
	if leader.ID != "a" || leader.Points != 3 {
		t.Fatalf("unexpected leader: %+v", leader)
	}
	if !update.Changes["a"].Affected || !update.Changes["b"].Affected {
		t.Fatalf("both teams of m1 should be affected: %+v", update.Changes)
	}

	cleared, err := service.UpdateMatchScore(ctx, UpdateScoreInput{MatchID: "m1", Field: "away", Value: "  "})
	if err != nil {
		t.Fatalf("clear away score: %v", err)
	}
	if cleared.Match.AwayScore.IsSet() {
		t.Fatalf("blank input must unset the score")
	}
	if row, _ := cleared.Standings.Find("a"); row.Games != 0 {
		t.Fatalf("incomplete match must not count: %+v", row)
	}
}

func TestChampionshipService_UpdateMatchScore_Errors(t *testing.T) {
	t.Parallel()

	service := newLoadedChampionship(t, ChampionshipConfig{Seed: 1, MaxGoals: 9})
	ctx := context.Background()

	tests := []struct {
		name    string
		input   UpdateScoreInput
		wantErr error
	}{
		{name: "missing match id", input: UpdateScoreInput{Field: "home", Value: "1"}, wantErr: ErrInvalidInput},
		{name: "unknown field", input: UpdateScoreInput{MatchID: "m1", Field: "extra", Value: "1"}, wantErr: fixture.ErrUnknownScoreField},
		{name: "above configured bound", input: UpdateScoreInput{MatchID: "m1", Field: "home", Value: "10"}, wantErr: fixture.ErrInvalidScore},
		{name: "not a number", input: UpdateScoreInput{MatchID: "m1", Field: "home", Value: "x"}, wantErr: fixture.ErrInvalidScore},
		{name: "unknown match", input: UpdateScoreInput{MatchID: "m9", Field: "home", Value: "1"}, wantErr: ErrNotFound},
	}

	for _, tc := range tests {
		if _, err := service.UpdateMatchScore(ctx, tc.input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}

	view, err := service.Standings(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	for _, row := range view.Standings {
		if row.Games != 0 {
			t.Fatalf("rejected input changed the table: %+v", row)
		}
	}
}

func TestChampionshipService_SimulateClearReset(t *testing.T) {
	t.Parallel()

	service := newLoadedChampionship(t, ChampionshipConfig{Seed: 42})
	ctx := context.Background()

	simulated, err := service.SimulateRound(ctx)
	if err != nil {
		t.Fatalf("simulate round: %v", err)
	}
	if simulated.Affected != 2 || simulated.Round != 1 {
		t.Fatalf("unexpected simulate outcome: %+v", simulated)
	}
	for _, match := range simulated.Matches {
		if !match.IsComplete() || !match.Simulated {
			t.Fatalf("match not simulated: %+v", match)
		}
	}

	cleared, err := service.ClearRound(ctx)
	if err != nil {
		t.Fatalf("clear round: %v", err)
	}
	if cleared.Affected != 2 {
		t.Fatalf("expected 2 cleared matches, got %d", cleared.Affected)
	}

	if _, err := service.SimulateRound(ctx); err != nil {
		t.Fatalf("simulate round again: %v", err)
	}
	reset, err := service.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	for _, row := range reset.Standings {
		if row.Games != 0 || row.Points != 0 {
			t.Fatalf("reset did not restore the initial table: %+v", row)
		}
	}
}

func TestChampionshipService_SimulateSeason(t *testing.T) {
	t.Parallel()

	service := newLoadedChampionship(t, ChampionshipConfig{Seed: 7})
	ctx := context.Background()

	var played []int
	err := service.SimulateSeason(ctx, func(outcome RoundOutcome) error {
		played = append(played, outcome.Round)
		return nil
	})
	if err != nil {
		t.Fatalf("simulate season: %v", err)
	}
	if len(played) != 2 || played[0] != 1 || played[1] != 2 {
		t.Fatalf("unexpected rounds played: %v", played)
	}

	view, err := service.Standings(ctx)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	games := 0
	for _, row := range view.Standings {
		games += row.Games
		if row.Points != 3*row.Victories+row.Draws {
			t.Fatalf("points invariant broken: %+v", row)
		}
	}
	if games != 8 {
		t.Fatalf("expected 4 matches worth of games, got %d", games)
	}
}

func TestChampionshipService_SelectRound_Errors(t *testing.T) {
	t.Parallel()

	service := newLoadedChampionship(t, ChampionshipConfig{Seed: 1})
	ctx := context.Background()

	if _, err := service.SelectRound(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.SelectRound(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChampionshipService_NamesFromDirectoryDriveTieBreak(t *testing.T) {
	t.Parallel()

	standingRepo := standingmock.NewRepository(t)
	fixtureRepo := fixturemock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)

	standingRepo.On("ListInitial", mock.Anything).Return([]standing.TeamStats{
		{ID: "x", Name: "Zzz"},
		{ID: "y", Name: "Aaa"},
	}, nil).Once()
	teamRepo.On("List", mock.Anything).Return([]team.Team{{ID: "x", Name: "Botafogo"}, {ID: "y", Name: "Santos"}}, nil).Once()
	fixtureRepo.On("ListRounds", mock.Anything).Return([]int{1}, nil).Once()
	fixtureRepo.On("ListByRound", mock.Anything, 1).Return([]fixture.Match{
		{ID: "m1", Home: fixture.TeamRef{ID: "x"}, Away: fixture.TeamRef{ID: "y"}},
	}, nil).Once()
	fixtureRepo.On("RoundDate", mock.Anything, 1).Return(time.Time{}, false, nil).Once()

	service := NewChampionshipService(standingRepo, fixtureRepo, teamRepo, ChampionshipConfig{Seed: 1}, nil)
	if err := service.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	view, err := service.Standings(context.Background())
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if view.Standings[0].ID != "x" {
		t.Fatalf("expected canonical name Botafogo to rank first, got %+v", view.Standings)
	}
	if view.Standings[0].Name != "Botafogo" || view.Standings[1].Name != "Santos" {
		t.Fatalf("standings should show directory names: %+v", view.Standings)
	}
}

func TestChampionshipService_Load_RejectsGoalLimitBelowSampler(t *testing.T) {
	t.Parallel()

	service := NewChampionshipService(
		standingmock.NewRepository(t),
		fixturemock.NewRepository(t),
		teammock.NewRepository(t),
		ChampionshipConfig{MaxGoals: MaxSampledGoals - 1},
		logging.NewNop(),
	)
	if err := service.Load(context.Background()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChampionshipService_SimulatedScoresStayWithinGoalLimit(t *testing.T) {
	t.Parallel()

	service := newLoadedChampionship(t, ChampionshipConfig{Seed: 1, MaxGoals: MaxSampledGoals})
	ctx := context.Background()

	if err := service.withLedger(func(ledger *MatchLedger) error {
		ledger.sampler = SamplerFunc(func() int { return pickGoals(goalThresholds, 0.999) })
		return nil
	}); err != nil {
		t.Fatalf("swap sampler: %v", err)
	}

	outcome, err := service.SimulateRound(ctx)
	if err != nil {
		t.Fatalf("simulate round: %v", err)
	}
	for _, match := range outcome.Matches {
		for _, score := range []fixture.Score{match.HomeScore, match.AwayScore} {
			if _, err := fixture.ParseScore(score.String(), MaxSampledGoals); err != nil {
				t.Fatalf("simulated score %s of %s cannot be entered back: %v", score, match.ID, err)
			}
		}
	}
}
