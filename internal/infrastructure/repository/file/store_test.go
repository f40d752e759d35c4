package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/championship-simulator/internal/platform/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOpen_JSONTeamsAndYAMLFixtures(t *testing.T) {
	t.Parallel()

	store, err := Open(context.Background(), "testdata/teams.json", "testdata/fixtures.yaml", logging.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()

	stats, err := store.Standings().ListInitial(ctx)
	if err != nil {
		t.Fatalf("list initial: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(stats))
	}
	fla := stats[0]
	if fla.Games != 4 || fla.Defeats != 0 || fla.Points != 10 || fla.GoalBalance != 0 {
		t.Fatalf("unexpected defaults for flamengo: %+v", fla)
	}
	if bah := stats[2]; bah.Points != 0 || bah.Games != 4 || bah.GoalBalance != -5 {
		t.Fatalf("unexpected derived values for bahia: %+v", bah)
	}

	rounds, err := store.Fixtures().ListRounds(ctx)
	if err != nil || len(rounds) != 2 {
		t.Fatalf("list rounds: %v %v", rounds, err)
	}
	matches, err := store.Fixtures().ListByRound(ctx, 1)
	if err != nil || len(matches) != 1 {
		t.Fatalf("list round 1: %v %v", matches, err)
	}
	if matches[0].Away.Name != "Santos FC" || matches[0].Round != 1 {
		t.Fatalf("unexpected match: %+v", matches[0])
	}

	date, ok, err := store.Fixtures().RoundDate(ctx, 2)
	if err != nil || !ok {
		t.Fatalf("round date: %v %v", ok, err)
	}
	if !date.Equal(time.Date(2025, 4, 19, 16, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", date)
	}

	item, ok, err := store.Teams().GetByID(ctx, "bah")
	if err != nil || !ok || item.Short != "BAH" {
		t.Fatalf("get team: %+v %v %v", item, ok, err)
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	badExt := filepath.Join(dir, "teams.txt")
	if err := os.WriteFile(badExt, []byte("teams: []"), 0o600); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}
	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{\"teams\": ["), 0o600); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}

	tests := []struct {
		name     string
		teams    string
		fixtures string
		want     string
	}{
		{name: "missing file", teams: filepath.Join(dir, "nope.json"), fixtures: "testdata/fixtures.yaml", want: "read data file"},
		{name: "unsupported extension", teams: badExt, fixtures: "testdata/fixtures.yaml", want: "unsupported extension"},
		{name: "malformed json", teams: broken, fixtures: "testdata/fixtures.yaml", want: "decode json"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Open(context.Background(), tc.teams, tc.fixtures, logging.NewNop())
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}

func TestOpen_UnknownFixtureTeamIsKeptAndLogged(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.WarnLevel)
	store, err := Open(context.Background(), "testdata/teams.json", "testdata/fixtures_unknown_team.json", logging.FromZap(zap.New(core)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	matches, err := store.Fixtures().ListByRound(context.Background(), 1)
	if err != nil || len(matches) != 1 || matches[0].Away.ID != "xxx" {
		t.Fatalf("expected the match to be kept: %+v %v", matches, err)
	}

	entries := logs.FilterMessage("fixture references unknown team").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["team_id"]; got != "xxx" {
		t.Fatalf("unexpected team_id field: %v", got)
	}
}
