package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/domain/team"
	"github.com/riskibarqy/championship-simulator/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/championship-simulator/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"gopkg.in/yaml.v3"
)

// Store holds a season read from a teams file and a fixtures file. Both
// files may be JSON or YAML, chosen by extension.
type Store struct {
	teams     *memory.TeamRepository
	standings *memory.StandingRepository
	fixtures  *memory.FixtureRepository
}

// Open reads both files concurrently and validates them against each other.
// Matches naming a team missing from the teams file are kept and logged; the
// standings skip such teams when results are applied.
func Open(ctx context.Context, teamsPath, fixturesPath string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		teamsDoc    teamsDocument
		fixturesDoc fixturesDocument
	)

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		return decodeFile(ctx, teamsPath, &teamsDoc)
	})
	p.Go(func(ctx context.Context) error {
		return decodeFile(ctx, fixturesPath, &fixturesDoc)
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return build(ctx, teamsDoc, fixturesDoc, logger)
}

func build(ctx context.Context, teamsDoc teamsDocument, fixturesDoc fixturesDocument, logger *logging.Logger) (*Store, error) {
	if len(teamsDoc.Teams) == 0 {
		return nil, crerr.New("teams file has no teams")
	}

	known := make(map[string]struct{}, len(teamsDoc.Teams))
	teams := make([]team.Team, 0, len(teamsDoc.Teams))
	stats := make([]standing.TeamStats, 0, len(teamsDoc.Teams))
	for idx, record := range teamsDoc.Teams {
		item := record.toTeam()
		if err := item.Validate(); err != nil {
			return nil, crerr.Wrapf(err, "teams[%d]", idx)
		}
		if _, dup := known[item.ID]; dup {
			return nil, crerr.Newf("teams[%d]: duplicate team id %q", idx, item.ID)
		}
		row := record.toStats()
		if err := row.Validate(); err != nil {
			return nil, crerr.Wrapf(err, "teams[%d]", idx)
		}
		known[item.ID] = struct{}{}
		teams = append(teams, item)
		stats = append(stats, row)
	}

	rounds := make([]fixture.Round, 0, len(fixturesDoc.Rounds))
	for idx, record := range fixturesDoc.Rounds {
		if record.Round <= 0 {
			return nil, crerr.Newf("rounds[%d]: round number must be > 0", idx)
		}
		round, err := record.toRound()
		if err != nil {
			return nil, crerr.Wrapf(err, "rounds[%d]", idx)
		}
		for _, match := range round.Matches {
			for _, id := range match.TeamIDs() {
				if _, ok := known[id]; !ok {
					logger.WarnContext(ctx, "fixture references unknown team",
						"round", round.Number,
						"match_id", match.ID,
						"team_id", id,
					)
				}
			}
		}
		rounds = append(rounds, round)
	}
	if len(rounds) == 0 {
		return nil, crerr.New("fixtures file has no rounds")
	}

	return &Store{
		teams:     memory.NewTeamRepository(teams),
		standings: memory.NewStandingRepository(stats),
		fixtures:  memory.NewFixtureRepository(rounds),
	}, nil
}

func decodeFile(ctx context.Context, path string, target any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return crerr.New("data file path is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return crerr.Wrapf(err, "read data file %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := sonic.Unmarshal(raw, target); err != nil {
			return crerr.Wrapf(err, "decode json %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, target); err != nil {
			return crerr.Wrapf(err, "decode yaml %s", path)
		}
	default:
		return crerr.Newf("data file %s: unsupported extension %q", path, ext)
	}

	return nil
}

func (s *Store) Teams() team.Repository {
	return s.teams
}

func (s *Store) Standings() standing.Repository {
	return s.standings
}

func (s *Store) Fixtures() fixture.Repository {
	return s.fixtures
}
