package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/domain/team"
	"go.opentelemetry.io/otel/attribute"
)

type TeamDetails struct {
	Team     team.Team
	Standing standing.TeamStats
	Change   standing.PositionChange
	Matches  []fixture.Match
}

// TeamService answers club lookups. Metadata comes from the team repository,
// live figures come from the loaded championship.
type TeamService struct {
	teamRepo     team.Repository
	championship *ChampionshipService
}

func NewTeamService(teamRepo team.Repository, championship *ChampionshipService) *TeamService {
	return &TeamService{
		teamRepo:     teamRepo,
		championship: championship,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	col := standing.NewNameCollator()
	sort.SliceStable(items, func(i, j int) bool {
		if c := col.CompareString(items[i].Name, items[j].Name); c != 0 {
			return c < 0
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *TeamService) GetDetails(ctx context.Context, teamID string) (TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetDetails",
		attribute.String("team.id", teamID),
	)
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamDetails{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return TeamDetails{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	out := TeamDetails{Team: item}
	err = s.championship.withLedger(func(ledger *MatchLedger) error {
		stats, ok := ledger.Standings().Find(teamID)
		if !ok {
			return fmt.Errorf("%w: team=%s has no standing", ErrNotFound, teamID)
		}
		out.Standing = stats
		out.Change = ledger.PositionChanges()[teamID]

		for _, number := range ledger.Rounds() {
			round, _ := ledger.Round(number)
			for _, match := range round.Matches {
				if match.Home.ID == teamID || match.Away.ID == teamID {
					out.Matches = append(out.Matches, match)
				}
			}
		}
		return nil
	})
	if err != nil {
		return TeamDetails{}, err
	}

	return out, nil
}
