package httpapi

import (
	"context"

	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/domain/team"
	"github.com/riskibarqy/championship-simulator/internal/usecase"
)

const roundDateLayout = "2006-01-02"

type selectRoundRequest struct {
	Round int `json:"round" validate:"required,min=1"`
}

// updateScoreRequest carries the raw score text. A blank value clears the
// field.
type updateScoreRequest struct {
	Field string `json:"field" validate:"required,max=16"`
	Value string `json:"value" validate:"max=8"`
}

type movementDTO struct {
	Direction        string `json:"direction"`
	PositionsChanged int    `json:"positions_changed"`
	Affected         bool   `json:"affected"`
}

type standingDTO struct {
	Position     int          `json:"position"`
	TeamID       string       `json:"team_id"`
	TeamName     string       `json:"team_name"`
	Games        int          `json:"games"`
	Victories    int          `json:"victories"`
	Draws        int          `json:"draws"`
	Defeats      int          `json:"defeats"`
	GoalsFor     int          `json:"goal_pro"`
	GoalsAgainst int          `json:"goal_against"`
	GoalBalance  int          `json:"goal_balance"`
	Points       int          `json:"points"`
	Movement     *movementDTO `json:"movement,omitempty"`
}

type standingsDTO struct {
	Round int           `json:"round"`
	Teams []standingDTO `json:"teams"`
}

type teamRefDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Short    string `json:"short,omitempty"`
	CrestURL string `json:"crest_url,omitempty"`
}

type matchDTO struct {
	ID        string     `json:"id"`
	Round     int        `json:"round"`
	Home      teamRefDTO `json:"home"`
	Away      teamRefDTO `json:"away"`
	HomeScore *int       `json:"home_score"`
	AwayScore *int       `json:"away_score"`
	Complete  bool       `json:"complete"`
	Simulated bool       `json:"simulated"`
}

type roundDTO struct {
	Number  int        `json:"number"`
	Date    string     `json:"date,omitempty"`
	Matches []matchDTO `json:"matches"`
}

type roundOutcomeDTO struct {
	Round     roundDTO     `json:"round"`
	Affected  int          `json:"affected"`
	Standings standingsDTO `json:"standings"`
}

type scoreUpdateDTO struct {
	Match     matchDTO     `json:"match"`
	Standings standingsDTO `json:"standings"`
}

type teamDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Short    string `json:"short,omitempty"`
	CrestURL string `json:"crest_url,omitempty"`
}

type teamDetailsDTO struct {
	Team     teamDTO     `json:"team"`
	Standing standingDTO `json:"standing"`
	Matches  []matchDTO  `json:"matches"`
}

type cacheStatsDTO struct {
	Entries  int   `json:"entries"`
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	InFlight int   `json:"in_flight"`
}

type healthDTO struct {
	Status   string                   `json:"status"`
	Loaded   bool                     `json:"loaded"`
	LoadedAt string                   `json:"loaded_at,omitempty"`
	Caches   map[string]cacheStatsDTO `json:"caches,omitempty"`
}

func standingToDTO(item standing.TeamStats, change standing.PositionChange, hasChange bool) standingDTO {
	out := standingDTO{
		Position:     item.Position,
		TeamID:       item.ID,
		TeamName:     item.Name,
		Games:        item.Games,
		Victories:    item.Victories,
		Draws:        item.Draws,
		Defeats:      item.Defeats,
		GoalsFor:     item.GoalsFor,
		GoalsAgainst: item.GoalsAgainst,
		GoalBalance:  item.GoalBalance,
		Points:       item.Points,
	}
	if hasChange {
		out.Movement = &movementDTO{
			Direction:        string(change.Direction),
			PositionsChanged: change.PositionsChanged,
			Affected:         change.Affected,
		}
	}
	return out
}

func standingsToDTO(ctx context.Context, view usecase.StandingsView) standingsDTO {
	_, span := startSpan(ctx, "httpapi.standingsToDTO")
	defer span.End()

	teams := make([]standingDTO, 0, len(view.Standings))
	for _, item := range view.Standings {
		change, ok := view.Changes[item.ID]
		teams = append(teams, standingToDTO(item, change, ok))
	}
	return standingsDTO{Round: view.Round, Teams: teams}
}

func teamRefToDTO(ref fixture.TeamRef) teamRefDTO {
	return teamRefDTO{
		ID:       ref.ID,
		Name:     ref.Name,
		Short:    ref.Short,
		CrestURL: ref.CrestURL,
	}
}

func matchToDTO(match fixture.Match) matchDTO {
	return matchDTO{
		ID:        match.ID,
		Round:     match.Round,
		Home:      teamRefToDTO(match.Home),
		Away:      teamRefToDTO(match.Away),
		HomeScore: match.HomeScore.Ptr(),
		AwayScore: match.AwayScore.Ptr(),
		Complete:  match.IsComplete(),
		Simulated: match.Simulated,
	}
}

func matchesToDTO(matches []fixture.Match) []matchDTO {
	out := make([]matchDTO, 0, len(matches))
	for _, match := range matches {
		out = append(out, matchToDTO(match))
	}
	return out
}

func roundToDTO(round fixture.Round) roundDTO {
	out := roundDTO{
		Number:  round.Number,
		Matches: matchesToDTO(round.Matches),
	}
	if !round.Date.IsZero() {
		out.Date = round.Date.Format(roundDateLayout)
	}
	return out
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{
		ID:       item.ID,
		Name:     item.Name,
		Short:    item.Short,
		CrestURL: item.CrestURL,
	}
}
