package file

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/domain/team"
)

// teamsDocument is the layout of the teams file. Each record carries the
// team's metadata and the statistics the championship starts from.
type teamsDocument struct {
	Teams []teamRecord `json:"teams" yaml:"teams"`
}

type teamRecord struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Short       string `json:"short" yaml:"short"`
	CrestURL    string `json:"crest_url" yaml:"crest_url"`
	Games       *int   `json:"games" yaml:"games"`
	Victories   int    `json:"victories" yaml:"victories"`
	Draws       int    `json:"draws" yaml:"draws"`
	Defeats     int    `json:"defeats" yaml:"defeats"`
	GoalPro     int    `json:"goal_pro" yaml:"goal_pro"`
	GoalAgainst int    `json:"goal_against" yaml:"goal_against"`
	Points      *int   `json:"points" yaml:"points"`
}

type fixturesDocument struct {
	Rounds []roundRecord `json:"rounds" yaml:"rounds"`
}

type roundRecord struct {
	Round   int           `json:"round" yaml:"round"`
	Date    string        `json:"date" yaml:"date"`
	Matches []matchRecord `json:"matches" yaml:"matches"`
}

type matchRecord struct {
	ID       string        `json:"id" yaml:"id"`
	HomeTeam teamRefRecord `json:"home_team" yaml:"home_team"`
	AwayTeam teamRefRecord `json:"away_team" yaml:"away_team"`
}

type teamRefRecord struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Short    string `json:"short" yaml:"short"`
	CrestURL string `json:"crest_url" yaml:"crest_url"`
}

func (r teamRecord) toTeam() team.Team {
	return team.Team{
		ID:       strings.TrimSpace(r.ID),
		Name:     strings.TrimSpace(r.Name),
		Short:    strings.TrimSpace(r.Short),
		CrestURL: strings.TrimSpace(r.CrestURL),
	}
}

// toStats fills games and points from the result counters when the file
// leaves them out.
func (r teamRecord) toStats() standing.TeamStats {
	games := r.Victories + r.Draws + r.Defeats
	if r.Games != nil {
		games = *r.Games
	}
	points := 3*r.Victories + r.Draws
	if r.Points != nil {
		points = *r.Points
	}

	return standing.TeamStats{
		ID:           strings.TrimSpace(r.ID),
		Name:         strings.TrimSpace(r.Name),
		Games:        games,
		Victories:    r.Victories,
		Draws:        r.Draws,
		Defeats:      r.Defeats,
		GoalsFor:     r.GoalPro,
		GoalsAgainst: r.GoalAgainst,
		Points:       points,
	}.Normalize()
}

func (r teamRefRecord) toRef() fixture.TeamRef {
	return fixture.TeamRef{
		ID:       strings.TrimSpace(r.ID),
		Name:     strings.TrimSpace(r.Name),
		Short:    strings.TrimSpace(r.Short),
		CrestURL: strings.TrimSpace(r.CrestURL),
	}
}

var dateLayouts = []string{time.DateOnly, time.RFC3339, "02/01/2006"}

func parseRoundDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, crerr.Newf("unsupported date %q", raw)
}

func (r roundRecord) toRound() (fixture.Round, error) {
	date, err := parseRoundDate(r.Date)
	if err != nil {
		return fixture.Round{}, crerr.Wrapf(err, "round %d", r.Round)
	}

	matches := make([]fixture.Match, 0, len(r.Matches))
	for _, item := range r.Matches {
		match := fixture.Match{
			ID:    strings.TrimSpace(item.ID),
			Round: r.Round,
			Home:  item.HomeTeam.toRef(),
			Away:  item.AwayTeam.toRef(),
		}
		if err := match.Validate(); err != nil {
			return fixture.Round{}, crerr.Wrapf(err, "round %d", r.Round)
		}
		matches = append(matches, match)
	}

	return fixture.Round{Number: r.Round, Date: date, Matches: matches}, nil
}
