package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
	"github.com/riskibarqy/championship-simulator/internal/domain/team"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "pal", Name: "Palmeiras", Short: "PAL"},
		{ID: "fla", Name: "Flamengo", Short: "FLA"},
		{ID: "bot", Name: "Botafogo", Short: "BOT"},
		{ID: "for", Name: "Fortaleza", Short: "FOR"},
		{ID: "sao", Name: "São Paulo", Short: "SAO"},
		{ID: "int", Name: "Internacional", Short: "INT"},
		{ID: "cru", Name: "Cruzeiro", Short: "CRU"},
		{ID: "bah", Name: "Bahia", Short: "BAH"},
		{ID: "san", Name: "Santos", Short: "SAN"},
		{ID: "gre", Name: "Grêmio", Short: "GRE"},
	}
}

// SeedStandings is the table after four rounds. Every record satisfies
// points = 3*victories + draws and games = victories + draws + defeats.
func SeedStandings() []standing.TeamStats {
	rows := []standing.TeamStats{
		{ID: "pal", Name: "Palmeiras", Games: 4, Victories: 3, Draws: 1, Points: 10, GoalsFor: 8, GoalsAgainst: 3},
		{ID: "fla", Name: "Flamengo", Games: 4, Victories: 2, Draws: 2, Points: 8, GoalsFor: 7, GoalsAgainst: 3},
		{ID: "bot", Name: "Botafogo", Games: 4, Victories: 2, Draws: 2, Points: 8, GoalsFor: 6, GoalsAgainst: 3},
		{ID: "for", Name: "Fortaleza", Games: 4, Victories: 2, Draws: 1, Defeats: 1, Points: 7, GoalsFor: 5, GoalsAgainst: 4},
		{ID: "sao", Name: "São Paulo", Games: 4, Victories: 2, Defeats: 2, Points: 6, GoalsFor: 5, GoalsAgainst: 5},
		{ID: "int", Name: "Internacional", Games: 4, Victories: 1, Draws: 2, Defeats: 1, Points: 5, GoalsFor: 4, GoalsAgainst: 4},
		{ID: "cru", Name: "Cruzeiro", Games: 4, Victories: 1, Draws: 1, Defeats: 2, Points: 4, GoalsFor: 3, GoalsAgainst: 5},
		{ID: "bah", Name: "Bahia", Games: 4, Victories: 1, Draws: 1, Defeats: 2, Points: 4, GoalsFor: 4, GoalsAgainst: 6},
		{ID: "san", Name: "Santos", Games: 4, Draws: 1, Defeats: 3, Points: 1, GoalsFor: 2, GoalsAgainst: 7},
		{ID: "gre", Name: "Grêmio", Games: 4, Draws: 1, Defeats: 3, Points: 1, GoalsFor: 2, GoalsAgainst: 6},
	}
	for i := range rows {
		rows[i] = rows[i].Normalize()
	}
	return rows
}

func SeedRounds() []fixture.Round {
	return []fixture.Round{
		seedRound(5, time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
			"pal", "fla", "bot", "for", "sao", "int", "cru", "bah", "san", "gre"),
		seedRound(6, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
			"fla", "bot", "for", "sao", "int", "cru", "bah", "san", "gre", "pal"),
		seedRound(7, time.Date(2025, 5, 17, 0, 0, 0, 0, time.UTC),
			"pal", "bot", "fla", "sao", "for", "int", "cru", "san", "gre", "bah"),
	}
}

// seedRound pairs teamIDs as home, away, home, away...
func seedRound(number int, date time.Time, teamIDs ...string) fixture.Round {
	matches := make([]fixture.Match, 0, len(teamIDs)/2)
	for i := 0; i+1 < len(teamIDs); i += 2 {
		home, away := teamIDs[i], teamIDs[i+1]
		matches = append(matches, fixture.Match{
			ID:    seedMatchID(number, home, away),
			Round: number,
			Home:  fixture.TeamRef{ID: home},
			Away:  fixture.TeamRef{ID: away},
		})
	}
	return fixture.Round{Number: number, Date: date, Matches: matches}
}

func seedMatchID(round int, home, away string) string {
	return fmt.Sprintf("r%02d-%s-%s", round, home, away)
}
