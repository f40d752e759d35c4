package fixture

import (
	"fmt"
	"time"

	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
)

// TeamRef points at a team taking part in a match. Only ID is required, the
// rest is display metadata.
type TeamRef struct {
	ID       string
	Name     string
	Short    string
	CrestURL string
}

// Match is one fixture of the championship.
type Match struct {
	ID        string
	Round     int
	Home      TeamRef
	Away      TeamRef
	HomeScore Score
	AwayScore Score
	// Simulated is true when the current scores came from the sampler
	// rather than a manual edit.
	Simulated bool
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.Round <= 0 {
		return fmt.Errorf("match %s: round must be > 0", m.ID)
	}
	if m.Home.ID == "" || m.Away.ID == "" {
		return fmt.Errorf("match %s: both team ids are required", m.ID)
	}
	if m.Home.ID == m.Away.ID {
		return fmt.Errorf("match %s: team %s cannot play itself", m.ID, m.Home.ID)
	}

	return nil
}

// IsComplete reports whether both scores are set.
func (m Match) IsComplete() bool {
	return m.HomeScore.IsSet() && m.AwayScore.IsSet()
}

// Result converts a complete match into a standings result.
func (m Match) Result() (standing.MatchResult, bool) {
	home, homeSet := m.HomeScore.Value()
	away, awaySet := m.AwayScore.Value()
	if !homeSet || !awaySet {
		return standing.MatchResult{}, false
	}

	return standing.MatchResult{
		MatchID:    m.ID,
		HomeTeamID: m.Home.ID,
		AwayTeamID: m.Away.ID,
		HomeScore:  home,
		AwayScore:  away,
	}, true
}

// WithScore returns a copy of the match with one side replaced.
func (m Match) WithScore(field ScoreField, value Score) Match {
	switch field {
	case FieldHome:
		m.HomeScore = value
	case FieldAway:
		m.AwayScore = value
	}
	return m
}

// TeamIDs returns home and away team ids.
func (m Match) TeamIDs() []string {
	return []string{m.Home.ID, m.Away.ID}
}

// Round groups the matches played on one match day.
type Round struct {
	Number  int
	Date    time.Time
	Matches []Match
}
