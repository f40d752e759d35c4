package standing

import "fmt"

// TeamStats is one team's cumulative record in the championship table.
type TeamStats struct {
	ID           string
	Name         string
	Games        int
	Victories    int
	Draws        int
	Defeats      int
	GoalsFor     int
	GoalsAgainst int
	GoalBalance  int
	Points       int
	// Position is only meaningful inside the Snapshot that assigned it.
	Position int
}

// Normalize recomputes derived fields so a freshly loaded record obeys the
// same invariants as one produced by ApplyStatsDelta.
func (t TeamStats) Normalize() TeamStats {
	t.GoalBalance = t.GoalsFor - t.GoalsAgainst
	t.Position = 0
	return t
}

func (t TeamStats) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team stats id is required")
	}
	counters := []struct {
		name  string
		value int
	}{
		{"games", t.Games},
		{"victories", t.Victories},
		{"draws", t.Draws},
		{"defeats", t.Defeats},
		{"goal_pro", t.GoalsFor},
		{"goal_against", t.GoalsAgainst},
		{"points", t.Points},
	}
	for _, c := range counters {
		if c.value < 0 {
			return fmt.Errorf("team %s: %s must be >= 0, got %d", t.ID, c.name, c.value)
		}
	}

	return nil
}

// MatchResult is the normalized outcome of one completed match.
type MatchResult struct {
	MatchID    string
	HomeTeamID string
	AwayTeamID string
	HomeScore  int
	AwayScore  int
}

// Multiplier selects between applying and reversing a result.
type Multiplier int

const (
	Apply   Multiplier = 1
	Reverse Multiplier = -1
)

// Snapshot is a fully sorted table with positions assigned 1..N.
type Snapshot []TeamStats

func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return nil
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	return out
}

func (s Snapshot) Find(teamID string) (TeamStats, bool) {
	for _, item := range s {
		if item.ID == teamID {
			return item, true
		}
	}
	return TeamStats{}, false
}

func (s Snapshot) Leader() (TeamStats, bool) {
	if len(s) == 0 {
		return TeamStats{}, false
	}
	return s[0], true
}

type Direction string

const (
	DirectionNone Direction = "none"
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// PositionChange describes how far a team moved between two snapshots.
type PositionChange struct {
	Direction        Direction
	PositionsChanged int
	// Affected marks teams that took part in a result recorded in the
	// current round. It never alters Direction or PositionsChanged.
	Affected bool
}

// PositionChanges is keyed by team id. A missing key means there is nothing
// to report for that team, which is not the same as an unchanged position.
type PositionChanges map[string]PositionChange

// MarkAffected flags the given teams. Teams without an entry are skipped.
func (c PositionChanges) MarkAffected(teamIDs ...string) {
	for _, id := range teamIDs {
		change, ok := c[id]
		if !ok {
			continue
		}
		change.Affected = true
		c[id] = change
	}
}
