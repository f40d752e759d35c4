package standing

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CollationTag drives the locale-aware comparison of team names.
var CollationTag = language.BrazilianPortuguese

// NewNameCollator compares team names the way the table tie-break does.
// A collator is not safe for concurrent use.
func NewNameCollator() *collate.Collator {
	return collate.New(CollationTag)
}

// Sort returns a new snapshot ordered by points, victories, goal balance,
// goals scored (all descending), goals conceded (ascending) and finally the
// canonical team name. Team id breaks exact name ties so the order is total.
// Every row carries the name it was ranked by. The input slice is left
// untouched.
func Sort(teams []TeamStats, names NameResolver) Snapshot {
	out := make(Snapshot, len(teams))
	copy(out, teams)

	display := make(map[string]string, len(out))
	for _, item := range out {
		display[item.ID] = canonicalName(item, names)
	}

	// collators keep internal buffers, one per call keeps Sort reentrant
	col := NewNameCollator()

	sort.SliceStable(out, func(i, j int) bool {
		return compareTeams(col, out[i], out[j], display) < 0
	})

	for i := range out {
		out[i].Position = i + 1
		out[i].Name = display[out[i].ID]
	}

	return out
}

func compareTeams(col *collate.Collator, a, b TeamStats, display map[string]string) int {
	if a.Points != b.Points {
		return descending(a.Points, b.Points)
	}
	if a.Victories != b.Victories {
		return descending(a.Victories, b.Victories)
	}
	if a.GoalBalance != b.GoalBalance {
		return descending(a.GoalBalance, b.GoalBalance)
	}
	if a.GoalsFor != b.GoalsFor {
		return descending(a.GoalsFor, b.GoalsFor)
	}
	if a.GoalsAgainst != b.GoalsAgainst {
		return -descending(a.GoalsAgainst, b.GoalsAgainst)
	}
	if c := col.CompareString(display[a.ID], display[b.ID]); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func descending(a, b int) int {
	if a > b {
		return -1
	}
	return 1
}

func canonicalName(team TeamStats, names NameResolver) string {
	if names != nil {
		if name, ok := names.ResolveName(team.ID); ok && strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}
	return strings.TrimSpace(team.Name)
}
