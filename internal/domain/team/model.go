package team

import "fmt"

// Team is the canonical metadata of a club in the championship.
type Team struct {
	ID       string
	Name     string
	Short    string
	CrestURL string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// Directory is an in-memory name lookup built from a team list. It is safe
// for concurrent reads once built.
type Directory map[string]Team

func NewDirectory(items []Team) Directory {
	out := make(Directory, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}

func (d Directory) ResolveName(teamID string) (string, bool) {
	item, ok := d[teamID]
	if !ok || item.Name == "" {
		return "", false
	}
	return item.Name, true
}
