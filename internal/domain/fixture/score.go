package fixture

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxGoals is the upper bound for a single team's score when no
// other limit is configured.
const DefaultMaxGoals = 20

var (
	ErrInvalidScore      = errors.New("invalid score")
	ErrUnknownScoreField = errors.New("unknown score field")
)

// Score is a team's goal count in a match. The zero value is unset, which is
// never the same as zero goals.
type Score struct {
	goals int
	set   bool
}

func Unset() Score {
	return Score{}
}

// Goals builds a set score without range checks. Callers that accept user
// input should go through NewScore or ParseScore.
func Goals(n int) Score {
	return Score{goals: n, set: true}
}

func NewScore(n, maxGoals int) (Score, error) {
	if maxGoals <= 0 {
		maxGoals = DefaultMaxGoals
	}
	if n < 0 || n > maxGoals {
		return Score{}, fmt.Errorf("%w: %d is outside 0..%d", ErrInvalidScore, n, maxGoals)
	}
	return Goals(n), nil
}

// ParseScore turns raw user input into a Score. Blank input means unset.
// Anything that is not a whole number inside 0..maxGoals is rejected.
func ParseScore(raw string, maxGoals int) (Score, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Unset(), nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return Score{}, fmt.Errorf("%w: %q is not a whole number", ErrInvalidScore, raw)
	}

	return NewScore(n, maxGoals)
}

func (s Score) IsSet() bool {
	return s.set
}

// Value returns the goal count and whether the score is set.
func (s Score) Value() (int, bool) {
	return s.goals, s.set
}

func (s Score) String() string {
	if !s.set {
		return "-"
	}
	return strconv.Itoa(s.goals)
}

// Ptr converts the score to the nullable form used by DTOs and file records.
func (s Score) Ptr() *int {
	if !s.set {
		return nil
	}
	n := s.goals
	return &n
}

func ScoreFromPtr(n *int) Score {
	if n == nil {
		return Unset()
	}
	return Goals(*n)
}

// ScoreField selects which side of a match a score edit applies to.
type ScoreField string

const (
	FieldHome ScoreField = "home"
	FieldAway ScoreField = "away"
)

func ParseScoreField(raw string) (ScoreField, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "home", "homescore", "home_score":
		return FieldHome, nil
	case "away", "awayscore", "away_score":
		return FieldAway, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScoreField, raw)
	}
}
