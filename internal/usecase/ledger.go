package usecase

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
)

// AppliedScore is the result currently folded into the standings for one
// match. Reversing uses exactly these numbers, whatever the match shows now.
type AppliedScore struct {
	Home int
	Away int
}

type matchLocation struct {
	round int
	index int
}

// MatchLedger owns the live championship state: the fixture list, the
// standings derived from it and the ledger of applied results. The standings
// always equal the initial table plus every ledger entry.
//
// MatchLedger is not safe for concurrent use.
type MatchLedger struct {
	initial  standing.Snapshot
	current  standing.Snapshot
	previous standing.Snapshot

	rounds       []fixture.Round
	roundIndex   map[int]int
	matchIndex   map[string]matchLocation
	currentRound int

	applied map[string]AppliedScore

	names   standing.NameResolver
	sampler ScoreSampler
}

// NewMatchLedger builds a ledger from the initial table and the fixture
// list. Scores carried by the fixtures are discarded; every match starts
// unset. The first round becomes the current one.
func NewMatchLedger(
	initial []standing.TeamStats,
	rounds []fixture.Round,
	names standing.NameResolver,
	sampler ScoreSampler,
) (*MatchLedger, error) {
	if sampler == nil {
		return nil, fmt.Errorf("%w: score sampler is required", ErrInvalidInput)
	}
	if len(rounds) == 0 {
		return nil, fmt.Errorf("%w: at least one round is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(initial))
	normalized := make([]standing.TeamStats, 0, len(initial))
	for _, item := range initial {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, ok := seen[item.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate team %s in initial standings", ErrInvalidInput, item.ID)
		}
		seen[item.ID] = struct{}{}
		normalized = append(normalized, item.Normalize())
	}

	ordered := make([]fixture.Round, len(rounds))
	copy(ordered, rounds)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	l := &MatchLedger{
		roundIndex: make(map[int]int, len(ordered)),
		matchIndex: make(map[string]matchLocation),
		applied:    make(map[string]AppliedScore),
		names:      names,
		sampler:    sampler,
	}

	l.rounds = make([]fixture.Round, len(ordered))
	for ri, round := range ordered {
		if _, ok := l.roundIndex[round.Number]; ok {
			return nil, fmt.Errorf("%w: duplicate round %d", ErrInvalidInput, round.Number)
		}
		l.roundIndex[round.Number] = ri

		matches := make([]fixture.Match, len(round.Matches))
		for mi, match := range round.Matches {
			match.Round = round.Number
			if err := match.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			if _, ok := l.matchIndex[match.ID]; ok {
				return nil, fmt.Errorf("%w: duplicate match %s", ErrInvalidInput, match.ID)
			}
			match.HomeScore = fixture.Unset()
			match.AwayScore = fixture.Unset()
			match.Simulated = false
			matches[mi] = match
			l.matchIndex[match.ID] = matchLocation{round: ri, index: mi}
		}
		l.rounds[ri] = fixture.Round{Number: round.Number, Date: round.Date, Matches: matches}
	}

	l.initial = standing.Sort(normalized, names)
	l.current = l.initial.Clone()
	l.previous = l.initial.Clone()
	l.currentRound = l.rounds[0].Number

	return l, nil
}

// SimulateRound fills every incomplete match of the current round with
// sampled scores. Complete matches are left alone. It returns how many
// matches were simulated.
func (l *MatchLedger) SimulateRound() int {
	l.previous = l.current
	return l.simulateRoundAt(l.roundIndex[l.currentRound])
}

// SimulateRemaining fills every incomplete match of every round without
// changing the current round.
func (l *MatchLedger) SimulateRemaining() int {
	l.previous = l.current
	total := 0
	for ri := range l.rounds {
		total += l.simulateRoundAt(ri)
	}
	return total
}

func (l *MatchLedger) simulateRoundAt(ri int) int {
	matches := l.rounds[ri].Matches
	simulated := 0
	for i := range matches {
		if matches[i].IsComplete() {
			continue
		}

		home := l.sampler.SampleGoals()
		away := l.sampler.SampleGoals()

		l.reverse(matches[i])
		matches[i].HomeScore = fixture.Goals(home)
		matches[i].AwayScore = fixture.Goals(away)
		matches[i].Simulated = true
		l.apply(matches[i])
		simulated++
	}
	return simulated
}

// ClearRound takes every applied result of the current round out of the
// standings and unsets its scores. Matches without a ledger entry are not
// touched, so calling it twice is the same as calling it once.
func (l *MatchLedger) ClearRound() int {
	l.previous = l.current

	matches := l.rounds[l.roundIndex[l.currentRound]].Matches
	cleared := 0
	for i := range matches {
		if _, ok := l.applied[matches[i].ID]; !ok {
			continue
		}
		l.reverse(matches[i])
		matches[i].HomeScore = fixture.Unset()
		matches[i].AwayScore = fixture.Unset()
		matches[i].Simulated = false
		cleared++
	}
	return cleared
}

// UpdateMatchScore sets one side of a match. An incomplete match is removed
// from the standings; a complete one replaces whatever was applied before.
func (l *MatchLedger) UpdateMatchScore(matchID string, field fixture.ScoreField, value fixture.Score) (fixture.Match, error) {
	loc, ok := l.matchIndex[matchID]
	if !ok {
		return fixture.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if field != fixture.FieldHome && field != fixture.FieldAway {
		return fixture.Match{}, fmt.Errorf("%w: %w: %q", ErrInvalidInput, fixture.ErrUnknownScoreField, field)
	}

	l.previous = l.current

	match := &l.rounds[loc.round].Matches[loc.index]
	*match = match.WithScore(field, value)
	match.Simulated = false

	l.reverse(*match)
	if match.IsComplete() {
		l.apply(*match)
	}

	return *match, nil
}

// Reset drops every applied result, unsets all scores and restores the
// initial table.
func (l *MatchLedger) Reset() {
	l.previous = l.current
	for ri := range l.rounds {
		matches := l.rounds[ri].Matches
		for i := range matches {
			matches[i].HomeScore = fixture.Unset()
			matches[i].AwayScore = fixture.Unset()
			matches[i].Simulated = false
		}
	}
	l.applied = make(map[string]AppliedScore)
	l.current = l.initial.Clone()
}

// SelectRound makes another round current. Applied results of other rounds
// stay in the standings.
func (l *MatchLedger) SelectRound(number int) error {
	if _, ok := l.roundIndex[number]; !ok {
		return fmt.Errorf("%w: round=%d", ErrNotFound, number)
	}
	l.currentRound = number
	return nil
}

func (l *MatchLedger) reverse(match fixture.Match) {
	entry, ok := l.applied[match.ID]
	if !ok {
		return
	}
	l.current = standing.ApplyMatchResult(l.current, standing.MatchResult{
		MatchID:    match.ID,
		HomeTeamID: match.Home.ID,
		AwayTeamID: match.Away.ID,
		HomeScore:  entry.Home,
		AwayScore:  entry.Away,
	}, true, l.names)
	delete(l.applied, match.ID)
}

func (l *MatchLedger) apply(match fixture.Match) {
	result, ok := match.Result()
	if !ok {
		return
	}
	l.current = standing.ApplyMatchResult(l.current, result, false, l.names)
	l.applied[match.ID] = AppliedScore{Home: result.HomeScore, Away: result.AwayScore}
}

// Standings returns a copy of the current table.
func (l *MatchLedger) Standings() standing.Snapshot {
	return l.current.Clone()
}

// Previous returns a copy of the table as it was before the last mutation.
func (l *MatchLedger) Previous() standing.Snapshot {
	return l.previous.Clone()
}

// PositionChanges compares the current table with the previous one. Teams
// playing a current-round match with an applied result are marked affected.
func (l *MatchLedger) PositionChanges() standing.PositionChanges {
	changes := standing.ComputePositionChanges(l.current, l.previous)
	for _, match := range l.rounds[l.roundIndex[l.currentRound]].Matches {
		if _, ok := l.applied[match.ID]; ok {
			changes.MarkAffected(match.TeamIDs()...)
		}
	}
	return changes
}

func (l *MatchLedger) CurrentRound() fixture.Round {
	round, _ := l.Round(l.currentRound)
	return round
}

func (l *MatchLedger) Round(number int) (fixture.Round, bool) {
	ri, ok := l.roundIndex[number]
	if !ok {
		return fixture.Round{}, false
	}
	round := l.rounds[ri]
	matches := make([]fixture.Match, len(round.Matches))
	copy(matches, round.Matches)
	round.Matches = matches
	return round, true
}

// Rounds lists round numbers in ascending order.
func (l *MatchLedger) Rounds() []int {
	out := make([]int, 0, len(l.rounds))
	for _, round := range l.rounds {
		out = append(out, round.Number)
	}
	return out
}

func (l *MatchLedger) Match(matchID string) (fixture.Match, bool) {
	loc, ok := l.matchIndex[matchID]
	if !ok {
		return fixture.Match{}, false
	}
	return l.rounds[loc.round].Matches[loc.index], true
}

func (l *MatchLedger) Applied(matchID string) (AppliedScore, bool) {
	entry, ok := l.applied[matchID]
	return entry, ok
}

func (l *MatchLedger) AppliedCount() int {
	return len(l.applied)
}

// RemainingMatches counts matches that are not complete in any round.
func (l *MatchLedger) RemainingMatches() int {
	total := 0
	for _, round := range l.rounds {
		for _, match := range round.Matches {
			if !match.IsComplete() {
				total++
			}
		}
	}
	return total
}

// Clone returns an independent ledger that draws scores from sampler. The
// name resolver is shared and must be safe for concurrent reads.
func (l *MatchLedger) Clone(sampler ScoreSampler) *MatchLedger {
	out := &MatchLedger{
		initial:      l.initial,
		current:      l.current.Clone(),
		previous:     l.previous.Clone(),
		rounds:       make([]fixture.Round, len(l.rounds)),
		roundIndex:   l.roundIndex,
		matchIndex:   l.matchIndex,
		currentRound: l.currentRound,
		applied:      make(map[string]AppliedScore, len(l.applied)),
		names:        l.names,
		sampler:      sampler,
	}
	for ri, round := range l.rounds {
		matches := make([]fixture.Match, len(round.Matches))
		copy(matches, round.Matches)
		round.Matches = matches
		out.rounds[ri] = round
	}
	for id, entry := range l.applied {
		out.applied[id] = entry
	}
	if out.sampler == nil {
		out.sampler = l.sampler
	}
	return out
}
