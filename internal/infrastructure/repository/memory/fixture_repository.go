package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
)

type FixtureRepository struct {
	mu      sync.RWMutex
	byRound map[int][]fixture.Match
	dates   map[int]time.Time
}

func NewFixtureRepository(rounds []fixture.Round) *FixtureRepository {
	byRound := make(map[int][]fixture.Match, len(rounds))
	dates := make(map[int]time.Time, len(rounds))
	for _, round := range rounds {
		for _, match := range round.Matches {
			match.Round = round.Number
			byRound[round.Number] = append(byRound[round.Number], match)
		}
		if _, ok := byRound[round.Number]; !ok {
			byRound[round.Number] = nil
		}
		if !round.Date.IsZero() {
			dates[round.Number] = round.Date
		}
	}

	return &FixtureRepository{byRound: byRound, dates: dates}
}

func (r *FixtureRepository) ListRounds(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]int, 0, len(r.byRound))
	for number := range r.byRound {
		out = append(out, number)
	}
	sort.Ints(out)
	return out, nil
}

func (r *FixtureRepository) ListByRound(_ context.Context, round int) ([]fixture.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byRound[round]
	out := make([]fixture.Match, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *FixtureRepository) RoundDate(_ context.Context, round int) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	date, ok := r.dates[round]
	return date, ok, nil
}
