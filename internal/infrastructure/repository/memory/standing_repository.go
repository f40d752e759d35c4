package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/championship-simulator/internal/domain/standing"
)

type StandingRepository struct {
	mu    sync.RWMutex
	items []standing.TeamStats
}

func NewStandingRepository(items []standing.TeamStats) *StandingRepository {
	return &StandingRepository{items: append([]standing.TeamStats(nil), items...)}
}

func (r *StandingRepository) ListInitial(_ context.Context) ([]standing.TeamStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.TeamStats, 0, len(r.items))
	out = append(out, r.items...)
	return out, nil
}
