package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/championship-simulator/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	items []team.Team
	byID  map[string]int
}

func NewTeamRepository(items []team.Team) *TeamRepository {
	r := &TeamRepository{
		items: append([]team.Team(nil), items...),
		byID:  make(map[string]int, len(items)),
	}
	for idx, item := range r.items {
		r.byID[item.ID] = idx
	}

	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	out = append(out, r.items...)
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[teamID]
	if !ok {
		return team.Team{}, false, nil
	}
	return r.items[idx], true, nil
}
