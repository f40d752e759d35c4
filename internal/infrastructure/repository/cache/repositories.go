package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/championship-simulator/internal/domain/fixture"
	"github.com/riskibarqy/championship-simulator/internal/domain/team"
	basecache "github.com/riskibarqy/championship-simulator/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	lists *basecache.Store[[]team.Team]
	items *basecache.Store[cachedTeamByID]
}

func NewTeamRepository(next team.Repository, ttl time.Duration) *TeamRepository {
	return &TeamRepository{
		next:  next,
		lists: basecache.NewStore[[]team.Team](ttl),
		items: basecache.NewStore[cachedTeamByID](ttl),
	}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := r.lists.GetOrLoad(ctx, "team:list", func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	cached, err := r.items.GetOrLoad(ctx, key, func(ctx context.Context) (cachedTeamByID, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return cachedTeamByID{}, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Stats() basecache.Stats {
	return sumStats(r.lists.Stats(), r.items.Stats())
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type FixtureRepository struct {
	next    fixture.Repository
	rounds  *basecache.Store[[]int]
	matches *basecache.Store[[]fixture.Match]
	dates   *basecache.Store[cachedRoundDate]
}

func NewFixtureRepository(next fixture.Repository, ttl time.Duration) *FixtureRepository {
	return &FixtureRepository{
		next:    next,
		rounds:  basecache.NewStore[[]int](ttl),
		matches: basecache.NewStore[[]fixture.Match](ttl),
		dates:   basecache.NewStore[cachedRoundDate](ttl),
	}
}

func (r *FixtureRepository) ListRounds(ctx context.Context) ([]int, error) {
	items, err := r.rounds.GetOrLoad(ctx, "fixture:rounds", func(ctx context.Context) ([]int, error) {
		items, err := r.next.ListRounds(ctx)
		if err != nil {
			return nil, err
		}
		return append([]int(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]int(nil), items...), nil
}

func (r *FixtureRepository) ListByRound(ctx context.Context, round int) ([]fixture.Match, error) {
	key := "fixture:round:" + strconv.Itoa(round)
	items, err := r.matches.GetOrLoad(ctx, key, func(ctx context.Context) ([]fixture.Match, error) {
		items, err := r.next.ListByRound(ctx, round)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]fixture.Match(nil), items...), nil
}

func (r *FixtureRepository) RoundDate(ctx context.Context, round int) (time.Time, bool, error) {
	key := "fixture:date:" + strconv.Itoa(round)
	cached, err := r.dates.GetOrLoad(ctx, key, func(ctx context.Context) (cachedRoundDate, error) {
		date, exists, err := r.next.RoundDate(ctx, round)
		if err != nil {
			return cachedRoundDate{}, err
		}
		return cachedRoundDate{value: date, exists: exists}, nil
	})
	if err != nil {
		return time.Time{}, false, err
	}

	return cached.value, cached.exists, nil
}

func (r *FixtureRepository) Stats() basecache.Stats {
	return sumStats(r.rounds.Stats(), r.matches.Stats(), r.dates.Stats())
}

func sumStats(items ...basecache.Stats) basecache.Stats {
	var out basecache.Stats
	for _, stats := range items {
		out.Entries += stats.Entries
		out.Hits += stats.Hits
		out.Misses += stats.Misses
		out.InFlight += stats.InFlight
	}
	return out
}

type cachedRoundDate struct {
	value  time.Time
	exists bool
}
