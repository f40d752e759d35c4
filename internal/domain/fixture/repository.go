package fixture

import (
	"context"
	"time"
)

// Repository exposes the static fixture list.
type Repository interface {
	ListRounds(ctx context.Context) ([]int, error)
	ListByRound(ctx context.Context, round int) ([]Match, error)
	RoundDate(ctx context.Context, round int) (time.Time, bool, error)
}
