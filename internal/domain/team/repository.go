package team

import "context"

// Repository describes team metadata lookups needed by use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
}
