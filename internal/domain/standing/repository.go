package standing

import "context"

// Repository exposes the initial table the championship starts from.
type Repository interface {
	ListInitial(ctx context.Context) ([]TeamStats, error)
}

// NameResolver looks up the canonical display name of a team.
type NameResolver interface {
	ResolveName(teamID string) (string, bool)
}

type NameResolverFunc func(teamID string) (string, bool)

func (f NameResolverFunc) ResolveName(teamID string) (string, bool) {
	return f(teamID)
}
