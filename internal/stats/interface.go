package stats

import "context"

// Store defines the read-only query surface over the position stat tables.
type Store interface {
	// ByPosition returns every player in one position group (or the DEF
	// union), ordered by total points descending, rank ascending.
	ByPosition(ctx context.Context, tag string) ([]Player, error)
	// ByTeam returns every player rostered on the team across all eight
	// position tables.
	ByTeam(ctx context.Context, code string) ([]Player, error)
	// Search returns players whose name contains the substring,
	// case-insensitively, optionally scoped to one position group.
	Search(ctx context.Context, substr, tag string) ([]Player, error)
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
