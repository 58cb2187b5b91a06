package stats

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// store executes query specs against the stat tables. It holds no state
// beyond the shared handle and is safe for concurrent use; the tables are
// read-only once loaded.
type store struct {
	db      *sqlx.DB
	timeout time.Duration
}

// Player is the canonical record returned for any position group. Stats is
// keyed by canonical field name and only present on single-table and DEF
// queries; cross-position fan-outs carry the shared identity subset.
type Player struct {
	Name        string         `json:"name"`
	Position    string         `json:"position"`
	Team        *string        `json:"team"`
	TotalPoints float64        `json:"total_points"`
	Rank        int            `json:"rank"`
	Stats       map[string]any `json:"stats,omitempty"`
}
