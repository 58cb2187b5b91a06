package notifier

import "gridiron/internal/stats"

// Notifier defines a high-level interface for sending notifications about player stats.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For pushing messages to a channel
	SendLeaderboard(players []stats.Player, position string, dryRun bool) error
	SendPlayerStats(player *stats.Player, query string, dryRun bool) error
	SendPlayerNotFound(query string, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(players []stats.Player, position string) (any, error)
	FormatPlayerStatsResponse(player *stats.Player, query string) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
