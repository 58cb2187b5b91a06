package notifier

import (
	"sync"

	"gridiron/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendLeaderboardCalls []struct {
		Players  []stats.Player
		Position string
	}
	SendPlayerStatsCalls []struct {
		Player *stats.Player
		Query  string
	}
	SendPlayerNotFoundCalls []string

	// Spies for format functions
	FormatLeaderboardResponseFunc    func(players []stats.Player, position string) (any, error)
	FormatPlayerStatsResponseFunc    func(player *stats.Player, query string) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records for format functions
	LastLeaderboardResponse    any
	LastPlayerStatsResponse    any
	LastPlayerNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = nil
	m.SendPlayerStatsCalls = nil
	m.SendPlayerNotFoundCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

func (m *Mock) SendLeaderboard(players []stats.Player, position string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		Players  []stats.Player
		Position string
	}{players, position})
	return nil
}

func (m *Mock) SendPlayerStats(player *stats.Player, query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerStatsCalls = append(m.SendPlayerStatsCalls, struct {
		Player *stats.Player
		Query  string
	}{player, query})
	return nil
}

func (m *Mock) SendPlayerNotFound(query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerNotFoundCalls = append(m.SendPlayerNotFoundCalls, query)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(players []stats.Player, position string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(players, position)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerStatsResponse(player *stats.Player, query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStatsResponseFunc != nil {
		resp, err := m.FormatPlayerStatsResponseFunc(player, query)
		m.LastPlayerStatsResponse = resp
		return resp, err
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err := m.FormatPlayerNotFoundResponseFunc(query)
		m.LastPlayerNotFoundResponse = resp
		return resp, err
	}
	return "formatted_player_not_found", nil
}
