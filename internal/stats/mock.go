package stats

import (
	"context"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ByPositionFunc func(ctx context.Context, tag string) ([]Player, error)
	ByTeamFunc     func(ctx context.Context, code string) ([]Player, error)
	SearchFunc     func(ctx context.Context, substr, tag string) ([]Player, error)
	PingFunc       func(ctx context.Context) error

	// Call records
	ByPositionCalls []string
	ByTeamCalls     []string
	SearchCalls     []struct {
		Substr string
		Tag    string
	}
	PingCalls int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByPositionCalls = nil
	m.ByTeamCalls = nil
	m.SearchCalls = nil
	m.PingCalls = 0
}

func (m *MockStore) ByPosition(ctx context.Context, tag string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByPositionCalls = append(m.ByPositionCalls, tag)
	if m.ByPositionFunc != nil {
		return m.ByPositionFunc(ctx, tag)
	}
	return nil, nil
}

func (m *MockStore) ByTeam(ctx context.Context, code string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ByTeamCalls = append(m.ByTeamCalls, code)
	if m.ByTeamFunc != nil {
		return m.ByTeamFunc(ctx, code)
	}
	return nil, nil
}

func (m *MockStore) Search(ctx context.Context, substr, tag string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCalls = append(m.SearchCalls, struct {
		Substr string
		Tag    string
	}{substr, tag})
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, substr, tag)
	}
	return nil, nil
}

func (m *MockStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PingCalls++
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
