package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu             sync.Mutex
	playerQueries  int
	teamQueries    int
	searches       int
	storeErrors    int
	slackNotifSent int
	slackNotifFail int
	queryDurations []float64
	startupTime    float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		queryDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPlayerQueries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerQueries++
}

func (m *Mock) IncTeamQueries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamQueries++
}

func (m *Mock) IncSearches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++
}

func (m *Mock) IncStoreErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeErrors++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFail++
}

func (m *Mock) ObserveQueryDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryDurations = append(m.queryDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PlayerQueries returns the number of times IncPlayerQueries was called.
func (m *Mock) PlayerQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerQueries
}

// TeamQueries returns the number of times IncTeamQueries was called.
func (m *Mock) TeamQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamQueries
}

// Searches returns the number of times IncSearches was called.
func (m *Mock) Searches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searches
}

// StoreErrors returns the number of times IncStoreErrors was called.
func (m *Mock) StoreErrors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeErrors
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFail
}
