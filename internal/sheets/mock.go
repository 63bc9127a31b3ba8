package sheets

import "sync"

// MockSource is an in-memory Source for testing.
type MockSource struct {
	mu sync.Mutex

	// Tabs maps tab name to its rows.
	Tabs map[string][][]string
	// Err, when set, is returned by every call.
	Err error

	// Call records
	GetRowsCalls []struct {
		SpreadsheetID string
		Tab           string
	}
}

var _ Source = (*MockSource)(nil)

// NewMock creates a new mock instance.
func NewMock() *MockSource {
	return &MockSource{Tabs: make(map[string][][]string)}
}

func (m *MockSource) GetRows(spreadsheetID, tab string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetRowsCalls = append(m.GetRowsCalls, struct {
		SpreadsheetID string
		Tab           string
	}{spreadsheetID, tab})
	if m.Err != nil {
		return nil, m.Err
	}
	rows, ok := m.Tabs[tab]
	if !ok {
		return nil, ErrTabNotFound
	}
	return rows, nil
}
