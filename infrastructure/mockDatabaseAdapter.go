package infrastructure

import "context"

// MockDatabaseAdapter fakes the store for the status route.
type MockDatabaseAdapter struct {
	PingError bool
}

func NewMockDatabaseAdapter() *MockDatabaseAdapter {
	return &MockDatabaseAdapter{}
}

func (m *MockDatabaseAdapter) EnablePingError() {
	m.PingError = true
}

func (m *MockDatabaseAdapter) Ping(ctx context.Context) error {
	if m.PingError {
		return errMockStore
	}
	return nil
}
