package mocks

import "context"

// SchemaManager is a mock implementation of ports.SchemaManager.
type SchemaManager struct {
	EnsureErr error

	EnsureCalled bool
	Closed       bool
}

// EnsureSchema records the call and returns EnsureErr.
func (m *SchemaManager) EnsureSchema(_ context.Context) error {
	m.EnsureCalled = true
	return m.EnsureErr
}

// Close records that the manager was closed.
func (m *SchemaManager) Close() error {
	m.Closed = true
	return nil
}
