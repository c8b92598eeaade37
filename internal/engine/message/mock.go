package message

import (
	"context"
)

// MockGenerator is a test double for Generator.
type MockGenerator struct {
	Out string
	Err error
}

// Message returns the configured message and error.
func (m *MockGenerator) Message(_ context.Context, _ string) (string, error) {
	return m.Out, m.Err
}
