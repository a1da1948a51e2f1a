package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fiscoex/internal/port"
)

// MockComplianceClient is a mock implementation of port.ComplianceClient.
type MockComplianceClient struct {
	mock.Mock
}

func (m *MockComplianceClient) Complete(ctx context.Context, input port.CompletionInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockComplianceClient) ValidateKey(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockComplianceClient) Model() string {
	args := m.Called()
	return args.String(0)
}
