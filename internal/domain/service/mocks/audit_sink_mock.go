package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/securepay/internal/domain/models"
)

// MockAuditSink is a mock implementation of AuditSink
type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) Publish(ctx context.Context, event models.AssessmentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditSink) Close() error {
	args := m.Called()
	return args.Error(0)
}
