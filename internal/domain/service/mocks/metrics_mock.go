package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockMetrics is a mock implementation of Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordAssessment(flow, level string, success bool, duration time.Duration) {
	m.Called(flow, level, success, duration)
}

func (m *MockMetrics) RecordCacheAccess(cacheType string, hit bool) {
	m.Called(cacheType, hit)
}

func (m *MockMetrics) RecordRateLimitHit(scope string) {
	m.Called(scope)
}

func (m *MockMetrics) RecordAuditPublish(sink string, success bool) {
	m.Called(sink, success)
}

func (m *MockMetrics) RecordQuote(planID string) {
	m.Called(planID)
}
