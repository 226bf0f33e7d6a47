package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAssessmentCache is a mock implementation of AssessmentCache
type MockAssessmentCache struct {
	mock.Mock
}

func (m *MockAssessmentCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockAssessmentCache) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockAssessmentCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
