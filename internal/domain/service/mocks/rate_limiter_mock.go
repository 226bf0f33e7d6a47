package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/turtacn/securepay/pkg/constants"
)

// MockRateLimiter is a mock implementation of RateLimiter
type MockRateLimiter struct {
	mock.Mock
}

func (m *MockRateLimiter) Allow(
	ctx context.Context,
	scope constants.RateLimitScope,
	identifier string,
) (bool, int, time.Time, error) {
	args := m.Called(ctx, scope, identifier)
	return args.Bool(0), args.Int(1), args.Get(2).(time.Time), args.Error(3)
}
