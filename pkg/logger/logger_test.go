package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeValue(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value interface{}
		want  interface{}
	}{
		{name: "email keeps domain", key: "email", value: "owner@acme-shop.com", want: "o***r@acme-shop.com"},
		{name: "prefixed email key", key: "contact_email", value: "ab@acme-shop.com", want: "**@acme-shop.com"},
		{name: "malformed email", key: "email", value: "nobody", want: "***"},
		{name: "long secret", key: "signing_secret", value: "0123456789abcdef", want: "0123***cdef"},
		{name: "short token", key: "token", value: "abc", want: "***"},
		{name: "non-string sensitive value", key: "password", value: 42, want: "***REDACTED***"},
		{name: "plain key untouched", key: "score", value: 7.2, want: 7.2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeValue(tc.key, tc.value))
		})
	}
}
