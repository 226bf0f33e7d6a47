// Package utils provides utility functions for the SecurePay risk service.
// This file contains parsing, masking, and formatting helpers.
package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ================================================================================
// Score Parsing
// ================================================================================

// ParseScore parses a decimal risk score. NaN and infinities are rejected
// because they cannot round-trip through JSON.
func ParseScore(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("score %q is not a number", s)
	}
	if err := CheckScore(v); err != nil {
		return 0, err
	}
	return v, nil
}

// CheckScore rejects NaN and infinite scores. Any finite value is accepted.
func CheckScore(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("score %v is not finite", v)
	}
	return nil
}

// ================================================================================
// JSON
// ================================================================================

// ToJSONPretty converts a value to an indented JSON string
func ToJSONPretty(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(data), nil
}

// ================================================================================
// Data Masking
// ================================================================================

// MaskEmail masks email address (e.g., "test@example.com" -> "t**t@example.com")
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***"
	}

	localPart := parts[0]
	domain := parts[1]

	if len(localPart) <= 2 {
		return strings.Repeat("*", len(localPart)) + "@" + domain
	}

	masked := string(localPart[0]) + strings.Repeat("*", len(localPart)-2) + string(localPart[len(localPart)-1])
	return masked + "@" + domain
}

// ================================================================================
// Slice Helpers
// ================================================================================

// RemoveDuplicates removes duplicate strings from slice, keeping first occurrence order
func RemoveDuplicates(slice []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(slice))

	for _, item := range slice {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}

	return result
}

// ToSnakeCase converts string to snake_case. A run of capitals is one word,
// so "UserID" becomes "user_id" and "HTTPAddr" becomes "http_addr".
func ToSnakeCase(s string) string {
	runes := []rune(s)
	var result strings.Builder

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(unicode.ToLower(r))
	}

	return result.String()
}
