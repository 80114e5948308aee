// Package testutil provides common test utilities and assertions.
package testutil

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}

// AssertLines compares output line by line so failures point at the first
// differing line. A single trailing newline in actual is ignored.
func AssertLines(t *testing.T, expected []string, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	got := strings.Split(strings.TrimSuffix(actual, "\n"), "\n")
	assert.Equal(t, expected, got, msgAndArgs...)
}
