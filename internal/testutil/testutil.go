// Package testutil provides shared test helpers for the base-error
// module.
//
// All helpers accept [testing.TB] for compatibility with both tests and
// benchmarks. Functions that halt the test on failure use [require]
// from testify; functions that record failures without stopping use
// [assert].
//
// Every helper calls t.Helper() so that test failure messages report
// the caller's file and line number rather than this package's.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	beerr "github.com/shi-rudo/base-error-go/pkg/errors"
)

// RequireNoError halts the test immediately if err is non-nil.
// Use this for preconditions whose failure makes continuing meaningless.
func RequireNoError(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// RequireError halts the test immediately if err is nil.
// Use this when an error is expected and subsequent assertions depend on it.
func RequireError(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
}

// RequireErrorCode halts the test if err is nil, is not a
// *beerr.Error, or does not carry the expected error code. This is the
// primary helper for validating structured error results.
//
// Example:
//
//	err := catalog.LoadFile("absent.yaml")
//	testutil.RequireErrorCode(t, err, beerr.CodeInternalConfiguration)
func RequireErrorCode(t testing.TB, err error, code beerr.Code, msgAndArgs ...any) {
	t.Helper()
	require.Error(t, err, msgAndArgs...)
	bErr, ok := beerr.AsError(err)
	require.True(t, ok, "expected *beerr.Error, got %T: %v", err, err)
	require.Equal(t, code, bErr.Code,
		"error code mismatch: got %q, want %q (message: %s)",
		bErr.Code, code, bErr.Message)
}

// AssertErrorCode records a test failure (without halting) if err is
// nil, is not a *beerr.Error, or does not carry the expected error
// code. Use this in table-driven tests where you want to check all rows.
func AssertErrorCode(t testing.TB, err error, code beerr.Code, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Error(t, err, msgAndArgs...) {
		return false
	}
	bErr, ok := beerr.AsError(err)
	if !assert.True(t, ok, "expected *beerr.Error, got %T: %v", err, err) {
		return false
	}
	return assert.Equal(t, code, bErr.Code,
		"error code mismatch: got %q, want %q (message: %s)",
		bErr.Code, code, bErr.Message)
}

// AssertRetryable records a test failure if the error's retryability,
// judged across the whole cause chain, does not match want.
func AssertRetryable(t testing.TB, err error, want bool) bool {
	t.Helper()
	got, walkErr := beerr.IsChainRetryable(err)
	if !assert.NoError(t, walkErr, "chain traversal failed") {
		return false
	}
	return assert.Equal(t, want, got, "chain retryability mismatch")
}

// TempFile creates a temporary file with the given name and content
// inside t.TempDir(). The file is automatically cleaned up when the
// test finishes.
//
// The file is created with mode 0600 (owner read/write only).
func TempFile(t testing.TB, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err, "failed to write temp file %s", path)
	return path
}

// AssertJSONContains marshals v to JSON and asserts that the resulting
// JSON string contains the expected substring. Useful for verifying
// that specific fields appear in serialized output.
func AssertJSONContains(t testing.TB, v any, expected string) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "json.Marshal failed")
	assert.Contains(t, string(data), expected,
		"expected JSON to contain %q, got: %s", expected, string(data))
}

// AssertJSONNotContains marshals v to JSON and asserts that the
// resulting JSON string does not contain the unexpected substring.
// Useful for verifying that internal fields do not leak into wire
// output.
func AssertJSONNotContains(t testing.TB, v any, unexpected string) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "json.Marshal failed")
	assert.NotContains(t, string(data), unexpected,
		"expected JSON to NOT contain %q, got: %s", unexpected, string(data))
}
