// Package testutil provides shared test helpers used across integration
// and e2e test packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// FixturePath resolves a path under fixtures/ relative to the repo root.
func FixturePath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "fixtures", name)
}
