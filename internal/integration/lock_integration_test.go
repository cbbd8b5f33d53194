package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pyreq/internal/adapters"
	"pyreq/internal/core"
	"pyreq/internal/types"
)

// TestLockIntegration wires the manifest adapter, the version resolver,
// and the lock writer together against the sample fixtures without going
// through the application layer.
func TestLockIntegration(t *testing.T) {
	root := repoRoot(t)
	manifestPath := filepath.Join(root, "fixtures/requirements.txt")
	indexPath := filepath.Join(root, "fixtures/index.yaml")

	manifest, err := adapters.NewManifestFileAdapter().LoadManifest(manifestPath)
	require.NoError(t, err)
	require.NotEmpty(t, manifest.Requirements)

	merged, _, err := core.Dedupe(manifest.Requirements)
	require.NoError(t, err)

	index := adapters.NewIndexFileAdapter(indexPath)
	var entries []types.LockEntry
	for _, req := range merged {
		available, err := index.AvailableVersions(req.Name)
		require.NoError(t, err)
		version, err := core.BestCompatibleVersion(req, available)
		require.NoError(t, err, req.Name)
		entries = append(entries, types.LockEntry{Name: req.Name, Version: version})
	}
	require.Len(t, entries, len(merged))

	outDir := t.TempDir()
	output := adapters.NewLockFileAdapter(outDir)
	require.NoError(t, output.WriteLock(entries))

	_, err = os.Stat(filepath.Join(outDir, "requirements.lock"))
	require.NoError(t, err)
}

func repoRoot(t *testing.T) string {
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}
