package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"pyreq/tests/testutil"
)

func TestLockCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	outDir := t.TempDir()

	cmd := exec.Command("go", "run", "./cmd/pyreq", "lock",
		"--manifest", "fixtures/requirements.txt",
		"--index", "fixtures/index.yaml",
		"--output", outDir,
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	require.FileExists(t, filepath.Join(outDir, "requirements.lock"))
	require.FileExists(t, filepath.Join(outDir, "lock.intent"))
}

func TestValidateCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)

	cmd := exec.Command("go", "run", "./cmd/pyreq", "validate",
		"--project", "fixtures/project.yaml",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "validated: job-search-agent")
}

func TestValidateCommandE2EMalformedManifest(t *testing.T) {
	root := testutil.RepoRoot(t)
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifestPath, []byte("pkg==\n"), 0644))

	cmd := exec.Command("go", "run", "./cmd/pyreq", "validate",
		"--manifest", manifestPath,
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	require.Contains(t, strings.ToLower(string(out)), "malformed line")
}
