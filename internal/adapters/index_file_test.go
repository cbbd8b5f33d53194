package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyreq/internal/types"
)

const sampleIndexYAML = `packages:
  boto3:
    - "1.35.0"
    - "1.37.37"
  Python.DotEnv:
    - "1.0.1"
`

func TestIndexFileAdapterLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleIndexYAML), 0644))

	adapter := NewIndexFileAdapter(path)
	versions, err := adapter.AvailableVersions("boto3")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.35.0", "1.37.37"}, versions)

	// Lookups normalize both sides.
	versions, err = adapter.AvailableVersions("python_dotenv")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0.1"}, versions)

	versions, err = adapter.AvailableVersions("unknown")
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestIndexFileAdapterMissingFile(t *testing.T) {
	adapter := NewIndexFileAdapter(filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := adapter.AvailableVersions("boto3")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestIndexWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "index.yaml")
	index := types.PackageIndexFile{Packages: map[string][]string{
		"boto3": {"1.37.37"},
	}}
	require.NoError(t, NewIndexWriterAdapter().Write(path, index))

	versions, err := NewIndexFileAdapter(path).AvailableVersions("boto3")
	require.NoError(t, err)
	assert.Equal(t, []string{"1.37.37"}, versions)
}

func TestIndexWriterRequiresPath(t *testing.T) {
	err := NewIndexWriterAdapter().Write("", types.PackageIndexFile{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
