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

func TestWriteLockSorted(t *testing.T) {
	dir := t.TempDir()
	adapter := NewLockFileAdapter(dir)
	require.NoError(t, adapter.WriteLock([]types.LockEntry{
		{Name: "streamlit", Version: "1.41.1"},
		{Name: "boto3", Version: "1.37.37"},
	}))

	data, err := os.ReadFile(filepath.Join(dir, "requirements.lock"))
	require.NoError(t, err)
	assert.Equal(t, "boto3==1.37.37\nstreamlit==1.41.1\n", string(data))
}

func TestWriteLockRequiresDir(t *testing.T) {
	err := NewLockFileAdapter("").WriteLock(nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestLockRoundTrip(t *testing.T) {
	dir := t.TempDir()
	writer := NewLockFileAdapter(dir)
	require.NoError(t, writer.WriteLock([]types.LockEntry{
		{Name: "boto3", Version: "1.37.37"},
		{Name: "openai", Version: "1.59.7"},
	}))
	intent := types.LockIntent{
		LockID:    "8e3f9a7e-8e18-4a1a-9a6e-2f4e0d8f1c55",
		CreatedAt: "2026-08-24T10:00:00Z",
		Index:     "fixtures/index.yaml",
		Manifests: []string{"fixtures/requirements.txt", "fixtures/requirements-extra.txt"},
	}
	require.NoError(t, writer.WriteLockIntent(intent))

	reader := NewLockReaderAdapter()
	entries, err := reader.ReadLock(filepath.Join(dir, "requirements.lock"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, types.LockEntry{Name: "boto3", Version: "1.37.37"}, entries[0])

	got, err := reader.ReadLockIntent(filepath.Join(dir, "lock.intent"))
	require.NoError(t, err)
	assert.Equal(t, intent, got)
}

func TestReadLockInvalidLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.lock")
	require.NoError(t, os.WriteFile(path, []byte("boto3\n"), 0644))

	_, err := NewLockReaderAdapter().ReadLock(path)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestReadLockIntentMissingLockID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lock.intent")
	require.NoError(t, os.WriteFile(path, []byte("created_at=2026-08-24T10:00:00Z\n"), 0644))

	_, err := NewLockReaderAdapter().ReadLockIntent(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock_id")
}
