package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyreq/internal/types"
)

func TestCompareRequirements(t *testing.T) {
	before := mustParse(t, "langchain~=0.3.0\nboto3==1.37.37\nopenai\n")
	after := mustParse(t, "langchain~=0.3.0\nboto3==1.38.0\nstreamlit>=1.30,<2\n")

	diff := CompareRequirements(before, after)
	assert.False(t, diff.Empty())

	require.Len(t, diff.Added, 1)
	assert.Equal(t, "streamlit", diff.Added[0].Name)
	require.Len(t, diff.Removed, 1)
	assert.Equal(t, "openai", diff.Removed[0].Name)
	want := []DiffChange{{Name: "boto3", Before: "==1.37.37", After: "==1.38.0"}}
	if d := cmp.Diff(want, diff.Changed); d != "" {
		t.Errorf("changed mismatch (-want +got):\n%s", d)
	}
}

func TestCompareRequirementsOrderInsensitive(t *testing.T) {
	a := mustParse(t, "boto3==1.37.37\nopenai\n")
	b := mustParse(t, "openai\nboto3==1.37.37\n")
	assert.True(t, EqualAsSets(a, b))
}

func TestLockToRequirements(t *testing.T) {
	entries := []types.LockEntry{
		{Name: "boto3", Version: "1.37.37"},
		{Name: "openai", Version: "1.59.7"},
	}
	reqs := LockToRequirements(entries, "requirements.lock")
	require.Len(t, reqs, 2)
	assert.Equal(t, "boto3==1.37.37", FormatRequirement(reqs[0]))

	manifest := mustParse(t, "boto3==1.37.37\nopenai==1.59.7\n")
	assert.True(t, EqualAsSets(manifest, reqs))
}
