package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyreq/internal/types"
)

func mustParse(t *testing.T, content string) []types.Requirement {
	t.Helper()
	manifest, err := ParseManifestContent(content, "requirements.txt")
	require.NoError(t, err)
	return manifest.Requirements
}

func TestFindDuplicatesNone(t *testing.T) {
	reqs := mustParse(t, "boto3==1.37.37\nopenai\n")
	assert.Empty(t, FindDuplicates(reqs))
}

func TestFindDuplicatesConflicting(t *testing.T) {
	reqs := mustParse(t, "langchain~=0.3.0\nopenai\nlangchain~=0.2.0\n")
	dups := FindDuplicates(reqs)
	require.Len(t, dups, 1)
	assert.Equal(t, "langchain", dups[0].Name)
	assert.True(t, dups[0].Conflicting)
	assert.Equal(t, 1, dups[0].First.Line)
	assert.Equal(t, 3, dups[0].Second.Line)
}

func TestFindDuplicatesNormalizedNames(t *testing.T) {
	reqs := mustParse(t, "python_dotenv==1.0.1\nPython.DotEnv==1.0.2\n")
	dups := FindDuplicates(reqs)
	require.Len(t, dups, 1)
	assert.Equal(t, "python-dotenv", dups[0].Name)
	assert.True(t, dups[0].Conflicting)
}

func TestDedupeIdentical(t *testing.T) {
	reqs := mustParse(t, "boto3==1.37.37\nopenai\nboto3==1.37.37\n")
	kept, dropped, err := Dedupe(reqs)
	require.NoError(t, err)
	assert.Equal(t, 1, dropped)
	require.Len(t, kept, 2)
	assert.Equal(t, "boto3", kept[0].Name)
	assert.Equal(t, "openai", kept[1].Name)
}

func TestDedupeConflictingFails(t *testing.T) {
	reqs := mustParse(t, "pydantic>=2,<3\npydantic>=1\n")
	_, _, err := Dedupe(reqs)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeAlreadyExists, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "pydantic")
}

func TestSpecifiersEqualIgnoresOrder(t *testing.T) {
	a := mustParse(t, "pydantic>=2,<3\n")[0].Specifiers
	b := mustParse(t, "pydantic<3,>=2\n")[0].Specifiers
	assert.True(t, SpecifiersEqual(a, b))

	c := mustParse(t, "pydantic>=2\n")[0].Specifiers
	assert.False(t, SpecifiersEqual(a, c))
}

func TestDuplicateErrorNamesBothLines(t *testing.T) {
	reqs := mustParse(t, "openai\n\nopenai>=1\n")
	dups := FindDuplicates(reqs)
	require.Len(t, dups, 1)
	err := DuplicateError(dups[0])
	assert.Contains(t, err.Error(), "requirements.txt:1")
	assert.Contains(t, err.Error(), "requirements.txt:3")
}
