package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyreq/internal/types"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		raw        string
		name       string
		specifiers []types.Specifier
	}{
		{"langchain~=0.3.0", "langchain", []types.Specifier{{Op: types.SpecifierOpCompat, Version: "0.3.0"}}},
		{"boto3==1.37.37", "boto3", []types.Specifier{{Op: types.SpecifierOpEq, Version: "1.37.37"}}},
		{"openai", "openai", nil},
		{"pydantic>=2,<3", "pydantic", []types.Specifier{
			{Op: types.SpecifierOpGte, Version: "2"},
			{Op: types.SpecifierOpLt, Version: "3"},
		}},
		{"streamlit >= 1.30, < 2", "streamlit", []types.Specifier{
			{Op: types.SpecifierOpGte, Version: "1.30"},
			{Op: types.SpecifierOpLt, Version: "2"},
		}},
		{"flask!=2.0.0,<=3", "flask", []types.Specifier{
			{Op: types.SpecifierOpNe, Version: "2.0.0"},
			{Op: types.SpecifierOpLte, Version: "3"},
		}},
		{"legacy-pkg===1.0-custom", "legacy-pkg", []types.Specifier{{Op: types.SpecifierOpArbEq, Version: "1.0-custom"}}},
		{"numpy==1.26.*", "numpy", []types.Specifier{{Op: types.SpecifierOpEq, Version: "1.26.*"}}},
	}

	for _, tt := range tests {
		req, err := ParseRequirement(tt.raw, "test", 1)
		require.NoError(t, err, tt.raw)
		if diff := cmp.Diff(tt.name, req.Name); diff != "" {
			t.Fatalf("unexpected name (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(tt.specifiers, req.Specifiers); diff != "" {
			t.Fatalf("unexpected specifiers for %q (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestParseRequirementNormalizesName(t *testing.T) {
	req, err := ParseRequirement("Python_DotEnv==1.0.1", "test", 3)
	require.NoError(t, err)
	assert.Equal(t, "python-dotenv", req.Name)
	assert.Equal(t, "Python_DotEnv", req.RawName)
	assert.Equal(t, 3, req.Line)
	assert.Equal(t, "test", req.Source)
}

func TestParseRequirementExtras(t *testing.T) {
	req, err := ParseRequirement("uvicorn[Standard,watchfiles]>=0.23", "test", 1)
	require.NoError(t, err)
	assert.Equal(t, "uvicorn", req.Name)
	assert.Equal(t, []string{"standard", "watchfiles"}, req.Extras)
}

func TestParseRequirementMarker(t *testing.T) {
	req, err := ParseRequirement(`pywin32>=300 ; sys_platform == "win32"`, "test", 1)
	require.NoError(t, err)
	assert.Equal(t, "pywin32", req.Name)
	assert.Equal(t, `sys_platform == "win32"`, req.Marker)
}

func TestParseRequirementMalformed(t *testing.T) {
	tests := []string{
		"",
		"==1.0",
		"pkg==",
		"pkg>=1.0,,<2",
		"pkg[extra>=1.0",
		"pkg>=1.0;",
		"; python_version > \"3\"",
		"pkg~~1.0",
		"pkg>=1.*",
	}
	for _, raw := range tests {
		_, err := ParseRequirement(raw, "test", 7)
		require.Error(t, err, "expected error for %q", raw)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err), raw)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		raw   string
		class types.ConstraintClass
	}{
		{"boto3==1.37.37", types.ConstraintClassPinned},
		{"langchain~=0.3.0", types.ConstraintClassCompatible},
		{"pydantic>=2,<3", types.ConstraintClassBounded},
		{"numpy==1.26.*", types.ConstraintClassBounded},
		{"openai", types.ConstraintClassUnconstrained},
	}
	for _, tt := range tests {
		req, err := ParseRequirement(tt.raw, "test", 1)
		require.NoError(t, err)
		assert.Equal(t, tt.class, Classify(req), tt.raw)
	}
}
