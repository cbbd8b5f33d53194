package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pyreq/internal/adapters"
	"pyreq/internal/app"
	"pyreq/internal/core"
	"pyreq/internal/types"
)

// TestProjectValidateFlow exercises the project-spec workflow:
//
//	write spec -> load -> validate spec -> load manifests -> validate
//
// This verifies the full pipeline a user follows after describing their
// manifests in a project.yaml.
func TestProjectValidateFlow(t *testing.T) {
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifestPath, []byte(
		"langchain~=0.3.0\nboto3==1.37.37\nopenai\n"), 0644))

	projectContent := `
api_version: "v1"
kind: "project"
metadata:
  name: "flow-test"
  version: "0.1.0"
  owners:
    - "ci"

defaults:
  output: "out"

manifests:
  - path: "` + manifestPath + `"
    scope: "runtime"

policy:
  duplicates: "error"
  forbid_unconstrained: false
`
	projectPath := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(projectPath, []byte(projectContent), 0644))

	specAdapter := adapters.NewSpecFileAdapter()
	spec, err := specAdapter.LoadProject(projectPath)
	require.NoError(t, err)

	assert.Equal(t, types.SpecKindProject, spec.Kind)
	assert.Equal(t, "flow-test", spec.Metadata.Name)
	assert.Equal(t, "out", spec.Defaults.Output)
	require.Len(t, spec.Manifests, 1)
	assert.Equal(t, "runtime", spec.Manifests[0].Scope)

	compiler := core.NewSpecCompiler()
	require.NoError(t, compiler.ValidateSpec(t.Context(), spec))

	result, err := app.NewService().Validate(t.Context(), app.ValidateRequest{
		ProjectPath: projectPath,
	})
	require.NoError(t, err)
	assert.Equal(t, "flow-test", result.ProjectName)
	assert.Equal(t, 3, result.RequirementCount)
}

// TestProjectValidateEnforcesPolicy verifies that pin policies declared
// in the project spec fail validation with the policy error code.
func TestProjectValidateEnforcesPolicy(t *testing.T) {
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "requirements.txt")
	require.NoError(t, os.WriteFile(manifestPath, []byte(
		"boto3==1.37.37\nopenai\n"), 0644))

	projectContent := `
api_version: "v1"
kind: "project"
metadata:
  name: "policy-test"
  version: "0.1.0"
  owners:
    - "ci"

manifests:
  - path: "` + manifestPath + `"

policy:
  require_pins: true
`
	projectPath := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(projectPath, []byte(projectContent), 0644))

	_, err := app.NewService().Validate(t.Context(), app.ValidateRequest{
		ProjectPath: projectPath,
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodePermissionDenied, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "openai")
}
