package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pyreq/internal/ports"
	"pyreq/internal/types"
)

type SpecFileAdapter struct{}

func NewSpecFileAdapter() SpecFileAdapter {
	return SpecFileAdapter{}
}

func (a SpecFileAdapter) LoadProject(path string) (types.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Spec{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("spec file not found").
			WithCause(err)
	}
	var spec types.Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return types.Spec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse spec yaml").
			WithCause(err)
	}
	if spec.Kind != types.SpecKindProject {
		return types.Spec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("spec kind is not project")
	}
	return spec, nil
}

var _ ports.ProjectSpecPort = SpecFileAdapter{}
