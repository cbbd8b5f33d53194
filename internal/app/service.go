package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pyreq/internal/adapters"
	"pyreq/internal/core"
	"pyreq/internal/ports"
	"pyreq/internal/types"
)

type Service struct {
	SpecLoader     ports.ProjectSpecPort
	Manifests      ports.ManifestPort
	ManifestWriter ports.ManifestWriterPort
	LockReader     ports.LockReaderPort
	IndexBuilder   ports.IndexBuilderPort
	IndexWriter    ports.IndexWriterPort
	Clock          func() time.Time
	NewLockID      func() string
}

func NewService() Service {
	manifests := adapters.NewManifestFileAdapter()
	return Service{
		SpecLoader:     adapters.NewSpecFileAdapter(),
		Manifests:      manifests,
		ManifestWriter: manifests,
		LockReader:     adapters.NewLockReaderAdapter(),
		IndexBuilder:   adapters.NewPyPIIndexBuilderAdapter(),
		IndexWriter:    adapters.NewIndexWriterAdapter(),
		Clock:          time.Now,
		NewLockID:      uuid.NewString,
	}
}

// inputs is the common material every command works from: the manifest
// paths to read plus project-level policy and defaults when a project
// spec was given.
type inputs struct {
	ProjectName string
	Paths       []string
	Policy      types.LintPolicy
	Defaults    types.SpecDefaults
}

// loadInputs resolves a project spec path or an explicit manifest list
// into the set of manifests to operate on. Exactly one of the two must
// be provided; the project spec is validated before use.
func (s Service) loadInputs(ctx context.Context, projectPath string, manifests []string) (inputs, error) {
	projectPath = strings.TrimSpace(projectPath)
	if projectPath == "" {
		if err := core.RequireNonEmpty(manifests); err != nil {
			return inputs{}, err
		}
		return inputs{Paths: manifests}, nil
	}
	spec, err := s.SpecLoader.LoadProject(projectPath)
	if err != nil {
		return inputs{}, err
	}
	if err := core.NewSpecCompiler().ValidateSpec(ctx, spec); err != nil {
		return inputs{}, err
	}
	var paths []string
	for _, ref := range spec.Manifests {
		paths = append(paths, ref.Path)
	}
	return inputs{
		ProjectName: spec.Metadata.Name,
		Paths:       paths,
		Policy:      spec.Policy,
		Defaults:    spec.Defaults,
	}, nil
}

// loadManifests parses every input manifest, includes resolved.
func (s Service) loadManifests(paths []string) ([]types.Manifest, error) {
	var out []types.Manifest
	for _, path := range paths {
		manifest, err := s.Manifests.LoadManifest(path)
		if err != nil {
			return nil, err
		}
		out = append(out, manifest)
	}
	return out, nil
}
