package adapters

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyreq/internal/core"
	"pyreq/internal/ports"
	"pyreq/internal/types"
)

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

// LoadManifest reads and parses a requirements file. Includes referenced
// with -r are loaded recursively, paths resolved relative to the
// including file, with cycle detection. Included requirements are
// appended after the including file's own declarations; an included
// file's index URL only applies when the parent did not set one.
func (a ManifestFileAdapter) LoadManifest(path string) (types.Manifest, error) {
	visited := map[string]struct{}{}
	return a.load(path, visited)
}

func (a ManifestFileAdapter) load(path string, visited map[string]struct{}) (types.Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to resolve manifest path").
			WithCause(err)
	}
	if _, ok := visited[abs]; ok {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("circular include: %s", path))
	}
	visited[abs] = struct{}{}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("manifest not found: %s", path)).
			WithCause(err)
	}
	manifest, err := core.ParseManifestContent(string(data), path)
	if err != nil {
		return types.Manifest{}, err
	}

	includes := manifest.Includes
	manifest.Includes = nil
	for _, include := range includes {
		includePath := include
		if !filepath.IsAbs(includePath) {
			includePath = filepath.Join(filepath.Dir(path), include)
		}
		included, err := a.load(includePath, visited)
		if err != nil {
			return types.Manifest{}, err
		}
		manifest.Includes = append(manifest.Includes, includePath)
		manifest.Includes = append(manifest.Includes, included.Includes...)
		manifest.Requirements = append(manifest.Requirements, included.Requirements...)
		if manifest.IndexURL == "" {
			manifest.IndexURL = included.IndexURL
		}
	}
	return manifest, nil
}

// WriteManifest serializes a manifest in canonical form.
func (a ManifestFileAdapter) WriteManifest(path string, manifest types.Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create manifest directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, []byte(core.FormatManifest(manifest)), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write manifest").
			WithCause(err)
	}
	return nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
var _ ports.ManifestWriterPort = ManifestFileAdapter{}
