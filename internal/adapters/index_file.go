package adapters

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"pyreq/internal/ports"
	"pyreq/internal/shared"
	"pyreq/internal/types"
)

// IndexFileAdapter serves version queries from a yaml index file. The
// file is loaded lazily on first query and cached.
type IndexFileAdapter struct {
	Path string

	once  sync.Once
	index types.PackageIndexFile
	err   error
}

func NewIndexFileAdapter(path string) *IndexFileAdapter {
	return &IndexFileAdapter{Path: path}
}

func (a *IndexFileAdapter) AvailableVersions(name string) ([]string, error) {
	a.once.Do(a.loadFile)
	if a.err != nil {
		return nil, a.err
	}
	versions := a.index.Packages[shared.NormalizePipName(name)]
	out := append([]string(nil), versions...)
	return out, nil
}

func (a *IndexFileAdapter) loadFile() {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		a.err = errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("index file not found").
			WithCause(err)
		return
	}
	var index types.PackageIndexFile
	if err := yaml.Unmarshal(data, &index); err != nil {
		a.err = errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse index yaml").
			WithCause(err)
		return
	}
	// Normalize keys so lookups are spelling-insensitive.
	normalized := map[string][]string{}
	for name, versions := range index.Packages {
		normalized[shared.NormalizePipName(name)] = versions
	}
	a.index = types.PackageIndexFile{Packages: normalized}
}

type IndexWriterAdapter struct{}

func NewIndexWriterAdapter() IndexWriterAdapter {
	return IndexWriterAdapter{}
}

func (a IndexWriterAdapter) Write(path string, index types.PackageIndexFile) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is required")
	}
	data, err := yaml.Marshal(index)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal index").
			WithCause(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create index directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write index").
			WithCause(err)
	}
	return nil
}

var _ ports.PackageIndexPort = (*IndexFileAdapter)(nil)
var _ ports.IndexWriterPort = IndexWriterAdapter{}
