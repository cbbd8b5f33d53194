package ports

import (
	"context"

	"pyreq/internal/types"
)

// PackageIndexPort answers version queries against a package index.
// Names are PEP 503 normalized before lookup.
type PackageIndexPort interface {
	AvailableVersions(name string) ([]string, error)
}

type IndexBuildRequest struct {
	IndexURL         string
	User             string
	APIKey           string
	Packages         []string
	Max              int
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type IndexBuilderPort interface {
	Build(ctx context.Context, request IndexBuildRequest) (types.PackageIndexFile, error)
}

type IndexWriterPort interface {
	Write(path string, index types.PackageIndexFile) error
}
