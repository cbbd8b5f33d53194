package ports

import "pyreq/internal/types"

// ManifestPort loads a requirements file, resolving -r includes
// relative to the including file.
type ManifestPort interface {
	LoadManifest(path string) (types.Manifest, error)
}

type ManifestWriterPort interface {
	WriteManifest(path string, manifest types.Manifest) error
}
