package ports

import "pyreq/internal/types"

type ProjectSpecPort interface {
	LoadProject(path string) (types.Spec, error)
}
