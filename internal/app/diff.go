package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyreq/internal/core"
	"pyreq/internal/types"
)

func (s Service) Diff(ctx context.Context, req DiffRequest) (DiffResult, error) {
	beforePath := strings.TrimSpace(req.BeforePath)
	if beforePath == "" {
		return DiffResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("diff requires a base manifest path")
	}
	before, err := s.Manifests.LoadManifest(beforePath)
	if err != nil {
		return DiffResult{}, err
	}

	var after []types.Requirement
	lockPath := strings.TrimSpace(req.LockPath)
	afterPath := strings.TrimSpace(req.AfterPath)
	switch {
	case lockPath != "":
		entries, err := s.LockReader.ReadLock(lockPath)
		if err != nil {
			return DiffResult{}, err
		}
		after = core.LockToRequirements(entries, lockPath)
	case afterPath != "":
		manifest, err := s.Manifests.LoadManifest(afterPath)
		if err != nil {
			return DiffResult{}, err
		}
		after = manifest.Requirements
	default:
		return DiffResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("diff requires a second manifest or a lock file")
	}

	diff := core.CompareRequirements(before.Requirements, after)
	result := DiffResult{
		Equal:   diff.Empty(),
		Changed: diff.Changed,
	}
	for _, r := range diff.Added {
		result.Added = append(result.Added, core.FormatRequirement(r))
	}
	for _, r := range diff.Removed {
		result.Removed = append(result.Removed, core.FormatRequirement(r))
	}
	return result, nil
}
