package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"pyreq/internal/core"
	"pyreq/internal/types"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	in, err := s.loadInputs(ctx, req.ProjectPath, req.Manifests)
	if err != nil {
		return InspectResult{}, err
	}
	manifests, err := s.loadManifests(in.Paths)
	if err != nil {
		return InspectResult{}, err
	}
	merged := core.MergeManifests(manifests)

	byClass := map[types.ConstraintClass][]string{}
	for _, r := range merged {
		class := core.Classify(r)
		byClass[class] = append(byClass[class], r.Name)
	}
	var classes []ClassSummary
	for _, class := range []types.ConstraintClass{
		types.ConstraintClassPinned,
		types.ConstraintClassCompatible,
		types.ConstraintClassBounded,
		types.ConstraintClassUnconstrained,
	} {
		packages := byClass[class]
		if len(packages) == 0 {
			continue
		}
		sort.Strings(packages)
		classes = append(classes, ClassSummary{
			Class:    class,
			Count:    len(packages),
			Packages: packages,
		})
	}

	var duplicates []string
	for _, dup := range core.FindDuplicates(merged) {
		kind := "identical"
		if dup.Conflicting {
			kind = "conflicting"
		}
		duplicates = append(duplicates, fmt.Sprintf("%s (%s:%d and %s:%d, %s)",
			dup.Name, dup.First.Source, dup.First.Line, dup.Second.Source, dup.Second.Line, kind))
	}

	var includes []string
	for _, manifest := range manifests {
		includes = append(includes, manifest.Includes...)
	}

	result := InspectResult{
		RequirementCount: len(merged),
		Classes:          classes,
		Duplicates:       duplicates,
		Includes:         includes,
	}

	if lockDir := strings.TrimSpace(req.LockDir); lockDir != "" {
		entries, err := s.LockReader.ReadLock(filepath.Join(lockDir, "requirements.lock"))
		if err != nil {
			return InspectResult{}, err
		}
		intent, err := s.LockReader.ReadLockIntent(filepath.Join(lockDir, "lock.intent"))
		if err != nil {
			return InspectResult{}, err
		}
		result.LockCount = len(entries)
		result.LockID = intent.LockID
	}
	return result, nil
}
