package app

import (
	"context"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pyreq/internal/adapters"
	"pyreq/internal/core"
	"pyreq/internal/types"
)

func (s Service) Lock(ctx context.Context, req LockRequest) (LockResult, error) {
	in, err := s.loadInputs(ctx, req.ProjectPath, req.Manifests)
	if err != nil {
		return LockResult{}, err
	}

	indexPath := strings.TrimSpace(req.Index)
	if indexPath == "" {
		indexPath = strings.TrimSpace(in.Defaults.Index)
	}
	if indexPath == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("index file is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		outputDir = strings.TrimSpace(in.Defaults.Output)
	}
	if outputDir == "" {
		return LockResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}

	manifests, err := s.loadManifests(in.Paths)
	if err != nil {
		return LockResult{}, err
	}
	merged, _, err := core.Dedupe(core.MergeManifests(manifests))
	if err != nil {
		return LockResult{}, err
	}

	index := adapters.NewIndexFileAdapter(indexPath)
	var entries []types.LockEntry
	for _, r := range merged {
		available, err := index.AvailableVersions(r.Name)
		if err != nil {
			return LockResult{}, err
		}
		version, err := core.BestCompatibleVersion(r, available)
		if err != nil {
			return LockResult{}, err
		}
		entries = append(entries, types.LockEntry{Name: r.Name, Version: version})
	}

	lockID := strings.TrimSpace(req.LockID)
	if lockID == "" {
		lockID = s.NewLockID()
	}
	output := adapters.NewLockFileAdapter(outputDir)
	if err := output.WriteLock(entries); err != nil {
		return LockResult{}, err
	}
	intent := types.LockIntent{
		LockID:    lockID,
		CreatedAt: s.Clock().UTC().Format(time.RFC3339),
		Index:     indexPath,
		Manifests: in.Paths,
	}
	if err := output.WriteLockIntent(intent); err != nil {
		return LockResult{}, err
	}

	log.Ctx(ctx).Debug().
		Str("lock_id", lockID).
		Int("entries", len(entries)).
		Msg("lock completed")
	return LockResult{
		ProjectName: in.ProjectName,
		LockID:      lockID,
		OutputDir:   outputDir,
		Count:       len(entries),
	}, nil
}
