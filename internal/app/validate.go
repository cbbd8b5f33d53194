package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"pyreq/internal/core"
	"pyreq/internal/policies"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	in, err := s.loadInputs(ctx, req.ProjectPath, req.Manifests)
	if err != nil {
		return ValidateResult{}, err
	}
	manifests, err := s.loadManifests(in.Paths)
	if err != nil {
		return ValidateResult{}, err
	}
	merged := core.MergeManifests(manifests)

	deduped := 0
	switch policies.NormalizeDuplicatesAction(in.Policy.Duplicates) {
	case policies.DuplicatesDedupe:
		kept, dropped, err := core.Dedupe(merged)
		if err != nil {
			return ValidateResult{}, err
		}
		merged = kept
		deduped = dropped
	default:
		if dups := core.FindDuplicates(merged); len(dups) > 0 {
			return ValidateResult{}, core.DuplicateError(dups[0])
		}
	}

	if err := policies.CheckPins(merged, in.Policy); err != nil {
		return ValidateResult{}, err
	}

	log.Ctx(ctx).Debug().
		Int("manifests", len(manifests)).
		Int("requirements", len(merged)).
		Msg("manifests validated")
	return ValidateResult{
		ProjectName:      in.ProjectName,
		ManifestCount:    len(manifests),
		RequirementCount: len(merged),
		Deduped:          deduped,
	}, nil
}
