package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pyreq/internal/policies"
	"pyreq/internal/types"
)

type SpecCompiler struct{}

var validManifestScopes = map[string]struct{}{
	"runtime": {},
	"dev":     {},
	"test":    {},
	"doc":     {},
}

func NewSpecCompiler() SpecCompiler {
	return SpecCompiler{}
}

// ValidateSpec checks a project spec for structural problems before any
// manifest is read.
func (c SpecCompiler) ValidateSpec(ctx context.Context, spec types.Spec) error {
	assert.NotEmpty(ctx, spec.APIVersion, "api_version must be set")
	assert.NotEmpty(ctx, string(spec.Kind), "kind must be set")
	assert.NotEmpty(ctx, spec.Metadata.Name, "metadata.name must be set")
	assert.NotEmpty(ctx, spec.Metadata.Version, "metadata.version must be set")
	if spec.Kind != types.SpecKindProject {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("spec kind must be project")
	}
	if len(spec.Metadata.Owners) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata.owners must not be empty")
	}
	if len(spec.Manifests) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project spec must list at least one manifest")
	}
	seen := map[string]struct{}{}
	for _, ref := range spec.Manifests {
		if err := validateManifestRef(ref); err != nil {
			return err
		}
		if _, ok := seen[ref.Path]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("manifest listed twice: %s", ref.Path))
		}
		seen[ref.Path] = struct{}{}
	}
	if err := validatePolicy(spec.Policy); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("spec", spec.Metadata.Name).Msg("spec validated")
	return nil
}

func validateManifestRef(ref types.ManifestRef) error {
	if strings.TrimSpace(ref.Path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifests.path must not be empty")
	}
	if ref.Scope == "" {
		return nil
	}
	if _, ok := validManifestScopes[ref.Scope]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("manifest %s has invalid scope %s", ref.Path, ref.Scope))
	}
	return nil
}

func validatePolicy(policy types.LintPolicy) error {
	switch strings.ToLower(strings.TrimSpace(policy.Duplicates)) {
	case "", policies.DuplicatesError, policies.DuplicatesDedupe:
		return nil
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("policy has invalid duplicates action: %s", policy.Duplicates))
	}
}
