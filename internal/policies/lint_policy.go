package policies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyreq/internal/types"
)

const (
	DuplicatesError  = "error"
	DuplicatesDedupe = "dedupe"
)

// NormalizeDuplicatesAction maps the spec value onto a known action,
// defaulting to error.
func NormalizeDuplicatesAction(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case DuplicatesDedupe:
		return DuplicatesDedupe
	default:
		return DuplicatesError
	}
}

// CheckPins enforces the pinning rules of a lint policy: require_pins
// demands an exact pin on every requirement, forbid_unconstrained
// rejects bare names. Violations are reported together.
func CheckPins(reqs []types.Requirement, policy types.LintPolicy) error {
	var unpinned []string
	var unconstrained []string
	for _, req := range reqs {
		if policy.RequirePins && !isPinned(req) {
			unpinned = append(unpinned, req.Name)
		}
		if policy.ForbidUnconstrained && len(req.Specifiers) == 0 {
			unconstrained = append(unconstrained, req.Name)
		}
	}
	if len(unpinned) > 0 {
		sort.Strings(unpinned)
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("policy requires exact pins: %s", strings.Join(unpinned, ", ")))
	}
	if len(unconstrained) > 0 {
		sort.Strings(unconstrained)
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("policy forbids unconstrained requirements: %s", strings.Join(unconstrained, ", ")))
	}
	return nil
}

func isPinned(req types.Requirement) bool {
	for _, specifier := range req.Specifiers {
		if specifier.Op != types.SpecifierOpEq && specifier.Op != types.SpecifierOpArbEq {
			continue
		}
		if !strings.Contains(specifier.Version, "*") {
			return true
		}
	}
	return false
}
