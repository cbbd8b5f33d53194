package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyreq/internal/shared"
	"pyreq/internal/types"
)

// opTokens is the ordered list of specifier operators tried during
// parsing. Longer tokens must precede shorter ones to avoid false matches
// (e.g. "===" before "==", ">=" before ">").
var opTokens = []types.SpecifierOp{
	types.SpecifierOpArbEq,
	types.SpecifierOpEq,
	types.SpecifierOpNe,
	types.SpecifierOpCompat,
	types.SpecifierOpGte,
	types.SpecifierOpLte,
	types.SpecifierOpGt,
	types.SpecifierOpLt,
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)
var versionPattern = regexp.MustCompile(`^[A-Za-z0-9.!+*_-]+$`)

// ParseRequirement parses one dependency declaration such as
// "uvicorn[standard]>=0.23,<1 ; python_version >= \"3.9\"". The comment
// part must already be stripped by the manifest parser. Version strings
// are kept verbatim; only the package name is normalized.
func ParseRequirement(raw string, source string, line int) (types.Requirement, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return types.Requirement{}, malformedLine(source, line, raw, "empty requirement")
	}

	spec := trimmed
	marker := ""
	if idx := strings.Index(trimmed, ";"); idx >= 0 {
		spec = strings.TrimSpace(trimmed[:idx])
		marker = strings.TrimSpace(trimmed[idx+1:])
		if spec == "" {
			return types.Requirement{}, malformedLine(source, line, raw, "marker without requirement")
		}
		if marker == "" {
			return types.Requirement{}, malformedLine(source, line, raw, "empty marker")
		}
	}

	namePart := spec
	specifierPart := ""
	if idx := strings.IndexAny(spec, "<>=!~"); idx >= 0 {
		namePart = strings.TrimSpace(spec[:idx])
		specifierPart = strings.TrimSpace(spec[idx:])
	}

	rawName, extras, err := splitExtras(namePart)
	if err != nil {
		return types.Requirement{}, malformedLine(source, line, raw, err.Error())
	}
	if !namePattern.MatchString(rawName) {
		return types.Requirement{}, malformedLine(source, line, raw, fmt.Sprintf("invalid package name: %s", rawName))
	}

	specifiers, err := parseSpecifiers(specifierPart)
	if err != nil {
		return types.Requirement{}, malformedLine(source, line, raw, err.Error())
	}

	return types.Requirement{
		Name:       shared.NormalizePipName(rawName),
		RawName:    rawName,
		Extras:     extras,
		Specifiers: specifiers,
		Marker:     marker,
		Source:     source,
		Line:       line,
		Raw:        trimmed,
	}, nil
}

// parseSpecifiers splits a comma-separated clause list such as
// ">=2,<3". An empty input yields no specifiers (an unconstrained
// declaration).
func parseSpecifiers(raw string) ([]types.Specifier, error) {
	if raw == "" {
		return nil, nil
	}
	var out []types.Specifier
	for _, clause := range strings.Split(raw, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			return nil, fmt.Errorf("empty specifier clause")
		}
		specifier, err := parseSpecifier(clause)
		if err != nil {
			return nil, err
		}
		out = append(out, specifier)
	}
	return out, nil
}

func parseSpecifier(clause string) (types.Specifier, error) {
	for _, op := range opTokens {
		if strings.HasPrefix(clause, string(op)) {
			version := strings.TrimSpace(clause[len(op):])
			if version == "" {
				return types.Specifier{}, fmt.Errorf("missing version after %s", op)
			}
			if !versionPattern.MatchString(version) {
				return types.Specifier{}, fmt.Errorf("invalid version: %s", version)
			}
			if op != types.SpecifierOpEq && op != types.SpecifierOpArbEq && strings.Contains(version, "*") {
				return types.Specifier{}, fmt.Errorf("wildcard version requires ==: %s%s", op, version)
			}
			return types.Specifier{Op: op, Version: version}, nil
		}
	}
	return types.Specifier{}, fmt.Errorf("unrecognized specifier: %s", clause)
}

func splitExtras(namePart string) (string, []string, error) {
	open := strings.Index(namePart, "[")
	if open < 0 {
		return namePart, nil, nil
	}
	if !strings.HasSuffix(namePart, "]") {
		return "", nil, fmt.Errorf("unterminated extras: %s", namePart)
	}
	name := strings.TrimSpace(namePart[:open])
	inner := namePart[open+1 : len(namePart)-1]
	var extras []string
	for _, extra := range strings.Split(inner, ",") {
		extra = strings.TrimSpace(extra)
		if extra == "" {
			return "", nil, fmt.Errorf("empty extra in: %s", namePart)
		}
		if !namePattern.MatchString(extra) {
			return "", nil, fmt.Errorf("invalid extra: %s", extra)
		}
		extras = append(extras, shared.NormalizePipName(extra))
	}
	sort.Strings(extras)
	return name, extras, nil
}

// Classify buckets a requirement by the strictness of its specifiers.
func Classify(req types.Requirement) types.ConstraintClass {
	if len(req.Specifiers) == 0 {
		return types.ConstraintClassUnconstrained
	}
	for _, specifier := range req.Specifiers {
		switch specifier.Op {
		case types.SpecifierOpEq, types.SpecifierOpArbEq:
			if !strings.Contains(specifier.Version, "*") {
				return types.ConstraintClassPinned
			}
		case types.SpecifierOpCompat:
			return types.ConstraintClassCompatible
		}
	}
	return types.ConstraintClassBounded
}

func malformedLine(source string, line int, raw string, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("malformed line %s:%d: %s (%s)", source, line, strings.TrimSpace(raw), reason))
}
