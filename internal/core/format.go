package core

import (
	"strings"

	"pyreq/internal/types"
)

// FormatSpecifiers renders a specifier set back into the comma-separated
// clause form, version strings verbatim.
func FormatSpecifiers(specifiers []types.Specifier) string {
	var clauses []string
	for _, specifier := range specifiers {
		clauses = append(clauses, string(specifier.Op)+specifier.Version)
	}
	return strings.Join(clauses, ",")
}

// FormatRequirement renders the canonical single-line form of a
// declaration: normalized name, sorted extras, specifiers in declaration
// order, marker last. Parsing the result yields an equivalent
// requirement.
func FormatRequirement(req types.Requirement) string {
	var sb strings.Builder
	sb.WriteString(req.Name)
	if len(req.Extras) > 0 {
		sb.WriteString("[")
		sb.WriteString(strings.Join(req.Extras, ","))
		sb.WriteString("]")
	}
	if len(req.Specifiers) > 0 {
		sb.WriteString(FormatSpecifiers(req.Specifiers))
	}
	if req.Marker != "" {
		sb.WriteString(" ; ")
		sb.WriteString(req.Marker)
	}
	return sb.String()
}

// FormatManifest serializes a manifest in canonical form, declaration
// order preserved. The output ends with a trailing newline when any
// content is present.
func FormatManifest(manifest types.Manifest) string {
	var lines []string
	if manifest.IndexURL != "" {
		lines = append(lines, "--index-url "+manifest.IndexURL)
	}
	for _, req := range manifest.Requirements {
		lines = append(lines, FormatRequirement(req))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
