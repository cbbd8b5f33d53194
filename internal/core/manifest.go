package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyreq/internal/types"
)

// ParseManifestContent parses the text of one requirements file. Comments
// (full-line and inline) and blank lines are discarded, backslash
// continuations are joined, and -r include references are collected on
// the returned manifest for the caller to resolve. The parser never
// touches the filesystem.
func ParseManifestContent(content string, source string) (types.Manifest, error) {
	manifest := types.Manifest{Path: source}

	lines := strings.Split(content, "\n")
	for i := 0; i < len(lines); i++ {
		lineNo := i + 1
		logical := strings.TrimRight(lines[i], "\r")
		for strings.HasSuffix(strings.TrimSpace(logical), "\\") && i+1 < len(lines) {
			trimmed := strings.TrimSpace(logical)
			logical = trimmed[:len(trimmed)-1] + " " + strings.TrimRight(lines[i+1], "\r")
			i++
		}

		stripped := stripComment(logical)
		if strings.TrimSpace(stripped) == "" {
			continue
		}
		trimmed := strings.TrimSpace(stripped)

		if strings.HasPrefix(trimmed, "-") {
			if err := parseOption(&manifest, trimmed, source, lineNo); err != nil {
				return types.Manifest{}, err
			}
			continue
		}

		req, err := ParseRequirement(trimmed, source, lineNo)
		if err != nil {
			return types.Manifest{}, err
		}
		manifest.Requirements = append(manifest.Requirements, req)
	}
	return manifest, nil
}

// parseOption handles the option lines a manifest may carry: -r includes
// and index URL selection. Anything else starting with a dash is
// rejected as malformed.
func parseOption(manifest *types.Manifest, line string, source string, lineNo int) error {
	fields := strings.Fields(line)
	option := fields[0]

	value := ""
	if idx := strings.Index(option, "="); idx >= 0 && strings.HasPrefix(option, "--") {
		value = option[idx+1:]
		option = option[:idx]
	} else if len(fields) > 1 {
		value = strings.Join(fields[1:], " ")
	}
	value = strings.TrimSpace(value)

	switch option {
	case "-r", "--requirement":
		if value == "" {
			return malformedLine(source, lineNo, line, "include without path")
		}
		manifest.Includes = append(manifest.Includes, value)
		return nil
	case "-i", "--index-url":
		if value == "" {
			return malformedLine(source, lineNo, line, "index url without value")
		}
		manifest.IndexURL = value
		return nil
	default:
		return malformedLine(source, lineNo, line, fmt.Sprintf("unsupported option: %s", option))
	}
}

// stripComment removes a trailing comment. A hash starts a comment when
// it is the first non-blank character or is preceded by whitespace;
// hashes embedded in URLs or version strings are left alone.
func stripComment(line string) string {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return ""
	}
	for idx := 0; idx < len(line); idx++ {
		if line[idx] != '#' {
			continue
		}
		if idx > 0 && (line[idx-1] == ' ' || line[idx-1] == '\t') {
			return line[:idx]
		}
	}
	return line
}

// MergeManifests flattens several parsed manifests into one requirement
// list, preserving declaration order across files.
func MergeManifests(manifests []types.Manifest) []types.Requirement {
	var out []types.Requirement
	for _, manifest := range manifests {
		out = append(out, manifest.Requirements...)
	}
	return out
}

// RequireNonEmpty guards operations that need at least one manifest.
func RequireNonEmpty(paths []string) error {
	if len(paths) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one manifest path is required")
	}
	return nil
}
