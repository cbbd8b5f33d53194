package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyreq/internal/core"
)

// Format renders a manifest in canonical form. With Write set the result
// is written to OutputPath (or back to the source file when OutputPath
// is empty). Includes are flattened into the output.
func (s Service) Format(ctx context.Context, req FormatRequest) (FormatResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return FormatResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	manifest, err := s.Manifests.LoadManifest(manifestPath)
	if err != nil {
		return FormatResult{}, err
	}
	formatted := core.FormatManifest(manifest)

	result := FormatResult{Formatted: formatted}
	if req.Write {
		outputPath := strings.TrimSpace(req.OutputPath)
		if outputPath == "" {
			outputPath = manifestPath
		}
		if err := s.ManifestWriter.WriteManifest(outputPath, manifest); err != nil {
			return FormatResult{}, err
		}
		result.OutputPath = outputPath
	}
	return result, nil
}
