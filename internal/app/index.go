package app

import (
	"context"
	"strings"

	"pyreq/internal/ports"
)

func (s Service) Index(ctx context.Context, req IndexRequest) (IndexResult, error) {
	buildRequest := ports.IndexBuildRequest{
		IndexURL:         strings.TrimSpace(req.IndexURL),
		User:             strings.TrimSpace(req.User),
		APIKey:           strings.TrimSpace(req.APIKey),
		Packages:         req.Packages,
		Max:              req.Max,
		Workers:          req.Workers,
		HTTPTimeoutSec:   req.HTTPTimeoutSec,
		HTTPRetries:      req.HTTPRetries,
		HTTPRetryDelayMs: req.HTTPRetryDelayMs,
	}
	index, err := s.IndexBuilder.Build(ctx, buildRequest)
	if err != nil {
		return IndexResult{}, err
	}
	if err := s.IndexWriter.Write(strings.TrimSpace(req.Output), index); err != nil {
		return IndexResult{}, err
	}
	return IndexResult{
		OutputPath:   strings.TrimSpace(req.Output),
		PackageCount: len(index.Packages),
	}, nil
}
