package app

import (
	"pyreq/internal/core"
	"pyreq/internal/types"
)

type ValidateRequest struct {
	ProjectPath string
	Manifests   []string
}

type ValidateResult struct {
	ProjectName      string
	ManifestCount    int
	RequirementCount int
	Deduped          int
}

type InspectRequest struct {
	ProjectPath string
	Manifests   []string
	LockDir     string
}

type ClassSummary struct {
	Class    types.ConstraintClass
	Count    int
	Packages []string
}

type InspectResult struct {
	RequirementCount int
	Classes          []ClassSummary
	Duplicates       []string
	Includes         []string
	LockCount        int
	LockID           string
}

type DiffRequest struct {
	BeforePath string
	AfterPath  string
	LockPath   string
}

type DiffResult struct {
	Equal   bool
	Added   []string
	Removed []string
	Changed []core.DiffChange
}

type FormatRequest struct {
	ManifestPath string
	OutputPath   string
	Write        bool
}

type FormatResult struct {
	Formatted  string
	OutputPath string
}

type LockRequest struct {
	ProjectPath string
	Manifests   []string
	Index       string
	OutputDir   string
	LockID      string
}

type LockResult struct {
	ProjectName string
	LockID      string
	OutputDir   string
	Count       int
}

type IndexRequest struct {
	Output           string
	IndexURL         string
	User             string
	APIKey           string
	Packages         []string
	Max              int
	Workers          int
	HTTPTimeoutSec   int
	HTTPRetries      int
	HTTPRetryDelayMs int
}

type IndexResult struct {
	OutputPath   string
	PackageCount int
}
