package types

type Metadata struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Owners      []string `yaml:"owners"`
	Description string   `yaml:"description,omitempty"`
}

// SpecDefaults provides project-level defaults that the CLI and
// application layer use when a value is not explicitly provided via
// flags or environment variables.
type SpecDefaults struct {
	Index  string `yaml:"index,omitempty"`
	Output string `yaml:"output,omitempty"`
}

type ManifestRef struct {
	Path  string `yaml:"path"`
	Scope string `yaml:"scope,omitempty"`
}

// LintPolicy configures how validate treats manifests beyond the base
// grammar. Duplicates defaults to "error"; "dedupe" collapses entries
// whose constraints are identical. Conflicting duplicates always fail.
type LintPolicy struct {
	Duplicates          string `yaml:"duplicates,omitempty"`
	RequirePins         bool   `yaml:"require_pins,omitempty"`
	ForbidUnconstrained bool   `yaml:"forbid_unconstrained,omitempty"`
}

type Spec struct {
	APIVersion string        `yaml:"api_version"`
	Kind       SpecKind      `yaml:"kind"`
	Metadata   Metadata      `yaml:"metadata"`
	Defaults   SpecDefaults  `yaml:"defaults,omitempty"`
	Manifests  []ManifestRef `yaml:"manifests"`
	Policy     LintPolicy    `yaml:"policy,omitempty"`
}
