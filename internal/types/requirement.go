package types

// Specifier is a single version clause, e.g. ">=2" or "~=0.3.0".
// Version is kept verbatim as written in the manifest.
type Specifier struct {
	Op      SpecifierOp
	Version string
}

// Requirement is one dependency declaration parsed from a manifest line.
// Name holds the PEP 503 normalized form; RawName preserves the original
// spelling for display and re-serialization.
type Requirement struct {
	Name       string
	RawName    string
	Extras     []string
	Specifiers []Specifier
	Marker     string
	Source     string
	Line       int
	Raw        string
}

// Manifest is a fully parsed requirements file, with -r includes already
// flattened into Requirements. Includes lists the resolved include paths
// for provenance reporting.
type Manifest struct {
	Path         string
	IndexURL     string
	Includes     []string
	Requirements []Requirement
}
