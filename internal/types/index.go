package types

// PackageIndexFile is the on-disk package-version index consumed by the
// lock operation. Keys are PEP 503 normalized package names; values are
// the known released versions, newest last.
type PackageIndexFile struct {
	Packages map[string][]string `yaml:"packages"`
}
