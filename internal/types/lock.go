package types

type LockEntry struct {
	Name    string
	Version string
}

// LockIntent records the provenance of a lock run: which manifests were
// locked against which index, and when.
type LockIntent struct {
	LockID    string
	CreatedAt string
	Index     string
	Manifests []string
}
