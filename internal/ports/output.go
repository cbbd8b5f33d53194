package ports

import "pyreq/internal/types"

// LockOutputPort writes the artifacts of a lock run into an output
// directory: requirements.lock and lock.intent.
type LockOutputPort interface {
	WriteLock(entries []types.LockEntry) error
	WriteLockIntent(intent types.LockIntent) error
}

type LockReaderPort interface {
	ReadLock(path string) ([]types.LockEntry, error)
	ReadLockIntent(path string) (types.LockIntent, error)
}
