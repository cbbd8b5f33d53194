package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyreq/internal/ports"
	"pyreq/internal/types"
)

// LockFileAdapter writes lock artifacts into a fixed output directory:
// requirements.lock with sorted name==version lines and lock.intent with
// key=value provenance.
type LockFileAdapter struct {
	Dir string
}

func NewLockFileAdapter(dir string) LockFileAdapter {
	return LockFileAdapter{Dir: dir}
}

func (a LockFileAdapter) WriteLock(entries []types.LockEntry) error {
	path, err := a.ensurePath("requirements.lock")
	if err != nil {
		return err
	}
	ordered := append([]types.LockEntry(nil), entries...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})
	var lines []string
	for _, entry := range ordered {
		lines = append(lines, fmt.Sprintf("%s==%s", entry.Name, entry.Version))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

func (a LockFileAdapter) WriteLockIntent(intent types.LockIntent) error {
	path, err := a.ensurePath("lock.intent")
	if err != nil {
		return err
	}
	content := fmt.Sprintf(
		"lock_id=%s\ncreated_at=%s\nindex=%s\nmanifests=%s\n",
		intent.LockID,
		intent.CreatedAt,
		intent.Index,
		strings.Join(intent.Manifests, ","),
	)
	return os.WriteFile(path, []byte(content), 0644)
}

func (a LockFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

type LockReaderAdapter struct{}

func NewLockReaderAdapter() LockReaderAdapter {
	return LockReaderAdapter{}
}

func (a LockReaderAdapter) ReadLock(path string) ([]types.LockEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("requirements.lock not found").
			WithCause(err)
	}
	var entries []types.LockEntry
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "==", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid requirements.lock format")
		}
		entries = append(entries, types.LockEntry{
			Name:    strings.TrimSpace(parts[0]),
			Version: strings.TrimSpace(parts[1]),
		})
	}
	return entries, nil
}

func (a LockReaderAdapter) ReadLockIntent(path string) (types.LockIntent, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return types.LockIntent{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("lock.intent not found").
			WithCause(err)
	}
	intent := types.LockIntent{}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return types.LockIntent{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid lock.intent format")
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		switch key {
		case "lock_id":
			intent.LockID = value
		case "created_at":
			intent.CreatedAt = value
		case "index":
			intent.Index = value
		case "manifests":
			if value != "" {
				intent.Manifests = strings.Split(value, ",")
			}
		}
	}
	if strings.TrimSpace(intent.LockID) == "" {
		return types.LockIntent{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("lock.intent missing lock_id")
	}
	return intent, nil
}

var _ ports.LockOutputPort = LockFileAdapter{}
var _ ports.LockReaderPort = LockReaderAdapter{}
