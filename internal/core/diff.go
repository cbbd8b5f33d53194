package core

import (
	"sort"

	"pyreq/internal/types"
)

// DiffChange records a requirement whose constraints differ between two
// manifests. Before and After hold the serialized specifier sets.
type DiffChange struct {
	Name   string
	Before string
	After  string
}

type DiffResult struct {
	Added   []types.Requirement
	Removed []types.Requirement
	Changed []DiffChange
}

func (r DiffResult) Empty() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// CompareRequirements diffs two requirement sets as maps keyed by
// normalized name. Declaration order, comments, and blank lines have no
// effect on the result. Results are sorted by name for stable output.
func CompareRequirements(before []types.Requirement, after []types.Requirement) DiffResult {
	beforeByName := indexByName(before)
	afterByName := indexByName(after)

	var result DiffResult
	for name, req := range afterByName {
		old, ok := beforeByName[name]
		if !ok {
			result.Added = append(result.Added, req)
			continue
		}
		if !SpecifiersEqual(old.Specifiers, req.Specifiers) {
			result.Changed = append(result.Changed, DiffChange{
				Name:   name,
				Before: FormatSpecifiers(old.Specifiers),
				After:  FormatSpecifiers(req.Specifiers),
			})
		}
	}
	for name, req := range beforeByName {
		if _, ok := afterByName[name]; !ok {
			result.Removed = append(result.Removed, req)
		}
	}

	sort.Slice(result.Added, func(i, j int) bool { return result.Added[i].Name < result.Added[j].Name })
	sort.Slice(result.Removed, func(i, j int) bool { return result.Removed[i].Name < result.Removed[j].Name })
	sort.Slice(result.Changed, func(i, j int) bool { return result.Changed[i].Name < result.Changed[j].Name })
	return result
}

// EqualAsSets reports whether two requirement lists declare the same
// packages with the same constraints, regardless of ordering and of any
// comment or blank-line differences in their source files.
func EqualAsSets(a []types.Requirement, b []types.Requirement) bool {
	return CompareRequirements(a, b).Empty()
}

// LockToRequirements converts lock entries into exact-pin requirements
// so a manifest can be diffed against a lock file.
func LockToRequirements(entries []types.LockEntry, source string) []types.Requirement {
	var out []types.Requirement
	for i, entry := range entries {
		out = append(out, types.Requirement{
			Name:       entry.Name,
			RawName:    entry.Name,
			Specifiers: []types.Specifier{{Op: types.SpecifierOpEq, Version: entry.Version}},
			Source:     source,
			Line:       i + 1,
		})
	}
	return out
}

func indexByName(reqs []types.Requirement) map[string]types.Requirement {
	out := map[string]types.Requirement{}
	for _, req := range reqs {
		if _, ok := out[req.Name]; ok {
			continue
		}
		out[req.Name] = req
	}
	return out
}
