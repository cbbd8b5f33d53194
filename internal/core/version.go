package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
	debversion "github.com/knqyf263/go-deb-version"

	"pyreq/internal/types"
)

// versionCache memoizes parsed version objects to avoid repeated parsing
// during specifier evaluation and sorting. Version strings that predate
// PEP 440 fall back to Debian version ordering so legacy uploads still
// sort deterministically.
type versionCache struct {
	pep    map[string]pep440.Version
	legacy map[string]debversion.Version
	spec   map[string]pep440.Specifiers
}

func newVersionCache() *versionCache {
	return &versionCache{
		pep:    map[string]pep440.Version{},
		legacy: map[string]debversion.Version{},
		spec:   map[string]pep440.Specifiers{},
	}
}

// pepVersion returns a parsed PEP 440 version, caching the result.
func (c *versionCache) pepVersion(value string) (pep440.Version, error) {
	if parsed, ok := c.pep[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.Parse(value)
	if err != nil {
		return pep440.Version{}, err
	}
	c.pep[value] = parsed
	return parsed, nil
}

// legacyVersion returns a Debian-ordering parse for non-PEP440 strings.
func (c *versionCache) legacyVersion(value string) (debversion.Version, error) {
	if parsed, ok := c.legacy[value]; ok {
		return parsed, nil
	}
	parsed, err := debversion.NewVersion(value)
	if err != nil {
		return debversion.Version{}, err
	}
	c.legacy[value] = parsed
	return parsed, nil
}

// pepSpec returns parsed PEP 440 specifiers, caching the result.
func (c *versionCache) pepSpec(value string) (pep440.Specifiers, error) {
	if parsed, ok := c.spec[value]; ok {
		return parsed, nil
	}
	parsed, err := pep440.NewSpecifiers(value)
	if err != nil {
		return pep440.Specifiers{}, err
	}
	c.spec[value] = parsed
	return parsed, nil
}

// compare returns -1, 0, or 1 comparing two version strings. PEP 440
// ordering is used when both sides parse; otherwise both are compared
// under the legacy fallback. A PEP 440 version always sorts above a
// legacy one, matching installer behavior. Returns 0 when nothing
// parses.
func (c *versionCache) compare(a string, b string) int {
	v1, err1 := c.pepVersion(a)
	v2, err2 := c.pepVersion(b)
	if err1 == nil && err2 == nil {
		return v1.Compare(v2)
	}
	if err1 == nil {
		return 1
	}
	if err2 == nil {
		return -1
	}
	l1, err1 := c.legacyVersion(a)
	l2, err2 := c.legacyVersion(b)
	if err1 != nil || err2 != nil {
		return 0
	}
	return l1.Compare(l2)
}

// BestCompatibleVersion selects the highest version from available that
// satisfies all of the requirement's specifiers. Legacy (non-PEP440)
// versions are only eligible when the requirement is unconstrained,
// since PEP 440 specifiers cannot be checked against them.
func BestCompatibleVersion(req types.Requirement, available []string) (string, error) {
	if len(available) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no available versions for %s", req.Name))
	}
	cache := newVersionCache()
	var spec pep440.Specifiers
	hasSpec := len(req.Specifiers) > 0
	if hasSpec {
		parsed, err := cache.pepSpec(FormatSpecifiers(req.Specifiers))
		if err != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid specifiers for %s: %s", req.Name, FormatSpecifiers(req.Specifiers))).
				WithCause(err)
		}
		spec = parsed
	}

	var candidates []string
	for _, version := range available {
		if strings.TrimSpace(version) == "" {
			continue
		}
		parsed, err := cache.pepVersion(version)
		if err != nil {
			if !hasSpec {
				candidates = append(candidates, version)
			}
			continue
		}
		if !hasSpec || spec.Check(parsed) {
			candidates = append(candidates, version)
		}
	}
	if len(candidates) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no compatible version for %s (%s)", req.Name, FormatSpecifiers(req.Specifiers)))
	}
	sort.Slice(candidates, func(i, j int) bool {
		return cache.compare(candidates[i], candidates[j]) > 0
	})
	return candidates[0], nil
}
