package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"pyreq/internal/types"
)

// Duplicate pairs two declarations of the same normalized name.
// Conflicting is true when their specifier sets differ, which is the
// latent defect validate exists to surface.
type Duplicate struct {
	Name        string
	First       types.Requirement
	Second      types.Requirement
	Conflicting bool
}

// FindDuplicates reports every repeated name, comparing each later
// declaration against the first occurrence.
func FindDuplicates(reqs []types.Requirement) []Duplicate {
	firstSeen := map[string]types.Requirement{}
	var out []Duplicate
	for _, req := range reqs {
		first, ok := firstSeen[req.Name]
		if !ok {
			firstSeen[req.Name] = req
			continue
		}
		out = append(out, Duplicate{
			Name:        req.Name,
			First:       first,
			Second:      req,
			Conflicting: !SpecifiersEqual(first.Specifiers, req.Specifiers),
		})
	}
	return out
}

// Dedupe drops later declarations whose specifiers match the first
// occurrence exactly. Conflicting duplicates are returned as an error;
// dedupe never picks a winner between differing constraints.
func Dedupe(reqs []types.Requirement) ([]types.Requirement, int, error) {
	firstSeen := map[string]types.Requirement{}
	var out []types.Requirement
	dropped := 0
	for _, req := range reqs {
		first, ok := firstSeen[req.Name]
		if !ok {
			firstSeen[req.Name] = req
			out = append(out, req)
			continue
		}
		if !SpecifiersEqual(first.Specifiers, req.Specifiers) {
			return nil, 0, DuplicateError(Duplicate{Name: req.Name, First: first, Second: req, Conflicting: true})
		}
		dropped++
	}
	return out, dropped, nil
}

// SpecifiersEqual compares two specifier sets ignoring clause order.
func SpecifiersEqual(a []types.Specifier, b []types.Specifier) bool {
	if len(a) != len(b) {
		return false
	}
	counts := map[types.Specifier]int{}
	for _, specifier := range a {
		counts[specifier]++
	}
	for _, specifier := range b {
		counts[specifier]--
		if counts[specifier] < 0 {
			return false
		}
	}
	return true
}

// DuplicateError builds the coded error for a repeated package name,
// naming both offending lines.
func DuplicateError(dup Duplicate) error {
	detail := "identical constraints"
	if dup.Conflicting {
		detail = fmt.Sprintf("conflicting constraints %q vs %q",
			FormatSpecifiers(dup.First.Specifiers), FormatSpecifiers(dup.Second.Specifiers))
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeAlreadyExists).
		WithMsg(fmt.Sprintf("duplicate package %s (%s:%d and %s:%d, %s)",
			dup.Name, dup.First.Source, dup.First.Line, dup.Second.Source, dup.Second.Line, detail))
}
