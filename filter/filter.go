// Package filter narrows an in-memory school list by optional
// per-field text criteria. Matching is pure and order-preserving.
package filter

import (
	"strings"

	"github.com/evaaz/schoolctl/client"
)

// Criteria holds the five optional search fields. A blank field
// imposes no constraint.
type Criteria struct {
	SchoolName          string
	City                string
	ContractManagerName string
	PhoneNumber         string
	Email               string
}

// IsZero reports whether every criterion is blank. Callers must reject
// an all-blank submission before invoking Apply.
func (c Criteria) IsZero() bool {
	return strings.TrimSpace(c.SchoolName) == "" &&
		strings.TrimSpace(c.City) == "" &&
		strings.TrimSpace(c.ContractManagerName) == "" &&
		strings.TrimSpace(c.PhoneNumber) == "" &&
		strings.TrimSpace(c.Email) == ""
}

// Apply returns the records matching every non-blank criterion, in
// their original relative order. Text fields match by case-insensitive
// substring; the phone number by plain substring. An empty result is a
// valid outcome, not an error.
func Apply(records []client.School, c Criteria) []client.School {
	out := make([]client.School, 0, len(records))
	for _, r := range records {
		if matches(r, c) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r client.School, c Criteria) bool {
	return matchFold(r.SchoolName, c.SchoolName) &&
		matchFold(r.City, c.City) &&
		matchFold(r.ContractManagerName, c.ContractManagerName) &&
		match(r.PhoneNumber, c.PhoneNumber) &&
		matchFold(r.Email, c.Email)
}

func match(field, criterion string) bool {
	if strings.TrimSpace(criterion) == "" {
		return true
	}
	return strings.Contains(field, criterion)
}

func matchFold(field, criterion string) bool {
	if strings.TrimSpace(criterion) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(criterion))
}
