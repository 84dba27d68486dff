package types

import (
	"strings"

	"github.com/google/uuid"
)

// CNAID represents a CNA assigner organization identifier (a UUID in
// the CVE Program data, treated as an opaque string elsewhere)
type CNAID string

// String returns the string representation
func (id CNAID) String() string {
	return string(id)
}

// IsUUID reports whether the identifier is a well-formed UUID
func (id CNAID) IsUUID() bool {
	_, err := uuid.Parse(string(id))
	return err == nil
}

// Canonical returns the identifier normalized for map lookup. UUIDs are
// lowercased so mixed-case assigner IDs from CVE records match the
// official CNA list.
func (id CNAID) Canonical() CNAID {
	if id.IsUUID() {
		return CNAID(strings.ToLower(string(id)))
	}
	return id
}

// ShortName represents a CNA short name as published in the official
// CNA list (e.g. "mitre", "GitHub_M")
type ShortName string

// String returns the string representation
func (n ShortName) String() string {
	return string(n)
}

// Fold returns the short name lowered for case-insensitive matching
func (n ShortName) Fold() ShortName {
	return ShortName(strings.ToLower(string(n)))
}

// CVEID represents a CVE identifier (e.g. "CVE-2024-12345")
type CVEID string

// String returns the string representation
func (id CVEID) String() string {
	return string(id)
}
