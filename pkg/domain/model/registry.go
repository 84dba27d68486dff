package model

import (
	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// CNAProfile is the display metadata for one CNA from the official CNA
// list. OrgName and AdvisoryURL are optional; display code falls back
// to the short name when they are absent.
type CNAProfile struct {
	ShortName   types.ShortName
	OrgName     string
	AdvisoryURL string
	UUID        types.CNAID
}

// DisplayOrgName returns the organization name, falling back to the
// short name when the registry has none.
func (p CNAProfile) DisplayOrgName() string {
	if p.OrgName != "" {
		return p.OrgName
	}
	return p.ShortName.String()
}

// Registry is the universe of CNAs from the official CNA list, indexed
// for the lookup fallback chain used when joining CVE records to
// registry metadata.
type Registry struct {
	profiles    []CNAProfile
	byShortName map[types.ShortName]int
	byUUID      map[types.CNAID]int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byShortName: make(map[types.ShortName]int),
		byUUID:      make(map[types.CNAID]int),
	}
}

// Add registers a profile. Entries without a short name are rejected;
// duplicate short names keep the first entry seen, matching the
// official list's own de-duplication.
func (r *Registry) Add(profile CNAProfile) error {
	if profile.ShortName == "" {
		return goerr.New("CNA profile has no short name",
			goerr.V("uuid", profile.UUID))
	}

	idx := len(r.profiles)
	if _, exists := r.byShortName[profile.ShortName.Fold()]; exists {
		return nil
	}
	r.profiles = append(r.profiles, profile)
	r.byShortName[profile.ShortName.Fold()] = idx
	if profile.UUID != "" {
		r.byUUID[profile.UUID.Canonical()] = idx
	}
	return nil
}

// Len returns the number of registered CNAs
func (r *Registry) Len() int {
	return len(r.profiles)
}

// Profiles returns all registered profiles in registration order
func (r *Registry) Profiles() []CNAProfile {
	out := make([]CNAProfile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// Lookup resolves registry metadata for a CNA observed in the record
// stream. Fallback order: case-insensitive short name, then assigner
// UUID, then a synthesized profile carrying just the observed
// identifiers.
func (r *Registry) Lookup(shortName types.ShortName, assignerID types.CNAID) CNAProfile {
	if shortName != "" {
		if idx, ok := r.byShortName[shortName.Fold()]; ok {
			return r.profiles[idx]
		}
	}
	if assignerID != "" {
		if idx, ok := r.byUUID[assignerID.Canonical()]; ok {
			return r.profiles[idx]
		}
	}

	name := shortName
	if name == "" {
		name = "Unknown"
	}
	return CNAProfile{
		ShortName: name,
		UUID:      assignerID,
	}
}

// Contains reports whether a short name is registered
func (r *Registry) Contains(shortName types.ShortName) bool {
	_, ok := r.byShortName[shortName.Fold()]
	return ok
}
