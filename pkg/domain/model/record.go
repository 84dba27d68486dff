package model

import (
	"time"

	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
)

// Record is one normalized CVE publication event. It carries only the
// fields the analysis needs: which CNA published, and when.
type Record struct {
	CVEID       types.CVEID
	AssignerID  types.CNAID
	ShortName   types.ShortName
	PublishedAt time.Time
}

// IsValid reports whether the record carries everything the aggregation
// requires. Records failing this check are skipped, never fatal.
func (r Record) IsValid() bool {
	return r.AssignerID != "" && !r.PublishedAt.IsZero()
}
