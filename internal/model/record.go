// Package model defines the per-source asset records and the merged
// comparison records the engine produces.
package model

import (
	"fmt"

	"github.com/sells-group/polecheck/internal/geo"
)

// Asset is one pole as described by a single source, before matching.
// String fields use "" for absent; Coord is nil when no coordinate
// could be extracted.
type Asset struct {
	// SCID is the source-local sequence identifier. For the design
	// source it is assigned by traversal order within one run and is
	// not stable across runs or sources; it only guarantees every
	// design pole a handle.
	SCID string

	// PoleNumber is the human-facing pole label, free text.
	PoleNumber string

	// Spec is the pole specification string, e.g. "45'-3 Southern Pine".
	Spec string

	// ExistingPct and FinalPct are loading percentages already
	// formatted to two decimals ("65.40%").
	ExistingPct string
	FinalPct    string

	// ServiceDrop reports whether a communications service drop
	// attachment is present on the pole.
	ServiceDrop bool

	Coord *geo.LatLon
}

// Tier identifies which matching strategy produced a pairing, strongest
// signal first.
type Tier string

const (
	TierSCID        Tier = "scid"
	TierPoleNumber  Tier = "pole_number"
	TierCoordDirect Tier = "coord_direct"
	TierCoordSpec   Tier = "coord_spec_verified"
	TierFieldOnly   Tier = "field_only"
	TierUnmatched   Tier = "unmatched"
)

// Matched reports whether the tier represents an actual cross-source
// pairing.
func (t Tier) Matched() bool {
	switch t {
	case TierSCID, TierPoleNumber, TierCoordDirect, TierCoordSpec:
		return true
	}
	return false
}

// Presence statuses for the per-axis identity comparison columns.
const (
	StatusInBoth     = "In Both"
	StatusDesignOnly = "Design Only"
	StatusFieldOnly  = "Field Only"
	StatusUnknown    = "Unknown"
	StatusNoPoleNum  = "No Pole #"
)

// MatchedRecord is one row of the reconciled output: a design asset
// with its matched field asset (either may be nil for unmatched and
// field-only rows), the tier that produced the pairing, and per-field
// agreement flags. Identity and match fields are immutable once built;
// only design-side editable fields flow back through the document-edit
// interface.
type MatchedRecord struct {
	// SCID is the design sequence id, or the field SCID for
	// field-only rows.
	SCID string

	Design *Asset
	Field  *Asset

	Tier Tier

	// DistanceM is set only for coordinate-tier matches.
	DistanceM   float64
	HasDistance bool

	// Agreement flags, computed on normalized display values.
	SpecMatch     bool
	ExistingMatch bool
	FinalMatch    bool
	DropMatch     bool

	// Cross-source presence per identity axis.
	SCIDStatus    string
	PoleNumStatus string
}

// DistanceString renders the match distance to two decimals, or "" when
// the match carried no distance.
func (r *MatchedRecord) DistanceString() string {
	if !r.HasDistance {
		return ""
	}
	return fmt.Sprintf("%.2f", r.DistanceM)
}

// DesignOr returns the design asset or an empty placeholder, so column
// writers need no nil checks.
func (r *MatchedRecord) DesignOr() Asset {
	if r.Design == nil {
		return Asset{}
	}
	return *r.Design
}

// FieldOr returns the field asset or an empty placeholder.
func (r *MatchedRecord) FieldOr() Asset {
	if r.Field == nil {
		return Asset{}
	}
	return *r.Field
}
