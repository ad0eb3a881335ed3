package match

import (
	"github.com/sells-group/polecheck/internal/model"
	"github.com/sells-group/polecheck/internal/resolve"
)

// presence holds the raw cross-source identity sets behind the
// human-readable per-axis status columns.
type presence struct {
	scidBoth   map[string]bool
	scidDesign map[string]bool
	poleBoth   map[string]bool
	poleDesign map[string]bool
}

// buildPresence indexes both sources on the same normalized identities
// the matching tiers compare, so the status columns agree with the
// matcher about what "the same id" means.
func buildPresence(design, field []model.Asset) presence {
	fieldSCIDs := make(map[string]bool, len(field))
	fieldPoles := make(map[string]bool, len(field))
	for _, f := range field {
		if s := resolve.Digits(f.SCID); s != "" {
			fieldSCIDs[s] = true
		}
		if n := resolve.PoleNumber(f.PoleNumber); n != "" {
			fieldPoles[n] = true
		}
	}

	p := presence{
		scidBoth:   map[string]bool{},
		scidDesign: map[string]bool{},
		poleBoth:   map[string]bool{},
		poleDesign: map[string]bool{},
	}
	for _, d := range design {
		if s := resolve.Digits(d.SCID); s != "" {
			if fieldSCIDs[s] {
				p.scidBoth[s] = true
			} else {
				p.scidDesign[s] = true
			}
		}
		n := resolve.PoleNumber(d.PoleNumber)
		if n == "" {
			continue
		}
		if fieldPoles[n] {
			p.poleBoth[n] = true
		} else {
			p.poleDesign[n] = true
		}
	}
	return p
}

// reconcile merges a design asset with its matched field asset (nil for
// unmatched) into one record and computes the per-field agreement
// flags. Agreement compares normalized display values: specs through
// their canonical formatting-insensitive projection, percents as their
// two-decimal strings, drop flags as booleans.
func reconcile(d, f *model.Asset, tier model.Tier, dist float64, hasDist bool, p presence) model.MatchedRecord {
	rec := model.MatchedRecord{
		SCID:        d.SCID,
		Design:      d,
		Field:       f,
		Tier:        tier,
		DistanceM:   dist,
		HasDistance: hasDist,
	}

	fv := rec.FieldOr()
	rec.SpecMatch = resolve.CanonicalSpec(d.Spec) == resolve.CanonicalSpec(fv.Spec)
	rec.ExistingMatch = d.ExistingPct == fv.ExistingPct
	rec.FinalMatch = d.FinalPct == fv.FinalPct
	rec.DropMatch = d.ServiceDrop == fv.ServiceDrop

	scid := resolve.Digits(d.SCID)
	switch {
	case p.scidBoth[scid]:
		rec.SCIDStatus = model.StatusInBoth
	case p.scidDesign[scid]:
		rec.SCIDStatus = model.StatusDesignOnly
	default:
		rec.SCIDStatus = model.StatusUnknown
	}

	pole := resolve.PoleNumber(d.PoleNumber)
	switch {
	case pole == "":
		rec.PoleNumStatus = model.StatusNoPoleNum
	case p.poleBoth[pole]:
		rec.PoleNumStatus = model.StatusInBoth
	case p.poleDesign[pole]:
		rec.PoleNumStatus = model.StatusDesignOnly
	default:
		rec.PoleNumStatus = model.StatusUnknown
	}

	return rec
}

// fieldOnlyRecord emits a field asset no design asset claimed: all
// design-side fields absent, agreement flags false.
func fieldOnlyRecord(f *model.Asset, p presence) model.MatchedRecord {
	rec := model.MatchedRecord{
		SCID:       f.SCID,
		Field:      f,
		Tier:       model.TierFieldOnly,
		SCIDStatus: model.StatusFieldOnly,
	}
	if resolve.PoleNumber(f.PoleNumber) == "" {
		rec.PoleNumStatus = model.StatusNoPoleNum
	} else {
		rec.PoleNumStatus = model.StatusFieldOnly
	}
	return rec
}
