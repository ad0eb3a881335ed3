// Package export renders a comparison run as XLSX, GeoJSON, or a point
// shapefile. All writers emit the same fixed superset of columns so the
// outputs stay interchangeable.
package export

import (
	"fmt"

	"github.com/sells-group/polecheck/internal/model"
)

// Headers is the column order shared by every writer.
var Headers = []string{
	"SCID",
	"Design SCID",
	"Field SCID",
	"SCID Status",
	"Design Pole #",
	"Field Pole #",
	"Pole # Status",
	"Design Spec",
	"Field Spec",
	"Spec Match",
	"Design Existing %",
	"Field Existing %",
	"Existing Match",
	"Design Final %",
	"Field Final %",
	"Final Match",
	"Design Drop",
	"Field Drop",
	"Drop Match",
	"Design Lat",
	"Design Lon",
	"Field Lat",
	"Field Lon",
	"Match Tier",
	"Distance (m)",
}

// Row projects one record into Headers order.
func Row(r *model.MatchedRecord) []string {
	d := r.DesignOr()
	f := r.FieldOr()
	dLat, dLon := coordStrings(d)
	fLat, fLon := coordStrings(f)

	return []string{
		r.SCID,
		d.SCID,
		f.SCID,
		r.SCIDStatus,
		d.PoleNumber,
		f.PoleNumber,
		r.PoleNumStatus,
		d.Spec,
		f.Spec,
		yesNo(r.SpecMatch),
		d.ExistingPct,
		f.ExistingPct,
		yesNo(r.ExistingMatch),
		d.FinalPct,
		f.FinalPct,
		yesNo(r.FinalMatch),
		yesNo(d.ServiceDrop),
		yesNo(f.ServiceDrop),
		yesNo(r.DropMatch),
		dLat,
		dLon,
		fLat,
		fLon,
		string(r.Tier),
		r.DistanceString(),
	}
}

func coordStrings(a model.Asset) (lat, lon string) {
	if a.Coord == nil {
		return "", ""
	}
	return fmt.Sprintf("%.6f", a.Coord.Lat), fmt.Sprintf("%.6f", a.Coord.Lon)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
