package export

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/sells-group/polecheck/internal/match"
)

// shpFields is the DBF schema for the point shapefile. DBF field names
// are capped at 10 characters.
var shpFields = []shp.Field{
	shp.StringField("SCID", 16),
	shp.StringField("DSGN_POLE", 32),
	shp.StringField("FLD_POLE", 32),
	shp.StringField("TIER", 24),
	shp.FloatField("DIST_M", 12, 2),
}

// WriteShapefile writes a POINT shapefile of every record with a
// coordinate, with identity and tier attributes in the DBF sidecar.
func WriteShapefile(path string, res *match.Result) error {
	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrap(err, "export: create shapefile")
	}
	defer w.Close()

	w.SetFields(shpFields)

	row := 0
	for i := range res.Records {
		r := &res.Records[i]
		c := recordCoord(r)
		if c == nil {
			continue
		}

		w.Write(&shp.Point{X: c.Lon, Y: c.Lat})

		d := r.DesignOr()
		f := r.FieldOr()
		w.WriteAttribute(row, 0, r.SCID)
		w.WriteAttribute(row, 1, d.PoleNumber)
		w.WriteAttribute(row, 2, f.PoleNumber)
		w.WriteAttribute(row, 3, string(r.Tier))
		w.WriteAttribute(row, 4, r.DistanceM)
		row++
	}

	return nil
}
