package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/polecheck/internal/geo"
	"github.com/sells-group/polecheck/internal/match"
	"github.com/sells-group/polecheck/internal/model"
)

// WriteGeoJSON writes one point feature per record that carries a
// coordinate. The field coordinate wins when both sources have one;
// records with no coordinate on either side are skipped.
func WriteGeoJSON(path string, res *match.Result) error {
	fc := &geojson.FeatureCollection{}

	for i := range res.Records {
		r := &res.Records[i]
		c := recordCoord(r)
		if c == nil {
			continue
		}

		props := make(map[string]any, len(Headers))
		for j, v := range Row(r) {
			props[Headers[j]] = v
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         r.SCID,
			Geometry:   geom.NewPointFlat(geom.XY, []float64{c.Lon, c.Lat}),
			Properties: props,
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}
	return nil
}

func recordCoord(r *model.MatchedRecord) *geo.LatLon {
	if r.Field != nil && r.Field.Coord != nil {
		return r.Field.Coord
	}
	if r.Design != nil && r.Design.Coord != nil {
		return r.Design.Coord
	}
	return nil
}
