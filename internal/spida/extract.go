package spida

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/polecheck/internal/geo"
	"github.com/sells-group/polecheck/internal/model"
	"github.com/sells-group/polecheck/internal/resolve"
)

// Layer names used throughout the exchange format.
const (
	LayerMeasured    = "Measured"
	LayerRecommended = "Recommended"
)

// serviceDropCatalogCode is the 0.25-inch fiber drop catalogue code,
// the strongest single signal that an attachment is a service drop.
const serviceDropCatalogCode = "FSV0250"

// ExtractAssets walks every lead location in traversal order and
// produces one Asset per pole. Sequence ids are assigned by that
// traversal ("001", "002", ...) and are only stable within this parse
// of this document. serviceOwner selects whose attachments count for
// the drop-service flag.
//
// A location missing its Measured or Recommended design is a
// document-level error naming the location; every per-field problem
// degrades to an absent value instead.
func ExtractAssets(doc *Document, serviceOwner string) ([]model.Asset, error) {
	log := zap.L().With(zap.String("component", "spida_extract"))

	aliases := AliasTable(doc)
	owners := doc.OwnersTable()

	var assets []model.Asset
	seq := 0
	for _, lead := range doc.Leads {
		for li := range lead.Locations {
			loc := &lead.Locations[li]
			seq++
			scid := fmt.Sprintf("%03d", seq)

			measured := loc.Design(LayerMeasured)
			recommended := loc.Design(LayerRecommended)
			if measured == nil {
				return nil, eris.Errorf("spida: location %d (%q) has no %s design", seq, loc.Label, LayerMeasured)
			}
			if recommended == nil {
				return nil, eris.Errorf("spida: location %d (%q) has no %s design", seq, loc.Label, LayerRecommended)
			}

			assets = append(assets, model.Asset{
				SCID:        scid,
				PoleNumber:  poleNumberFromLabel(loc.Label),
				Spec:        BuildSpec(recommended.Structure.Pole, aliases),
				ExistingPct: loadPercent(measured),
				FinalPct:    loadPercent(recommended),
				ServiceDrop: hasServiceDrop(&recommended.Structure, owners, serviceOwner),
				Coord:       locationCoord(loc),
			})
		}
	}

	log.Debug("extracted design assets",
		zap.Int("poles", len(assets)),
		zap.Int("catalogue_aliases", len(aliases)),
	)
	return assets, nil
}

// poleNumberFromLabel takes the pole number after the first dash of the
// location label, or the whole label when there is no dash.
func poleNumberFromLabel(label string) string {
	if _, after, found := strings.Cut(label, "-"); found {
		return after
	}
	return label
}

// loadPercent finds the pole component's loading result in the design's
// analysis cases, formatted to two decimals. Absent when no case
// reports a pole result.
func loadPercent(design *Design) string {
	for _, c := range design.Analysis {
		for _, res := range c.Results {
			if res.Component == "Pole" {
				return resolve.FormatPercent(res.Actual)
			}
		}
	}
	return ""
}

// hasServiceDrop reports whether any attachment on the structure is a
// service drop owned by serviceOwner. Ownership is matched by substring
// on the resolved owner name; the drop shape is matched by the broad
// heuristics the exports actually use.
func hasServiceDrop(s *Structure, owners map[string]string, serviceOwner string) bool {
	want := strings.ToLower(serviceOwner)
	if want == "" {
		return false
	}
	for _, att := range s.allAttachments() {
		owner := ""
		if att.Owner != nil {
			owner = att.Owner.ID
		}
		if owner == "" {
			owner = owners[att.OwnerID]
		}
		if !strings.Contains(strings.ToLower(owner), want) {
			continue
		}

		usage := strings.ToLower(att.UsageGroup)
		itemType := ""
		if att.ClientItem != nil {
			itemType = strings.ToLower(att.ClientItem.Type)
		}
		code := ""
		if att.Catalog != nil {
			code = strings.ToUpper(att.Catalog.Code)
		}

		if strings.Contains(usage, "service") ||
			strings.HasSuffix(itemType, "drop") ||
			strings.Contains(code, serviceDropCatalogCode) ||
			att.ServiceDrop {
			return true
		}
	}
	return false
}

// coordSource is one strategy for pulling a coordinate out of a
// location. Sources are tried in priority order, first hit wins; adding
// a fallback encoding means appending to the table.
type coordSource func(loc *Location) *geo.LatLon

var coordSources = []coordSource{
	func(loc *Location) *geo.LatLon { return fromGeoBlock(loc.GeographicCoordinate) },
	func(loc *Location) *geo.LatLon { return fromGeoBlock(loc.MapLocation) },
	fromFlatFields,
	fromMeasuredStructure,
}

// locationCoord extracts a best-effort coordinate for the location.
// Malformed coordinate data is absence, never an error.
func locationCoord(loc *Location) *geo.LatLon {
	for _, src := range coordSources {
		if c := src(loc); c != nil {
			return c
		}
	}
	return nil
}

// fromGeoBlock reads a GeoJSON-style [lon, lat] coordinate block.
func fromGeoBlock(b *GeoBlock) *geo.LatLon {
	if b == nil || len(b.Coordinates) != 2 {
		return nil
	}
	lon, ok := resolve.Float(b.Coordinates[0])
	if !ok {
		return nil
	}
	lat, ok := resolve.Float(b.Coordinates[1])
	if !ok {
		return nil
	}
	c, _ := geo.FromLonLat([]float64{lon, lat})
	return &c
}

// fromFlatFields reads flat latitude/longitude keys, guarding against
// exports that swapped the axes.
func fromFlatFields(loc *Location) *geo.LatLon {
	lat, ok := firstFloat(loc.Latitude, loc.Lat)
	if !ok {
		return nil
	}
	lon, ok := firstFloat(loc.Longitude, loc.Lon, loc.Long)
	if !ok {
		return nil
	}
	c := geo.MaybeSwapped(lat, lon)
	return &c
}

// fromMeasuredStructure retries the nested coordinate blocks against
// the Measured design's structure when the location itself has none.
func fromMeasuredStructure(loc *Location) *geo.LatLon {
	measured := loc.Design(LayerMeasured)
	if measured == nil {
		return nil
	}
	s := &measured.Structure
	for _, b := range []*GeoBlock{s.PoleLocation, s.GeographicCoordinate, s.MapLocation} {
		if c := fromGeoBlock(b); c != nil {
			return c
		}
	}
	return nil
}

func firstFloat(candidates ...any) (float64, bool) {
	for _, v := range candidates {
		if v == nil {
			continue
		}
		if f, ok := resolve.Float(v); ok {
			return f, true
		}
	}
	return 0, false
}
