// Package match implements the tiered entity-resolution engine: it
// pairs Design Source assets with Field Source assets using
// progressively weaker identity signals, then reconciles attributes
// across each pair.
package match

import (
	"sort"

	"github.com/sells-group/polecheck/internal/geo"
	"github.com/sells-group/polecheck/internal/model"
	"github.com/sells-group/polecheck/internal/resolve"
)

// Tables indexes the Field Source asset set by the three normalized
// projections the matching tiers look up: sequence id, pole number and
// rounded coordinate. Several raw keys may alias to one asset; the
// asset is never duplicated, the first writer per key wins.
type Tables struct {
	bySCID       map[string]*model.Asset
	byPoleNumber map[string]*model.Asset
	byCoord      map[geo.Key]*model.Asset

	// withCoord keeps the assets usable for proximity scans, in input
	// order so distance ties break deterministically.
	withCoord []*model.Asset
}

// BuildTables indexes field assets for the matching tiers.
func BuildTables(assets []*model.Asset) *Tables {
	t := &Tables{
		bySCID:       make(map[string]*model.Asset, len(assets)),
		byPoleNumber: make(map[string]*model.Asset, len(assets)),
		byCoord:      make(map[geo.Key]*model.Asset, len(assets)),
	}
	for _, a := range assets {
		if key := resolve.Digits(a.SCID); key != "" {
			if _, ok := t.bySCID[key]; !ok {
				t.bySCID[key] = a
			}
		}
		if key := resolve.PoleNumber(a.PoleNumber); key != "" {
			if _, ok := t.byPoleNumber[key]; !ok {
				t.byPoleNumber[key] = a
			}
		}
		if a.Coord != nil {
			if _, ok := t.byCoord[a.Coord.Key()]; !ok {
				t.byCoord[a.Coord.Key()] = a
			}
			t.withCoord = append(t.withCoord, a)
		}
	}
	return t
}

// BySCID looks up a field asset by normalized sequence id.
func (t *Tables) BySCID(normalized string) *model.Asset {
	return t.bySCID[normalized]
}

// ByPoleNumber looks up a field asset by normalized pole number.
func (t *Tables) ByPoleNumber(normalized string) *model.Asset {
	return t.byPoleNumber[normalized]
}

// ByCoord looks up a field asset by rounded-coordinate bucket.
func (t *Tables) ByCoord(key geo.Key) *model.Asset {
	return t.byCoord[key]
}

// candidate is a proximity-scan hit.
type candidate struct {
	asset *model.Asset
	dist  float64
}

// Nearby returns every coordinate-bearing field asset within maxDistM
// of origin, sorted ascending by distance. The sort is stable so equal
// distances keep input order and reruns pick the same candidate.
func (t *Tables) Nearby(origin geo.LatLon, maxDistM float64) []candidate {
	var out []candidate
	for _, a := range t.withCoord {
		d := geo.Haversine(origin, *a.Coord)
		if d <= maxDistM {
			out = append(out, candidate{asset: a, dist: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].dist < out[j].dist })
	return out
}
