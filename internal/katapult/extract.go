package katapult

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/polecheck/internal/geo"
	"github.com/sells-group/polecheck/internal/model"
	"github.com/sells-group/polecheck/internal/resolve"
)

// allowedNodeTypes are the node types accepted as actual poles.
var allowedNodeTypes = map[string]bool{
	"pole":              true,
	"Power":             true,
	"Power Transformer": true,
	"Joint":             true,
	"Joint Transformer": true,
}

// ExtractAssets walks the job's pole nodes and produces one Asset per
// pole with a digit-valid SCID. Nodes are visited in sorted id order so
// extraction is deterministic for a fixed document. Per-field problems
// degrade to absent values; only structural absence fails Parse.
func ExtractAssets(doc *Document) []model.Asset {
	log := zap.L().With(zap.String("component", "katapult_extract"))

	birthmarks := doc.Birthmarks()
	dropSCIDs := serviceDropSCIDs(doc)

	nodeIDs := make([]string, 0, len(doc.Nodes))
	for id := range doc.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Strings(nodeIDs)

	var assets []model.Asset
	for _, id := range nodeIDs {
		node := doc.Nodes[id]
		attrs := node.Attributes

		scid := digitSCID(attrs["scid"])
		if scid == "" {
			continue
		}
		if nt := nodeType(attrs); nt != "" && !allowedNodeTypes[nt] {
			continue
		}

		a := model.Asset{
			SCID:        scid,
			PoleNumber:  poleNumber(attrs),
			Spec:        poleSpec(attrs, birthmarks),
			ExistingPct: resolve.FormatPercent(attrs["existing_capacity_%"].First()),
			FinalPct:    resolve.FormatPercent(attrs["final_passing_capacity_%"].First()),
			ServiceDrop: dropSCIDs[scid],
			Coord:       nodeCoord(attrs),
		}
		assets = append(assets, a)
	}

	log.Debug("extracted field assets",
		zap.Int("poles", len(assets)),
		zap.Int("birthmarks", len(birthmarks)),
		zap.Int("service_drop_poles", len(dropSCIDs)),
	)
	return assets
}

// digitSCID unwraps the scid attribute and accepts it only when it is
// all digits; anything else means the node is not a surveyed pole.
func digitSCID(a Attr) string {
	s := strings.TrimSpace(a.FirstString())
	if s == "" {
		return ""
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return s
}

func nodeType(attrs map[string]Attr) string {
	a, ok := attrs["node_type"]
	if !ok {
		return ""
	}
	if s, ok := a.Field("button_added").(string); ok && s != "" {
		return s
	}
	return a.FirstString()
}

// poleNumber resolves the human pole label: the dedicated number
// attribute first, then the physical tag text, "PL" prefix applied
// exactly once.
func poleNumber(attrs map[string]Attr) string {
	if v := strings.TrimSpace(attrs["DLOC_number"].FirstString()); v != "" && v != "N/A" {
		return withPLPrefix(v)
	}
	if inner, ok := attrs["pole_tag"].First().(map[string]any); ok {
		if tag, ok := inner["tagtext"].(string); ok {
			tag = strings.TrimSpace(tag)
			if tag != "" && tag != "N/A" {
				return withPLPrefix(tag)
			}
		}
	}
	return ""
}

func withPLPrefix(s string) string {
	if strings.HasPrefix(s, "PL") {
		return s
	}
	return "PL" + s
}

// poleSpec resolves the pole specification in priority order: the
// finished pole_spec attribute, a birthmark reference, then raw
// height/class/species attributes.
func poleSpec(attrs map[string]Attr, birthmarks map[string]Birthmark) string {
	if s := attrs["pole_spec"].FirstString(); s != "" {
		return s
	}

	if spec := birthmarkSpec(attrs, birthmarks); spec != "" {
		return spec
	}

	heightRaw := firstPresent(attrs, "pole_height", "poleLength", "Height")
	class, _ := firstPresent(attrs, "pole_class", "Class").(string)
	species, _ := firstPresent(attrs, "pole_species", "Species").(string)
	feet, ok := resolve.Feet(heightRaw)
	if !ok || class == "" || species == "" {
		return ""
	}
	return fmt.Sprintf("%d'-%s %s", feet, class, species)
}

// birthmarkSpec follows a birthmark/spec reference attribute into the
// collected birthmark map. Candidate keys are scanned in sorted order
// so the chosen reference is stable.
func birthmarkSpec(attrs map[string]Attr, birthmarks map[string]Birthmark) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		lower := strings.ToLower(k)
		if strings.Contains(lower, "birthmark") || strings.Contains(lower, "spec") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		ref, ok := attrs[k].First().(string)
		if !ok || ref == "" {
			continue
		}
		bm, ok := birthmarks[ref]
		if !ok {
			continue
		}
		feet, ok := resolve.Feet(bm.Height)
		if !ok || bm.Class == "" || bm.Species == "" {
			continue
		}
		return fmt.Sprintf("%d'-%s %s", feet, bm.Class, bm.Species)
	}
	return ""
}

// firstPresent tries attribute names in order and returns the first
// unwrapped non-absent value.
func firstPresent(attrs map[string]Attr, names ...string) any {
	for _, name := range names {
		if a, ok := attrs[name]; ok && !a.IsAbsent() {
			if v := a.First(); v != nil {
				return v
			}
		}
	}
	return nil
}

// nodeCoord reads the flat latitude/longitude attributes, tolerating
// both wrapped and scalar spellings, with the shared axis-swap guard.
func nodeCoord(attrs map[string]Attr) *geo.LatLon {
	lat, ok := coordValue(attrs["latitude"])
	if !ok {
		return nil
	}
	lon, ok := coordValue(attrs["longitude"])
	if !ok {
		return nil
	}
	c := geo.MaybeSwapped(lat, lon)
	return &c
}

func coordValue(a Attr) (float64, bool) {
	switch v := a.First().(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// serviceDropSCIDs finds every pole SCID with service-drop evidence:
// service location nodes reached through their measured attachment
// sections, and connections typed as service drops.
func serviceDropSCIDs(doc *Document) map[string]bool {
	out := map[string]bool{}
	sectionToConn := doc.SectionToConnection()

	for nodeID, node := range doc.Nodes {
		attrs := node.Attributes
		if nodeType(attrs) != "Service Location" {
			continue
		}
		for secID := range attrs["measured_attachments"].Fields() {
			conn := sectionToConn[secID]
			if conn == nil {
				continue
			}
			poleID := conn.NodeID1
			if conn.NodeID2 != nodeID {
				poleID = conn.NodeID2
			}
			pole, ok := doc.Nodes[poleID]
			if !ok {
				continue
			}
			if scid := digitSCID(pole.Attributes["scid"]); scid != "" {
				out[scid] = true
			}
		}
	}

	for _, conn := range doc.Connections {
		ct, ok := conn.Attributes["connection_type"].Field("button_added").(string)
		if !ok {
			ct = conn.Attributes["connection_type"].FirstString()
		}
		if ct != "service drop" {
			continue
		}
		pole, ok := doc.Nodes[conn.NodeID2]
		if !ok {
			continue
		}
		if scid := digitSCID(pole.Attributes["scid"]); scid != "" {
			out[scid] = true
		}
	}

	return out
}
