// Package spida parses and patches the Design Source exchange export:
// the structural-analysis document describing poles as designed, with
// before/after loading analysis.
package spida

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Document is a parsed Design Source exchange file. The typed view
// drives extraction; the raw tree is the round-trip source of truth so
// edits never drop fields the typed view does not model.
type Document struct {
	Leads      []Lead     `json:"leads"`
	ClientData ClientData `json:"clientData"`

	raw map[string]any
}

// Lead groups the surveyed locations of one job lead.
type Lead struct {
	Locations []Location `json:"locations"`
	Owners    []Owner    `json:"owners"`
}

// Owner maps an attachment ownerId to a display name.
type Owner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Location is one pole site: a label, coordinate blocks in several
// encodings, and the per-layer designs.
type Location struct {
	Label   string   `json:"label"`
	Designs []Design `json:"designs"`

	GeographicCoordinate *GeoBlock `json:"geographicCoordinate"`
	MapLocation          *GeoBlock `json:"mapLocation"`

	// Flat coordinate spellings seen in the wild.
	Latitude  any `json:"latitude"`
	Lat       any `json:"lat"`
	Longitude any `json:"longitude"`
	Lon       any `json:"lon"`
	Long      any `json:"long"`
}

// GeoBlock is a GeoJSON-style coordinate holder in [lon, lat] order.
// Entries stay untyped so one malformed value degrades to absence
// instead of failing the document decode.
type GeoBlock struct {
	Coordinates []any `json:"coordinates"`
}

// Design is one analysis layer (Measured or Recommended).
type Design struct {
	LayerType string         `json:"layerType"`
	Structure Structure      `json:"structure"`
	Analysis  []AnalysisCase `json:"analysis"`
}

// AnalysisCase is one load case with its per-component results.
type AnalysisCase struct {
	Results []AnalysisResult `json:"results"`
}

// AnalysisResult is a single component result; Actual is the loading
// ratio or percent, spelled as a number or string depending on export.
type AnalysisResult struct {
	Component string `json:"component"`
	Actual    any    `json:"actual"`
}

// Structure holds the pole and everything attached to it.
type Structure struct {
	Pole Pole `json:"pole"`

	PoleLocation         *GeoBlock `json:"poleLocation"`
	GeographicCoordinate *GeoBlock `json:"geographicCoordinate"`
	MapLocation          *GeoBlock `json:"mapLocation"`

	Attachments []Attachment    `json:"attachments"`
	Wires       []Attachment    `json:"wires"`
	Spans       []Attachment    `json:"spans"`
	Nodes       []StructureNode `json:"nodes"`
}

// StructureNode nests further attachment lists inside a structure.
type StructureNode struct {
	Attachments []Attachment `json:"attachments"`
	Wires       []Attachment `json:"wires"`
	Spans       []Attachment `json:"spans"`
}

// Pole is the structure's pole with its catalogue reference.
type Pole struct {
	ClientItemAlias string     `json:"clientItemAlias"`
	ClientItem      ClientItem `json:"clientItem"`
}

// ClientItem carries the raw pole catalogue fields. Height is untyped:
// exports spell it as a unit/value object, a number, or a string.
type ClientItem struct {
	Species     string `json:"species"`
	ClassOfPole string `json:"classOfPole"`
	Class       string `json:"class"`
	Height      any    `json:"height"`
}

// Attachment is any attachment, wire or span hanging on the structure.
type Attachment struct {
	Owner       *AttachmentOwner `json:"owner"`
	OwnerID     string           `json:"ownerId"`
	UsageGroup  string           `json:"usageGroup"`
	ClientItem  *AttachmentItem  `json:"clientItem"`
	Catalog     *Catalog         `json:"catalog"`
	ServiceDrop bool             `json:"serviceDrop"`
}

// AttachmentOwner identifies who owns an attachment.
type AttachmentOwner struct {
	Industry string `json:"industry"`
	ID       string `json:"id"`
}

// AttachmentItem is the catalogue item of an attachment.
type AttachmentItem struct {
	Type string `json:"type"`
}

// Catalog is an attachment's catalogue reference.
type Catalog struct {
	Code string `json:"code"`
}

// ClientData holds the job's pole catalogue.
type ClientData struct {
	Poles []ClientPole `json:"poles"`
}

// ClientPole is one catalogue pole definition with its aliases.
type ClientPole struct {
	Height      any     `json:"height"`
	ClassOfPole string  `json:"classOfPole"`
	Class       string  `json:"class"`
	Species     string  `json:"species"`
	Aliases     []Alias `json:"aliases"`
}

// Alias is a catalogue alias id such as "45-3".
type Alias struct {
	ID string `json:"id"`
}

// Parse decodes a Design Source exchange file. A document without leads
// or without any location is structurally unusable and fails the run;
// per-location validation happens during extraction where the offending
// location can be named.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "spida: decode exchange JSON")
	}
	if len(doc.Leads) == 0 {
		return nil, eris.New("spida: exchange file has no leads")
	}
	locations := 0
	for _, lead := range doc.Leads {
		locations += len(lead.Locations)
	}
	if locations == 0 {
		return nil, eris.New("spida: exchange file has no locations")
	}
	if err := json.Unmarshal(data, &doc.raw); err != nil {
		return nil, eris.Wrap(err, "spida: decode raw tree")
	}
	return &doc, nil
}

// Bytes serializes the document's raw tree, including any edits applied
// through ApplyEdit, preserving fields the typed view does not model.
func (d *Document) Bytes() ([]byte, error) {
	out, err := json.MarshalIndent(d.raw, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "spida: marshal document")
	}
	return out, nil
}

// Design returns the named analysis layer of the location, or nil.
func (l *Location) Design(layerType string) *Design {
	for i := range l.Designs {
		if l.Designs[i].LayerType == layerType {
			return &l.Designs[i]
		}
	}
	return nil
}

// OwnersTable maps ownerId to owner display name across all leads.
func (d *Document) OwnersTable() map[string]string {
	owners := map[string]string{}
	for _, lead := range d.Leads {
		for _, o := range lead.Owners {
			name := o.Name
			if name == "" {
				name = o.ID
			}
			owners[o.ID] = name
		}
	}
	return owners
}

// allAttachments yields every attachment, wire and span in the
// structure, including those nested under structure nodes.
func (s *Structure) allAttachments() []Attachment {
	out := make([]Attachment, 0, len(s.Attachments)+len(s.Wires)+len(s.Spans))
	out = append(out, s.Attachments...)
	out = append(out, s.Wires...)
	out = append(out, s.Spans...)
	for _, n := range s.Nodes {
		out = append(out, n.Attachments...)
		out = append(out, n.Wires...)
		out = append(out, n.Spans...)
	}
	return out
}
