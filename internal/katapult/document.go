package katapult

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Node is one map node in the job: a pole, a service location, a
// reference point. Everything interesting lives in the attribute bag.
type Node struct {
	Attributes map[string]Attr `json:"attributes"`
}

// Connection joins two nodes, optionally via sections.
type Connection struct {
	NodeID1    string                     `json:"node_id_1"`
	NodeID2    string                     `json:"node_id_2"`
	Sections   map[string]json.RawMessage `json:"sections"`
	Attributes map[string]Attr            `json:"attributes"`
}

// Document is a parsed Field Source job export. The raw tree is kept
// alongside the typed view so the birthmark collector can walk blocks
// that appear at arbitrary depths.
type Document struct {
	Nodes       map[string]Node       `json:"nodes"`
	Connections map[string]Connection `json:"connections"`

	raw any
}

// Parse decodes a Field Source job export. A document without a nodes
// map is structurally unusable and fails the run; everything else
// degrades per-field.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "katapult: decode job JSON")
	}
	if len(doc.Nodes) == 0 {
		return nil, eris.New("katapult: job has no nodes map")
	}
	if err := json.Unmarshal(data, &doc.raw); err != nil {
		return nil, eris.Wrap(err, "katapult: decode raw tree")
	}
	return &doc, nil
}

// SectionToConnection indexes every section id to its owning connection.
func (d *Document) SectionToConnection() map[string]*Connection {
	idx := make(map[string]*Connection)
	for id := range d.Connections {
		conn := d.Connections[id]
		for sid := range conn.Sections {
			idx[sid] = &conn
		}
	}
	return idx
}

// Birthmark is a pole manufacturing record scattered through the job
// tree; it carries the as-built height, class and species.
type Birthmark struct {
	Height  any
	Class   string
	Species string
}

// Birthmarks collects every birthmark block in the document into one
// map keyed by birthmark id. The walk is a pure fold over the raw tree:
// each call returns its own accumulated map and the merge happens on
// the way up, with no state shared outside the recursion.
func (d *Document) Birthmarks() map[string]Birthmark {
	return collectBirthmarks(d.raw)
}

func collectBirthmarks(v any) map[string]Birthmark {
	out := map[string]Birthmark{}
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if k == "birthmark" {
				mergeBirthmarks(out, child)
				continue
			}
			for id, bm := range collectBirthmarks(child) {
				out[id] = bm
			}
		}
	case []any:
		for _, child := range t {
			for id, bm := range collectBirthmarks(child) {
				out[id] = bm
			}
		}
	}
	return out
}

func mergeBirthmarks(out map[string]Birthmark, v any) {
	entries, ok := v.(map[string]any)
	if !ok {
		return
	}
	for id, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		bm := Birthmark{Height: fields["height"]}
		if s, ok := fields["class"].(string); ok {
			bm.Class = s
		}
		if s, ok := fields["species"].(string); ok {
			bm.Species = s
		}
		out[id] = bm
	}
}
