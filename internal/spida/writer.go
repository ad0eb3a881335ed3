package spida

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// EditField names a design-side editable field for ApplyEdit.
type EditField string

const (
	EditSpec     EditField = "spec"
	EditExisting EditField = "existing_pct"
	EditFinal    EditField = "final_pct"
	EditDrop     EditField = "drop"
)

// ParseEditField maps a user-supplied field name onto an EditField.
func ParseEditField(s string) (EditField, error) {
	switch EditField(strings.ToLower(strings.TrimSpace(s))) {
	case EditSpec:
		return EditSpec, nil
	case EditExisting:
		return EditExisting, nil
	case EditFinal:
		return EditFinal, nil
	case EditDrop:
		return EditDrop, nil
	}
	return "", eris.Errorf("spida: unknown editable field %q (want spec, existing_pct, final_pct or drop)", s)
}

// ApplyEdit patches one asset's field in the document's raw tree so the
// document can be written back to disk with the edit in place. The
// target is located by recomputing the same traversal-order sequence
// ids used during extraction; the document must not have been
// restructured since the comparison, or the sequence id will name the
// wrong asset.
//
// serviceOwner selects whose attachments a drop edit inserts/removes.
func (d *Document) ApplyEdit(scid string, field EditField, value, serviceOwner string) error {
	loc, err := d.rawLocation(scid)
	if err != nil {
		return err
	}

	rec := rawDesign(loc, LayerRecommended)
	if rec == nil {
		return eris.Errorf("spida: asset %s has no %s design", scid, LayerRecommended)
	}

	switch field {
	case EditSpec:
		return updatePoleSpec(rec, value)
	case EditExisting:
		return setLoading(loc, LayerMeasured, value)
	case EditFinal:
		return setLoading(loc, LayerRecommended, value)
	case EditDrop:
		want := isAffirmative(value)
		toggleServiceDrop(rec, want, serviceOwner)
		return nil
	}
	return eris.Errorf("spida: unknown editable field %q", string(field))
}

// rawLocation walks the raw tree with the extraction traversal and
// returns the location whose sequence id matches scid.
func (d *Document) rawLocation(scid string) (map[string]any, error) {
	leads, _ := d.raw["leads"].([]any)
	seq := 0
	for _, l := range leads {
		lead, _ := l.(map[string]any)
		locations, _ := lead["locations"].([]any)
		for _, lo := range locations {
			seq++
			loc, ok := lo.(map[string]any)
			if !ok {
				continue
			}
			if fmt.Sprintf("%03d", seq) == scid {
				return loc, nil
			}
		}
	}
	return nil, eris.Errorf("spida: no asset with sequence id %q", scid)
}

func rawDesign(loc map[string]any, layerType string) map[string]any {
	designs, _ := loc["designs"].([]any)
	for _, de := range designs {
		design, ok := de.(map[string]any)
		if !ok {
			continue
		}
		if design["layerType"] == layerType {
			return design
		}
	}
	return nil
}

// updatePoleSpec reparses a spec string like "50'-2 Douglas Fir" into
// the pole client item's height (meters), class and species.
func updatePoleSpec(rec map[string]any, value string) error {
	cleaned := strings.TrimSpace(strings.ReplaceAll(value, "′", "'"))
	heightPart, rest, found := strings.Cut(cleaned, "'")
	if !found {
		return eris.Errorf("spida: spec %q missing height marker (want e.g. \"50'-2 Douglas Fir\")", value)
	}
	feet, err := strconv.ParseFloat(strings.TrimSpace(heightPart), 64)
	if err != nil {
		return eris.Wrapf(err, "spida: spec %q height", value)
	}

	classPart, species, found := strings.Cut(strings.TrimSpace(rest), " ")
	if !found || strings.TrimSpace(species) == "" {
		return eris.Errorf("spida: spec %q missing species (want e.g. \"50'-2 Douglas Fir\")", value)
	}
	class := strings.TrimPrefix(strings.TrimSpace(classPart), "-")
	species = strings.TrimSpace(species)

	structure, _ := rec["structure"].(map[string]any)
	if structure == nil {
		return eris.New("spida: design has no structure block")
	}
	pole, _ := structure["pole"].(map[string]any)
	if pole == nil {
		pole = map[string]any{}
		structure["pole"] = pole
	}
	clientItem, _ := pole["clientItem"].(map[string]any)
	if clientItem == nil {
		clientItem = map[string]any{}
		pole["clientItem"] = clientItem
	}
	height, _ := clientItem["height"].(map[string]any)
	if height == nil {
		height = map[string]any{"unit": "METRE"}
		clientItem["height"] = height
	}
	height["value"] = feet * 0.3048
	clientItem["classOfPole"] = class
	clientItem["species"] = species

	// Drop the catalogue alias so spec extraction reads the edited
	// fields instead of the stale catalogue reference.
	delete(pole, "clientItemAlias")

	return nil
}

// setLoading writes a percent value as a fraction into the pole
// component result of the named layer.
func setLoading(loc map[string]any, layerType, value string) error {
	pct, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(value), "%"), 64)
	if err != nil {
		return eris.Wrapf(err, "spida: percent %q", value)
	}
	frac := pct / 100

	design := rawDesign(loc, layerType)
	if design == nil {
		return eris.Errorf("spida: no %s design to update", layerType)
	}

	updated := false
	cases, _ := design["analysis"].([]any)
	for _, ca := range cases {
		c, _ := ca.(map[string]any)
		results, _ := c["results"].([]any)
		for _, re := range results {
			res, ok := re.(map[string]any)
			if !ok {
				continue
			}
			if res["component"] == "Pole" {
				res["actual"] = frac
				updated = true
			}
		}
	}
	if !updated {
		return eris.Errorf("spida: %s design has no pole analysis result", layerType)
	}
	return nil
}

// isAffirmative accepts the textual spellings of an enabled drop flag.
func isAffirmative(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(v, "t") || strings.HasPrefix(v, "y")
}

// toggleServiceDrop inserts a minimal service drop attachment when
// enabling, or removes every matching one when disabling. Matching is
// by owner id plus a client item type ending in "drop".
func toggleServiceDrop(rec map[string]any, want bool, serviceOwner string) {
	structure, _ := rec["structure"].(map[string]any)
	if structure == nil {
		structure = map[string]any{}
		rec["structure"] = structure
	}
	atts, _ := structure["attachments"].([]any)

	isDrop := func(a any) bool {
		att, ok := a.(map[string]any)
		if !ok {
			return false
		}
		owner, _ := att["owner"].(map[string]any)
		if owner == nil || owner["id"] != serviceOwner {
			return false
		}
		item, _ := att["clientItem"].(map[string]any)
		if item == nil {
			return false
		}
		t, _ := item["type"].(string)
		return strings.HasSuffix(strings.ToLower(t), "drop")
	}

	present := false
	for _, a := range atts {
		if isDrop(a) {
			present = true
			break
		}
	}

	switch {
	case want && !present:
		structure["attachments"] = append(atts, map[string]any{
			"owner":            map[string]any{"industry": "COMMUNICATION", "id": serviceOwner},
			"clientItem":       map[string]any{"type": "ServiceDrop"},
			"attachmentHeight": 18.0,
		})
	case !want && present:
		kept := make([]any, 0, len(atts))
		for _, a := range atts {
			if !isDrop(a) {
				kept = append(kept, a)
			}
		}
		structure["attachments"] = kept
	}
}
