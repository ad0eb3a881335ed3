package spida

import (
	"fmt"
	"strings"

	"github.com/sells-group/polecheck/internal/resolve"
)

// AliasTable maps every catalogue alias id to a fully built spec
// string, so locations referencing a pole by alias resolve in O(1).
func AliasTable(doc *Document) map[string]string {
	table := map[string]string{}
	for _, pole := range doc.ClientData.Poles {
		spec := catalogueSpec(pole)
		if spec == "" {
			continue
		}
		for _, alias := range pole.Aliases {
			if alias.ID != "" {
				table[alias.ID] = spec
			}
		}
	}
	return table
}

func catalogueSpec(pole ClientPole) string {
	class := pole.ClassOfPole
	if class == "" {
		class = pole.Class
	}
	feet, hasFeet := resolve.Feet(pole.Height)
	return composeSpec(feet, hasFeet, class, pole.Species)
}

// BuildSpec renders the human-facing spec string for a location's pole:
// catalogue alias lookup first, then direct parse of a "45-3"-shaped
// alias, then construction from the raw client item fields.
func BuildSpec(pole Pole, aliases map[string]string) string {
	alias := strings.TrimSpace(strings.ReplaceAll(pole.ClientItemAlias, "′", "'"))

	if alias != "" {
		if spec, ok := aliases[alias]; ok {
			return spec
		}
		if height, class, ok := splitAlias(alias); ok {
			return composeSpec(height, true, class, pole.ClientItem.Species)
		}
	}

	class := pole.ClientItem.ClassOfPole
	if class == "" {
		class = pole.ClientItem.Class
	}
	feet, hasFeet := resolve.Feet(pole.ClientItem.Height)
	return composeSpec(feet, hasFeet, class, pole.ClientItem.Species)
}

// splitAlias parses the standard "45-3" alias shape.
func splitAlias(alias string) (heightFt int, class string, ok bool) {
	before, after, found := strings.Cut(alias, "-")
	if !found {
		return 0, "", false
	}
	before = strings.TrimSuffix(strings.TrimSpace(before), "'")
	after = strings.TrimSpace(after)
	if after == "" {
		return 0, "", false
	}
	ft, ok := resolve.Feet(before)
	if !ok {
		return 0, "", false
	}
	return ft, after, true
}

// composeSpec assembles whatever components are known into the
// conventional display form, degrading gracefully as pieces go absent.
func composeSpec(heightFt int, hasHeight bool, class, species string) string {
	class = strings.TrimSpace(class)
	species = strings.TrimSpace(species)
	switch {
	case hasHeight && class != "" && species != "":
		return fmt.Sprintf("%d'-%s %s", heightFt, class, species)
	case hasHeight && class != "":
		return fmt.Sprintf("%d'-%s", heightFt, class)
	case hasHeight && species != "":
		return fmt.Sprintf("%d' %s", heightFt, species)
	case class != "" && species != "":
		return fmt.Sprintf("%s %s", class, species)
	}
	return species
}
