// Package bins holds the closed vocabularies shared by every EcoGenius
// component: item categories, kerbside bin types, and the display table for
// each bin.
package bins

import "strings"

// Category is the material class of an item.
type Category string

const (
	CategoryPlastic   Category = "plastic"
	CategoryGlass     Category = "glass"
	CategoryPaper     Category = "paper"
	CategoryCardboard Category = "cardboard"
	CategoryMetal     Category = "metal"
	CategoryOrganic   Category = "organic"
	CategoryLandfill  Category = "landfill"
	CategoryEWaste    Category = "e-waste"
	CategoryClothing  Category = "clothing"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryPlastic,
		CategoryGlass,
		CategoryPaper,
		CategoryCardboard,
		CategoryMetal,
		CategoryOrganic,
		CategoryLandfill,
		CategoryEWaste,
		CategoryClothing,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, candidate := range Categories() {
		if c == candidate {
			return true
		}
	}
	return false
}

// Emoji returns the display icon for the category; unknown categories get ❔.
func (c Category) Emoji() string {
	switch c {
	case CategoryPlastic:
		return "♻️"
	case CategoryGlass:
		return "🥃"
	case CategoryPaper:
		return "📄"
	case CategoryCardboard:
		return "📦"
	case CategoryMetal:
		return "🔧"
	case CategoryOrganic:
		return "🌱"
	case CategoryLandfill:
		return "🗑️"
	case CategoryEWaste:
		return "📱"
	case CategoryClothing:
		return "👕"
	default:
		return "❔"
	}
}

// ParseCategory normalizes model output ("E-Waste", " glass ") to a Category.
func ParseCategory(value string) Category {
	return Category(strings.ToLower(strings.TrimSpace(value)))
}

// Type is a kerbside bin.
type Type string

const (
	YellowRecycling   Type = "yellow_recycling"
	GreenOrganics     Type = "green_organics"
	RedLandfill       Type = "red_landfill"
	SpecialCollection Type = "special_collection"

	// None marks the absence of an alternative bin.
	None Type = "none"
)

// Types lists the four primary bins.
func Types() []Type {
	return []Type{YellowRecycling, GreenOrganics, RedLandfill, SpecialCollection}
}

// Valid reports whether t is one of the four primary bins. None is not valid.
func (t Type) Valid() bool {
	_, ok := table[t]
	return ok
}

// ParseType normalizes model output to a Type.
func ParseType(value string) Type {
	return Type(strings.ToLower(strings.TrimSpace(value)))
}

// Info is the display data for a bin.
type Info struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	// Color holds the utility classes the web front end renders with.
	Color string `json:"color"`
	// ANSI is the terminal colour code used by the CLI renderer.
	ANSI string `json:"-"`
}

var table = map[Type]Info{
	YellowRecycling: {
		Type:        YellowRecycling,
		Name:        "Yellow Recycling Bin",
		Icon:        "🟡",
		Description: "For recyclable plastics, glass, metals and paper",
		Color:       "bg-yellow-100 text-yellow-800 border-yellow-200",
		ANSI:        "\033[33m",
	},
	GreenOrganics: {
		Type:        GreenOrganics,
		Name:        "Green Organics Bin",
		Icon:        "🟢",
		Description: "For food scraps, garden waste and organic matter",
		Color:       "bg-green-100 text-green-800 border-green-200",
		ANSI:        "\033[32m",
	},
	RedLandfill: {
		Type:        RedLandfill,
		Name:        "Red Landfill Bin",
		Icon:        "🔴",
		Description: "For general waste that cannot be recycled",
		Color:       "bg-red-100 text-red-800 border-red-200",
		ANSI:        "\033[31m",
	},
	SpecialCollection: {
		Type:        SpecialCollection,
		Name:        "Special Collection",
		Icon:        "⭐",
		Description: "Requires drop-off at special collection points",
		Color:       "bg-purple-100 text-purple-800 border-purple-200",
		ANSI:        "\033[35m",
	},
}

// Lookup returns the display data for t.
func Lookup(t Type) (Info, bool) {
	info, ok := table[t]
	return info, ok
}
