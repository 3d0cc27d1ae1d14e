package search

import "ecogenius/internal/bins"

// Item is one entry of the search guide.
type Item struct {
	Name        string        `json:"name"`
	Category    bins.Category `json:"category"`
	BinType     bins.Type     `json:"bin_type"`
	Tip         string        `json:"tip"`
	Explanation string        `json:"explanation"`
}

// Items is the built-in Melbourne guide.
var Items = []Item{
	{
		Name:        "Pizza Box",
		Category:    bins.CategoryCardboard,
		BinType:     bins.YellowRecycling,
		Tip:         "Remove any food residue and grease. Clean boxes only.",
		Explanation: "Pizza boxes can be recycled if they're clean, but greasy parts should go to red bin.",
	},
	{
		Name:        "Coffee Cup",
		Category:    bins.CategoryLandfill,
		BinType:     bins.RedLandfill,
		Tip:         "Most takeaway coffee cups have plastic lining and can't be recycled.",
		Explanation: "The plastic lining in most coffee cups prevents recycling in Melbourne.",
	},
	{
		Name:        "Aluminum Foil",
		Category:    bins.CategoryMetal,
		BinType:     bins.YellowRecycling,
		Tip:         "Scrunch into a ball larger than a golf ball for better sorting.",
		Explanation: "Clean aluminum foil can be recycled if scrunched into a large ball.",
	},
	{
		Name:        "Glass Jar",
		Category:    bins.CategoryGlass,
		BinType:     bins.YellowRecycling,
		Tip:         "Remove lids and rinse clean. Labels can stay on.",
		Explanation: "Glass jars are infinitely recyclable when clean and lid-free.",
	},
	{
		Name:        "Plastic Water Bottle",
		Category:    bins.CategoryPlastic,
		BinType:     bins.YellowRecycling,
		Tip:         "Empty completely and replace the cap before recycling.",
		Explanation: "PET plastic bottles are easily recyclable when empty and capped.",
	},
	{
		Name:        "Banana Peel",
		Category:    bins.CategoryOrganic,
		BinType:     bins.GreenOrganics,
		Tip:         "All fruit and vegetable scraps go in the green bin.",
		Explanation: "Organic waste composts into valuable soil when processed correctly.",
	},
	{
		Name:        "Styrofoam Container",
		Category:    bins.CategoryLandfill,
		BinType:     bins.RedLandfill,
		Tip:         "Polystyrene foam cannot be recycled in household bins.",
		Explanation: "Styrofoam/polystyrene requires special facilities not available in Melbourne kerbside.",
	},
	{
		Name:        "Old Mobile Phone",
		Category:    bins.CategoryEWaste,
		BinType:     bins.SpecialCollection,
		Tip:         "Take to MobileMuster or council e-waste drop-off points.",
		Explanation: "Electronic devices contain valuable materials that require special recycling.",
	},
	{
		Name:        "Cardboard Box",
		Category:    bins.CategoryCardboard,
		BinType:     bins.YellowRecycling,
		Tip:         "Flatten boxes to save space. Remove tape if possible.",
		Explanation: "Clean cardboard is highly recyclable and makes new paper products.",
	},
	{
		Name:        "Milk Carton",
		Category:    bins.CategoryCardboard,
		BinType:     bins.YellowRecycling,
		Tip:         "Rinse clean and you can leave the cap on.",
		Explanation: "Milk cartons are made from recyclable cardboard despite plastic lining.",
	},
	{
		Name:        "Used Batteries",
		Category:    bins.CategoryEWaste,
		BinType:     bins.SpecialCollection,
		Tip:         "Never put in household bins. Drop off at supermarkets or council facilities.",
		Explanation: "Batteries can cause fires and leak toxic chemicals.",
	},
	{
		Name:        "Light Bulb",
		Category:    bins.CategoryEWaste,
		BinType:     bins.SpecialCollection,
		Tip:         "Fluorescent and LED bulbs are e-waste. Take to special drop-off points.",
		Explanation: "These bulbs contain materials that need special handling.",
	},
	{
		Name:        "Plastic Bag",
		Category:    bins.CategoryLandfill,
		BinType:     bins.RedLandfill,
		Tip:         "Return to major supermarkets for REDcycle, otherwise landfill. NEVER in yellow bin.",
		Explanation: "Soft plastics jam recycling machinery.",
	},
}

// AllCategories is the filter value that disables category filtering.
const AllCategories = "all"

// FilterCategories lists the category filter chips in display order.
func FilterCategories() []string {
	return []string{
		AllCategories,
		string(bins.CategoryPlastic),
		string(bins.CategoryGlass),
		string(bins.CategoryPaper),
		string(bins.CategoryCardboard),
		string(bins.CategoryMetal),
		string(bins.CategoryOrganic),
		string(bins.CategoryLandfill),
		string(bins.CategoryEWaste),
	}
}

const popularCount = 6

// PopularItems returns the items shown before the user types anything.
func PopularItems() []Item {
	out := make([]Item, popularCount)
	copy(out, Items[:popularCount])
	return out
}
