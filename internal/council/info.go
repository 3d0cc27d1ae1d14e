package council

// Bin describes one kerbside bin in the standard three-bin system.
type Bin struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Color    string   `json:"color"`
	Icon     string   `json:"icon"`
	Accepted []string `json:"accepted"`
	Rejected []string `json:"rejected"`
}

// BulkyWaste describes hard waste collection.
type BulkyWaste struct {
	BookingRequired bool     `json:"booking_required"`
	BookingURL      string   `json:"booking_url"`
	Cost            string   `json:"cost"`
	ItemLimits      string   `json:"item_limits"`
	Instructions    string   `json:"instructions"`
	Accepted        []string `json:"accepted"`
	Rejected        []string `json:"rejected"`
}

// Contact holds waste services contact details.
type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
	Hours   string `json:"hours"`
}

// SpecialWaste is one drop-off stream.
type SpecialWaste struct {
	Key          string   `json:"key"`
	Title        string   `json:"title"`
	Items        []string `json:"items"`
	Locations    []string `json:"locations"`
	Instructions string   `json:"instructions"`
}

// Info bundles everything shown on a council page.
type Info struct {
	Council      Council        `json:"council"`
	Bins         []Bin          `json:"bins"`
	BulkyWaste   BulkyWaste     `json:"bulky_waste"`
	Contact      Contact        `json:"contact"`
	SpecialWaste []SpecialWaste `json:"special_waste"`
}

// Lookup returns the full information page for council id.
func Lookup(id string) (Info, error) {
	c, err := ByID(id)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Council:      c,
		Bins:         StandardBins(),
		BulkyWaste:   bulkyWasteFor(c.ID),
		Contact:      contactFor(c.ID),
		SpecialWaste: SpecialWasteGuide(),
	}, nil
}

// StandardBins returns the three-bin system shared by every council.
func StandardBins() []Bin {
	return []Bin{
		{
			Key:   "red",
			Name:  "Red Bin",
			Type:  "General Waste",
			Color: "#DC2626",
			Icon:  "🗑️",
			Accepted: []string{
				"Food scraps and leftovers",
				"Dirty paper and cardboard",
				"Cigarette butts",
				"Cat litter and pet waste",
				"Broken ceramics and dishes",
				"Disposable nappies",
				"Tissues and paper towels",
				"Vacuum cleaner dust",
			},
			Rejected: []string{
				"Recyclable materials",
				"Garden waste and organics",
				"Electronic waste",
				"Batteries",
				"Paint and chemicals",
				"Large items",
			},
		},
		{
			Key:   "yellow",
			Name:  "Yellow Bin",
			Type:  "Mixed Recycling",
			Color: "#EAB308",
			Icon:  "♻️",
			Accepted: []string{
				"Paper and cardboard",
				"Plastic bottles and containers",
				"Glass bottles and jars",
				"Steel and aluminum cans",
				"Milk and juice cartons",
				"Newspapers and magazines",
				"Clean packaging materials",
			},
			Rejected: []string{
				"Soft plastics and bags",
				"Polystyrene foam",
				"Broken glass",
				"Electronic waste",
				"Batteries",
				"Food contaminated items",
				"Nappies or tissues",
			},
		},
		{
			Key:   "green",
			Name:  "Green Bin",
			Type:  "Garden & Food Organics",
			Color: "#16A085",
			Icon:  "🌿",
			Accepted: []string{
				"Grass clippings and leaves",
				"Small branches and prunings",
				"Flowers and plants",
				"Fruit and vegetable scraps",
				"Coffee grounds and tea bags",
				"Eggshells",
				"Pizza boxes (clean)",
				"Paper towels (food soiled)",
			},
			Rejected: []string{
				"Large branches (over 10cm)",
				"Treated timber",
				"Weeds with seeds",
				"Pet waste",
				"Plastic pots and bags",
				"General waste",
				"Diseased plants",
			},
		},
	}
}

var bookingURLs = map[string]string{
	"melbourne":    "https://www.melbourne.vic.gov.au/hard-waste",
	"monash":       "https://www.monash.vic.gov.au/Waste-Sustainability/Hard-waste-collection",
	"port-phillip": "https://www.portphillip.vic.gov.au/council-services/waste-recycling-and-rubbish/hard-waste-collection",
	"yarra":        "https://www.yarracity.vic.gov.au/services/waste-and-recycling/hard-waste-collection",
}

var websites = map[string]string{
	"melbourne":    "https://www.melbourne.vic.gov.au/waste-recycling",
	"monash":       "https://www.monash.vic.gov.au/Waste-Sustainability",
	"port-phillip": "https://www.portphillip.vic.gov.au/council-services/waste-recycling-and-rubbish",
	"yarra":        "https://www.yarracity.vic.gov.au/services/waste-and-recycling",
}

func bulkyWasteFor(id string) BulkyWaste {
	url, ok := bookingURLs[id]
	if !ok {
		url = bookingURLs["melbourne"]
	}
	return BulkyWaste{
		BookingRequired: true,
		BookingURL:      url,
		Cost:            "Free for 2 items per year, $25 for additional collections",
		ItemLimits:      "Maximum 2 cubic meters per collection",
		Instructions:    "Items must be placed on nature strip by 6am on collection day",
		Accepted: []string{
			"Furniture (couches, chairs, tables)",
			"Appliances (fridges, washing machines)",
			"Mattresses and bed frames",
			"Garden tools and equipment",
			"Bicycles",
			"Carpet and rugs",
			"Timber and building materials",
		},
		Rejected: []string{
			"Hazardous materials",
			"Asbestos products",
			"Paint and chemicals",
			"Car parts and batteries",
			"Renovation rubble",
			"Business/commercial waste",
			"Electronic waste (take to e-waste centers)",
		},
	}
}

func contactFor(id string) Contact {
	site, ok := websites[id]
	if !ok {
		site = websites["melbourne"]
	}
	return Contact{
		Phone:   "03 9658 9658",
		Email:   "waste@melbourne.vic.gov.au",
		Website: site,
		Hours:   "Monday to Friday: 8:30am - 5:00pm",
	}
}

// SpecialWasteGuide lists the drop-off streams that never go in kerbside bins.
func SpecialWasteGuide() []SpecialWaste {
	return []SpecialWaste{
		{
			Key:   "ewaste",
			Title: "Electronic Waste",
			Items: []string{
				"Mobile phones and tablets",
				"Computers and laptops",
				"TVs and monitors",
				"Printers and scanners",
				"Gaming consoles",
				"Small electrical appliances",
			},
			Locations: []string{
				"Council recycling centers",
				"Aldi stores (small e-waste only)",
				"JB Hi-Fi stores",
				"Officeworks stores",
				"Mobile Muster drop-off points",
			},
			Instructions: "Remove all personal data before disposal. Many retailers offer free take-back programs.",
		},
		{
			Key:   "batteries",
			Title: "Batteries",
			Items: []string{
				"AA, AAA, C, D batteries",
				"Button cell batteries",
				"Rechargeable batteries",
				"Mobile phone batteries",
				"Laptop batteries",
				"Car batteries (lead acid)",
			},
			Locations: []string{
				"Aldi stores",
				"Bunnings Warehouse",
				"Woolworths and Coles",
				"Battery World stores",
				"Council facilities",
			},
			Instructions: "Never put batteries in household bins. Tape terminals of lithium batteries before disposal.",
		},
		{
			Key:   "softPlastics",
			Title: "Soft Plastics",
			Items: []string{
				"Plastic shopping bags",
				"Bread bags",
				"Frozen food bags",
				"Bubble wrap",
				"Plastic wrap and film",
				"Squeezable sauce bottles",
			},
			Locations: []string{
				"Coles stores (REDcycle bins)",
				"Woolworths stores (REDcycle bins)",
				"Some IGA stores",
				"Bunnings Warehouse",
			},
			Instructions: "Clean and dry all soft plastics. Check that items scrunch in your hand - if they spring back, they're soft plastic.",
		},
		{
			Key:   "textiles",
			Title: "Textiles & Clothing",
			Items: []string{
				"Clothing in any condition",
				"Shoes and accessories",
				"Bed linens and towels",
				"Curtains and fabric",
				"Bags and belts",
				"Stuffed animals",
			},
			Locations: []string{
				"Salvation Army stores",
				"Vinnies (St Vincent de Paul)",
				"Red Cross op shops",
				"H&M stores (any brand clothing)",
				"Council textile bins",
			},
			Instructions: "Items don't need to be in perfect condition. Many charities can still use damaged items for recycling.",
		},
	}
}
