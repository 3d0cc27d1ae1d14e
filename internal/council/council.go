// Package council maps Melbourne addresses to councils and serves the
// per-council waste information.
package council

import (
	"errors"
	"strings"

	"ecogenius/internal/textutil"
)

// ErrNoMatch is returned when no council keyword occurs in an address.
var ErrNoMatch = errors.New("we couldn't determine your council from this address. Please try entering just the suburb name or select manually")

// ErrUnknownCouncil is returned for an unknown council id.
var ErrUnknownCouncil = errors.New("unknown council")

// Council is one supported local government area.
type Council struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Logo        string   `json:"logo"`
	Keywords    []string `json:"keywords"`
}

// Match is the result of an address lookup.
type Match struct {
	Council Council `json:"council"`
	Keyword string  `json:"matched_keyword"`
	// Suburb is the matched keyword for display, e.g. "St Kilda".
	Suburb     string `json:"suburb"`
	Confidence string `json:"confidence"`
}

var councils = []Council{
	{
		ID:          "melbourne",
		Name:        "City of Melbourne",
		Description: "CBD and inner city areas",
		Logo:        "/melbourne-logo.png",
		Keywords: []string{
			"melbourne", "carlton", "carlton north", "docklands", "east melbourne",
			"flemington", "kensington", "north melbourne", "parkville", "port melbourne",
			"southbank", "south wharf", "west melbourne", "cbd", "collins street",
			"bourke street", "flinders street", "spencer street", "swanston street",
		},
	},
	{
		ID:          "monash",
		Name:        "City of Monash",
		Description: "Eastern suburbs including Clayton",
		Logo:        "/monash-logo.png",
		Keywords: []string{
			"ashwood", "burwood", "burwood east", "clayton", "clayton south",
			"glen waverley", "hughesdale", "mount waverley", "mulgrave", "notting hill",
			"oakleigh", "oakleigh east", "oakleigh south", "monash", "ferntree gully road",
		},
	},
	{
		ID:          "port-phillip",
		Name:        "City of Port Phillip",
		Description: "St Kilda, South Melbourne areas",
		Logo:        "/port-phillip-logo.png",
		Keywords: []string{
			"albert park", "balaclava", "elwood", "middle park", "port melbourne",
			"ripponlea", "south melbourne", "st kilda", "st kilda east",
			"st kilda west", "windsor", "port phillip", "chapel street", "acland street",
		},
	},
	{
		ID:          "yarra",
		Name:        "City of Yarra",
		Description: "Richmond, Collingwood areas",
		Logo:        "/yarra-logo.png",
		Keywords: []string{
			"abbotsford", "alphington", "burnley", "clifton hill", "collingwood",
			"cremorne", "fairfield", "fitzroy", "fitzroy north", "princes hill",
			"richmond", "richmond north", "yarra", "johnston street", "smith street",
		},
	},
}

// All returns the supported councils in display order.
func All() []Council {
	out := make([]Council, len(councils))
	copy(out, councils)
	return out
}

// ByID returns the council with id.
func ByID(id string) (Council, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range councils {
		if c.ID == id {
			return c, nil
		}
	}
	return Council{}, ErrUnknownCouncil
}

// FindByAddress returns the first council, in display order, with a keyword
// contained in address. Councils are checked in order, so overlapping
// keywords resolve to the earlier council.
func FindByAddress(address string) (Match, error) {
	needle := strings.ToLower(strings.TrimSpace(address))
	if needle == "" {
		return Match{}, ErrNoMatch
	}
	for _, c := range councils {
		for _, keyword := range c.Keywords {
			if strings.Contains(needle, keyword) {
				return Match{
					Council:    c,
					Keyword:    keyword,
					Suburb:     textutil.TitleCase(keyword),
					Confidence: "high",
				}, nil
			}
		}
	}
	return Match{}, ErrNoMatch
}
