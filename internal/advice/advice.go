// Package advice turns a classification result into a display card and
// renders it for the terminal.
package advice

import (
	"fmt"
	"math"

	"ecogenius/internal/bins"
	"ecogenius/internal/classify"
	"ecogenius/internal/textutil"
)

// Band is the colour band of the confidence badge.
type Band string

const (
	BandGreen  Band = "green"
	BandYellow Band = "yellow"
	BandRed    Band = "red"
)

// ConfidenceBand maps a confidence score to its badge colour.
func ConfidenceBand(score float64) Band {
	switch {
	case score >= 80:
		return BandGreen
	case score >= 60:
		return BandYellow
	default:
		return BandRed
	}
}

// BinCard is one bin panel.
type BinCard struct {
	bins.Info
	Label string `json:"label"`
}

// Card is the view model for a classification result.
type Card struct {
	ItemName      string        `json:"item_name"`
	CategoryEmoji string        `json:"category_emoji"`
	CategoryLabel string        `json:"category_label"`
	Category      bins.Category `json:"category"`
	Confidence    string        `json:"confidence"`
	Band          Band          `json:"confidence_band"`
	Primary       BinCard       `json:"primary"`
	Alternative   *BinCard      `json:"alternative,omitempty"`
	Tip           string        `json:"tip"`
	Explanation   string        `json:"explanation"`
	Impact        string        `json:"impact,omitempty"`
	// Unrecognized is set when the model named a bin outside the known four.
	Unrecognized bool `json:"unrecognized"`
}

// Options tunes Build.
type Options struct {
	// Picker chooses the impact equivalence. Nil means a SeededPicker.
	Picker ImpactPicker
}

// UnknownBin is shown when the model returns a bin we do not know.
var UnknownBin = BinCard{
	Info: bins.Info{
		Type:        bins.RedLandfill,
		Name:        "Unknown - use landfill",
		Icon:        "❔",
		Description: "We couldn't match this to a bin. When in doubt, use the red landfill bin.",
		Color:       "bg-gray-100 text-gray-800 border-gray-200",
		ANSI:        "\033[90m",
	},
	Label: "Put it in",
}

// Build assembles the card for result.
func Build(result classify.Result, opts Options) Card {
	picker := opts.Picker
	if picker == nil {
		picker = SeededPicker{}
	}

	card := Card{
		ItemName:      result.ItemName,
		Category:      result.Category,
		CategoryEmoji: result.Category.Emoji(),
		CategoryLabel: categoryLabel(result.Category),
		Confidence:    fmt.Sprintf("%d%% confident", int(math.Round(result.ConfidenceScore))),
		Band:          ConfidenceBand(result.ConfidenceScore),
		Tip:           result.RecyclingTip,
		Explanation:   result.Explanation,
	}

	if info, ok := bins.Lookup(result.BinType); ok {
		card.Primary = BinCard{Info: info, Label: "Put it in"}
	} else {
		card.Primary = UnknownBin
		card.Unrecognized = true
	}

	if result.HasAlternative() {
		if info, ok := bins.Lookup(result.AlternativeBinType); ok {
			card.Alternative = &BinCard{Info: info, Label: "Or alternatively"}
		}
	}

	card.Impact = Impact(result.CO2SavedGrams, picker.Pick(result))
	return card
}

func categoryLabel(c bins.Category) string {
	if c == "" {
		return "Unknown"
	}
	return textutil.TitleCase(string(c))
}
