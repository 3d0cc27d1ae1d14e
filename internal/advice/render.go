package advice

import (
	"fmt"
	"io"
	"strings"
)

const ansiReset = "\033[0m"

var bandANSI = map[Band]string{
	BandGreen:  "\033[32m",
	BandYellow: "\033[33m",
	BandRed:    "\033[31m",
}

// RenderText writes card as plain text. colorize adds ANSI colours for
// terminals.
func RenderText(w io.Writer, card Card, colorize bool) error {
	paint := func(code, text string) string {
		if !colorize || code == "" {
			return text
		}
		return code + text + ansiReset
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", card.CategoryEmoji, card.ItemName)
	fmt.Fprintf(&b, "[%s] [%s]\n", card.CategoryLabel, paint(bandANSI[card.Band], card.Confidence))
	b.WriteString("\n")
	writeBin(&b, card.Primary, paint)
	if card.Alternative != nil {
		writeBin(&b, *card.Alternative, paint)
	}
	if card.Tip != "" {
		fmt.Fprintf(&b, "Tip: %s\n", card.Tip)
	}
	if card.Explanation != "" {
		fmt.Fprintf(&b, "Why: %s\n", card.Explanation)
	}
	if card.Impact != "" {
		fmt.Fprintf(&b, "\n🌍 %s\n", card.Impact)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeBin(b *strings.Builder, bin BinCard, paint func(string, string) string) {
	fmt.Fprintf(b, "%s: %s %s\n", bin.Label, bin.Icon, paint(bin.ANSI, bin.Name))
	fmt.Fprintf(b, "   %s\n", bin.Description)
}
