package advice

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strconv"

	"ecogenius/internal/classify"
)

// Equivalence converts grams of CO2 into something relatable.
type Equivalence struct {
	Name     string
	Unit     string
	PerUnit  float64
	Decimals int
}

// Equivalences lists the relatable comparisons in selection order.
var Equivalences = []Equivalence{
	{Name: "LED light bulb", Unit: "hours", PerUnit: 9, Decimals: 1},
	{Name: "laptop", Unit: "hours of work", PerUnit: 72, Decimals: 1},
	{Name: "car travel", Unit: "km", PerUnit: 150, Decimals: 2},
}

// Impact renders the sentence for grams using equivalence index idx.
// It returns "" when nothing was saved.
func Impact(grams float64, idx int) string {
	if grams <= 0 {
		return ""
	}
	eq := Equivalences[((idx%len(Equivalences))+len(Equivalences))%len(Equivalences)]
	value := strconv.FormatFloat(grams/eq.PerUnit, 'f', eq.Decimals, 64)
	return fmt.Sprintf("That's like powering a %s for %s %s!", eq.Name, value, eq.Unit)
}

// ImpactPicker chooses which equivalence to show for a result.
type ImpactPicker interface {
	Pick(result classify.Result) int
}

// SeededPicker derives the choice from the result identity so the same result
// always renders the same sentence.
type SeededPicker struct{}

// Pick hashes item name, bin and grams.
func (SeededPicker) Pick(result classify.Result) int {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s|%g", result.ItemName, result.BinType, result.CO2SavedGrams)
	return int(h.Sum32() % uint32(len(Equivalences)))
}

// RandomPicker picks a fresh equivalence on every render.
type RandomPicker struct{}

// Pick returns a random index.
func (RandomPicker) Pick(classify.Result) int {
	return rand.IntN(len(Equivalences))
}

// FixedPicker always returns the same index. Useful for previews and tests.
type FixedPicker int

// Pick returns the fixed index.
func (p FixedPicker) Pick(classify.Result) int { return int(p) }
