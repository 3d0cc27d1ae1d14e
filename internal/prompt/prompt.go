// Package prompt builds the natural-language instructions and JSON schemas
// sent to the classification model.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"ecogenius/internal/bins"
)

// JSONInstruction is appended whenever a schema accompanies the prompt. JSON
// response mode is requested from the model but never trusted on its own.
const JSONInstruction = "Please respond with ONLY a valid JSON object, no additional text."

const imageClassification = `Analyze the image to identify the main item and provide disposal advice for Melbourne, Australia.

Please identify and return your response as a JSON object with the following fields:
1. **item_name**: The specific name (e.g., "plastic water bottle," "glass jar," "old leather jacket").
2. **category**: The material category (plastic, glass, paper, cardboard, metal, organic, landfill, e-waste, clothing).
3. **bin_type**: The CORRECT primary disposal method:
   - "yellow_recycling" for clean plastics, glass, metals, paper, cardboard
   - "green_organics" for food scraps and garden waste
   - "red_landfill" ONLY for true waste that cannot be recycled
   - "special_collection" for e-waste, clothing, batteries, etc.
4. **alternative_bin_type**: Only provide this if there's a secondary option. For most items, this should be null or the same as bin_type.
5. **explanation**: Clear explanation of why it goes in that bin and any alternatives.
6. **recycling_tip**: Specific actionable tip for this item type.
7. **confidence_score**: 0-100 confidence score.
8. **co2_saved**: CO2 savings in grams if disposed properly vs. worst option.

IMPORTANT: Don't default everything to red_landfill. Most common household items have proper recycling options. Please respond with a valid JSON object.`

const textSearch = `A user in Melbourne, Australia is searching for how to recycle %q. Provide clear recycling advice.

Respond with a JSON object containing:
1. "name": The common name of the item.
2. "category": The material category (plastic, glass, paper, cardboard, metal, organic, landfill, e-waste).
3. "bin_type": The correct Melbourne bin (yellow_recycling, green_organics, red_landfill, special_collection).
4. "tip": A short, actionable recycling tip for this item.
5. "explanation": A brief explanation of why it belongs in that bin.

If it's a very ambiguous item, make a best guess or classify it as landfill for safety. Please respond with a valid JSON object.`

// ImageClassification returns the fixed prompt for photo classification.
func ImageClassification() string {
	return imageClassification
}

// TextSearch returns the prompt for a typed search term.
func TextSearch(term string) string {
	return fmt.Sprintf(textSearch, strings.TrimSpace(term))
}

// WithJSONInstruction appends JSONInstruction when a schema is supplied.
func WithJSONInstruction(text string, schema *Schema) string {
	if schema == nil {
		return text
	}
	return text + "\n\n" + JSONInstruction
}

// Property describes one schema field.
type Property struct {
	Type string   `json:"type"`
	Enum []string `json:"enum,omitempty"`
}

// Schema is the JSON schema describing the expected model output.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// FieldNames returns the property names in sorted order.
func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRequired reports whether name is in the required subset.
func (s *Schema) IsRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ClassificationSchema describes a classification result. Every field except
// alternative_bin_type is required.
func ClassificationSchema() *Schema {
	categories := make([]string, 0, len(bins.Categories()))
	for _, c := range bins.Categories() {
		categories = append(categories, string(c))
	}
	binTypes := make([]string, 0, 4)
	for _, t := range bins.Types() {
		binTypes = append(binTypes, string(t))
	}
	alternatives := append(append([]string(nil), binTypes...), string(bins.None))

	return &Schema{
		Type: "object",
		Properties: map[string]Property{
			"item_name":            {Type: "string"},
			"category":             {Type: "string", Enum: categories},
			"bin_type":             {Type: "string", Enum: binTypes},
			"alternative_bin_type": {Type: "string", Enum: alternatives},
			"confidence_score":     {Type: "number"},
			"co2_saved":            {Type: "number"},
			"recycling_tip":        {Type: "string"},
			"explanation":          {Type: "string"},
		},
		Required: []string{"item_name", "category", "bin_type", "confidence_score", "co2_saved", "recycling_tip", "explanation"},
	}
}

// SearchSchema describes a text search answer.
func SearchSchema() *Schema {
	binTypes := make([]string, 0, 4)
	for _, t := range bins.Types() {
		binTypes = append(binTypes, string(t))
	}
	return &Schema{
		Type: "object",
		Properties: map[string]Property{
			"name":        {Type: "string"},
			"category":    {Type: "string"},
			"bin_type":    {Type: "string", Enum: binTypes},
			"tip":         {Type: "string"},
			"explanation": {Type: "string"},
		},
		Required: []string{"name", "category", "bin_type", "tip", "explanation"},
	}
}
