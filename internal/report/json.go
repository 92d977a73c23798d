package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kingrea/elementarium/internal/dataset"
)

// DefaultJSONPath is where the selected-elements export lands unless
// configured.
const DefaultJSONPath = "selected_elements.json"

// SelectBySymbols filters the collection to elements whose symbol appears
// in the requested set. Output order follows the source collection, not the
// request; symbols with no match are silently dropped.
func SelectBySymbols(elements []*dataset.Element, symbols []string) []*dataset.Element {
	wanted := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		wanted[s] = struct{}{}
	}
	selected := make([]*dataset.Element, 0, len(symbols))
	for _, el := range elements {
		if _, ok := wanted[el.Symbol()]; ok {
			selected = append(selected, el)
		}
	}
	return selected
}

// WriteJSON exports the elements matching the requested symbols as an
// indented JSON array, every field preserved in column order. It returns
// the number of elements exported.
func WriteJSON(elements []*dataset.Element, symbols []string, path string) (int, error) {
	selected := SelectBySymbols(elements, symbols)
	data, err := json.MarshalIndent(selected, "", "    ")
	if err != nil {
		return 0, fmt.Errorf("report: encode json export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("report: write json %s: %w", path, err)
	}
	return len(selected), nil
}
