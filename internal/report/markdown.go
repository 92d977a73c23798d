package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/kingrea/elementarium/internal/dataset"
)

// DefaultMarkdownPath is where the group overview lands unless configured.
const DefaultMarkdownPath = "group_overview.md"

// Markdown renders one section per element: a level-2 heading with symbol
// and name, then atomic-number and atomic-mass bullets. Filtering to a
// group or period is the caller's job; an empty collection yields just the
// top heading.
func Markdown(elements []*dataset.Element) string {
	var b strings.Builder
	b.WriteString("# Chemical Elements Overview\n\n")
	for _, el := range elements {
		fmt.Fprintf(&b, "## %s (%s)\n", el.Symbol(), el.Name())
		fmt.Fprintf(&b, "- Atomic number: %s\n", el.Get(dataset.FieldAtomicNumber))
		fmt.Fprintf(&b, "- Relative atomic mass: %s\n\n", el.Get(dataset.FieldAtomicMass))
	}
	return b.String()
}

// WriteMarkdown writes the overview to path, truncating any previous file.
func WriteMarkdown(elements []*dataset.Element, path string) error {
	if err := os.WriteFile(path, []byte(Markdown(elements)), 0o644); err != nil {
		return fmt.Errorf("report: write markdown %s: %w", path, err)
	}
	return nil
}
