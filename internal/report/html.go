// internal/report/html.go
//
// Report generators are pure functions of the selected elements: build the
// whole document in memory, then overwrite the target path in one write.
// None of them read back what they wrote.

package report

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/kingrea/elementarium/internal/dataset"
)

// DefaultHTMLPath is where the element overview lands unless configured.
const DefaultHTMLPath = "periodic_table.html"

// HTML renders the three-column element overview table in collection order.
// Field values are escaped before interpolation.
func HTML(elements []*dataset.Element) string {
	var b strings.Builder
	b.WriteString("<html>\n<body>\n<h1>Periodic Table of Elements</h1>\n")
	b.WriteString("<table border='1'>\n<tr>\n<th>Symbol</th>\n<th>Name</th>\n<th>Atomic number</th>\n</tr>\n")
	for _, el := range elements {
		fmt.Fprintf(&b, "<tr>\n<td>%s</td>\n<td>%s</td>\n<td>%s</td>\n</tr>\n",
			html.EscapeString(el.Symbol()),
			html.EscapeString(el.Name()),
			html.EscapeString(el.Get(dataset.FieldAtomicNumber)),
		)
	}
	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}

// WriteHTML writes the element overview to path, truncating any previous
// file. A write failure is fatal to the call.
func WriteHTML(elements []*dataset.Element, path string) error {
	if err := os.WriteFile(path, []byte(HTML(elements)), 0o644); err != nil {
		return fmt.Errorf("report: write html %s: %w", path, err)
	}
	return nil
}
