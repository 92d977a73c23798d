package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const elementsCSV = `Symbol,Element,AtomicNumber,AtomicMass,Group,Period
H,Hydrogen,1,1.008,,1
He,Helium,2,4.0026,18,1
O,Oxygen,8,15.999,16,2
`

const groupsJSON = `[
  {"cs": "alkali metals", "elements": ["Li", "Na", "K"]},
  {"cs": "noble gases", "elements": ["He", "Ne", "Ar"]},
  {"cs": "chalcogens", "elements": ["O", "S", "He"]}
]`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadElementsPreservesRowsAndFields(t *testing.T) {
	path := writeFixture(t, "elements.csv", elementsCSV)
	elements, err := LoadElements(path)
	if err != nil {
		t.Fatalf("load elements: %v", err)
	}
	if len(elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(elements))
	}
	seen := map[string]struct{}{}
	for _, el := range elements {
		if _, dup := seen[el.Symbol()]; dup {
			t.Fatalf("duplicate symbol %s in fixture", el.Symbol())
		}
		seen[el.Symbol()] = struct{}{}
		if got := el.Fields(); len(got) != 6 {
			t.Fatalf("expected 6 fields, got %v", got)
		}
	}
	if elements[0].Symbol() != "H" || elements[2].Symbol() != "O" {
		t.Fatalf("row order not preserved: %s ... %s", elements[0].Symbol(), elements[2].Symbol())
	}
	if elements[0].Group() != "" {
		t.Fatalf("expected empty group for hydrogen, got %q", elements[0].Group())
	}
}

func TestLoadElementsMissingFile(t *testing.T) {
	elements, err := LoadElements(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}
	if len(elements) != 0 {
		t.Fatalf("expected empty collection, got %d elements", len(elements))
	}
}

func TestLoadGroups(t *testing.T) {
	path := writeFixture(t, "groups.json", groupsJSON)
	table, err := LoadGroups(path)
	if err != nil {
		t.Fatalf("load groups: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(table))
	}
	if table[0].Label != "alkali metals" {
		t.Fatalf("unexpected first label: %s", table[0].Label)
	}
}

func TestLoadGroupsMissingFile(t *testing.T) {
	table, err := LoadGroups(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrMissingSource) {
		t.Fatalf("expected ErrMissingSource, got %v", err)
	}
	if len(table) != 0 {
		t.Fatalf("expected empty table, got %d groups", len(table))
	}
}

func TestLoadGroupsRejectsNonSequence(t *testing.T) {
	path := writeFixture(t, "groups.json", `{"cs": "not a list"}`)
	if _, err := LoadGroups(path); err == nil {
		t.Fatalf("expected decode error for non-sequence source")
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	path := writeFixture(t, "groups.json", groupsJSON)
	table, err := LoadGroups(path)
	if err != nil {
		t.Fatalf("load groups: %v", err)
	}
	// He is listed under both noble gases and chalcogens; table order decides.
	if got := table.Resolve("He"); got != "noble gases" {
		t.Fatalf("expected first-match resolution, got %q", got)
	}
	if got := table.Resolve("Zz"); got != UnknownGroup {
		t.Fatalf("expected sentinel for unlisted symbol, got %q", got)
	}
}

func TestLoadElementsMalformedRow(t *testing.T) {
	broken := strings.Replace(elementsCSV, "He,Helium,2,4.0026,18,1", `He,"Helium`, 1)
	path := writeFixture(t, "elements.csv", broken)
	if _, err := LoadElements(path); err == nil {
		t.Fatalf("expected parse error for malformed row")
	}
}
