package query

import (
	"errors"
	"math"
	"testing"

	"github.com/kingrea/elementarium/internal/dataset"
)

func testEngine() *Engine {
	fields := []string{"Symbol", "Element", "AtomicNumber", "AtomicMass", "Group", "Period"}
	row := func(symbol, name, number, mass, group, period string) *dataset.Element {
		return dataset.NewElement(fields, map[string]string{
			"Symbol":       symbol,
			"Element":      name,
			"AtomicNumber": number,
			"AtomicMass":   mass,
			"Group":        group,
			"Period":       period,
		})
	}
	elements := []*dataset.Element{
		row("H", "Hydrogen", "1", "1.008", "1", "1"),
		row("He", "Helium", "2", "4.0026", "1", "1"),
		row("O", "Oxygen", "8", "15.999", "16", "2"),
		row("Na", "Sodium", "11", "oops", "badmass", "3"),
		row("Fe", "Iron", "26", "55.845", "", "4"),
	}
	groups := dataset.GroupTable{
		{Label: "transition metals", Members: []string{"Fe", "Cu"}},
	}
	return New(elements, groups)
}

func TestSearchExactMatch(t *testing.T) {
	e := testEngine()
	el, err := e.Search("AtomicNumber", "8")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if el.Symbol() != "O" {
		t.Fatalf("expected oxygen, got %s", el.Symbol())
	}
}

func TestSearchNoNormalization(t *testing.T) {
	e := testEngine()
	// "08" is not "8": matching is raw string equality.
	if _, err := e.Search("AtomicNumber", "08"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for zero-padded value, got %v", err)
	}
	if _, err := e.Search("Symbol", "h"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected case-sensitive match, got %v", err)
	}
}

func TestSearchAbsentCriterionNeverMatches(t *testing.T) {
	e := testEngine()
	// An unknown column must not match, even against the empty string.
	if _, err := e.Search("Bogus", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent criterion, got %v", err)
	}
}

func TestSearchNotFoundSignal(t *testing.T) {
	e := testEngine()
	el, err := e.Search("Symbol", "Xx")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if el != nil {
		t.Fatalf("not-found must return nil element, got %v", el)
	}
}

func TestSearchResolvesAndCachesGroup(t *testing.T) {
	e := testEngine()
	el, err := e.Search("Symbol", "Fe")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if el.Group() != "transition metals" {
		t.Fatalf("expected resolved group, got %q", el.Group())
	}

	// Mutate the backing table; the cached value must survive a second
	// lookup untouched.
	e.groups[0].Label = "renamed"
	el2, err := e.Search("Symbol", "Fe")
	if err != nil {
		t.Fatalf("second search: %v", err)
	}
	if el2.Group() != "transition metals" {
		t.Fatalf("expected cached group, got %q", el2.Group())
	}
}

func TestSearchUnknownGroupSentinel(t *testing.T) {
	e := testEngine()
	// Na has a blank-ish group only after we clear it; use an element whose
	// group is genuinely absent and not in any table.
	el := dataset.NewElement([]string{"Symbol", "Group"}, map[string]string{"Symbol": "Og"})
	e.elements = append(e.elements, el)
	got, err := e.Search("Symbol", "Og")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if got.Group() != dataset.UnknownGroup {
		t.Fatalf("expected %q, got %q", dataset.UnknownGroup, got.Group())
	}
}

func TestAverageMassCriterionValidation(t *testing.T) {
	e := testEngine()
	if _, err := e.AverageMass("1", "1"); !errors.Is(err, ErrCriterionConflict) {
		t.Fatalf("expected ErrCriterionConflict, got %v", err)
	}
	if _, err := e.AverageMass("", ""); !errors.Is(err, ErrCriterionMissing) {
		t.Fatalf("expected ErrCriterionMissing, got %v", err)
	}
}

func TestAverageMassEmptyFilter(t *testing.T) {
	e := testEngine()
	if _, err := e.AverageMass("99", ""); !errors.Is(err, ErrNoMatches) {
		t.Fatalf("expected ErrNoMatches, got %v", err)
	}
}

func TestAverageMassByGroup(t *testing.T) {
	e := testEngine()
	avg, err := e.AverageMass("1", "")
	if err != nil {
		t.Fatalf("average mass: %v", err)
	}
	want := (1.008 + 4.0026) / 2
	if math.Abs(avg-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, avg)
	}
	// Display rounding per the session surface.
	if rounded := math.Round(avg*100) / 100; rounded != 2.51 {
		t.Fatalf("expected display value 2.51, got %v", rounded)
	}
}

func TestAverageMassByPeriod(t *testing.T) {
	e := testEngine()
	avg, err := e.AverageMass("", "2")
	if err != nil {
		t.Fatalf("average mass: %v", err)
	}
	if avg != 15.999 {
		t.Fatalf("expected 15.999, got %v", avg)
	}
}

func TestAverageMassMalformedMassFails(t *testing.T) {
	e := testEngine()
	if _, err := e.AverageMass("badmass", ""); err == nil {
		t.Fatalf("expected parse failure for malformed atomic mass")
	}
}

func TestFilterByPreservesOrder(t *testing.T) {
	e := testEngine()
	matched := e.FilterBy(dataset.FieldGroup, "1")
	if len(matched) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matched))
	}
	if matched[0].Symbol() != "H" || matched[1].Symbol() != "He" {
		t.Fatalf("load order not preserved: %s, %s", matched[0].Symbol(), matched[1].Symbol())
	}
}
