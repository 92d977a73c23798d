// internal/query/engine.go
//
// Search and aggregation over the loaded dataset. Matching is exact string
// equality on raw field values ("8" never matches "08"); numbers are parsed
// only at the point of aggregation.

package query

import (
	"errors"
	"fmt"

	"github.com/kingrea/elementarium/internal/dataset"
)

var (
	// ErrNotFound signals that no element matched the search criterion.
	ErrNotFound = errors.New("query: element not found")

	// ErrCriterionConflict signals that both group and period were supplied
	// to an aggregation that accepts exactly one.
	ErrCriterionConflict = errors.New("query: group and period are mutually exclusive")

	// ErrCriterionMissing signals that neither group nor period was supplied.
	ErrCriterionMissing = errors.New("query: either group or period is required")

	// ErrNoMatches signals that the aggregation filter selected no elements.
	ErrNoMatches = errors.New("query: no elements match the criterion")
)

// Engine answers queries against an element collection and its group table.
// Both are owned by the session and loaded once; the engine never reloads.
type Engine struct {
	elements []*dataset.Element
	groups   dataset.GroupTable
}

// New builds an engine over the loaded collections.
func New(elements []*dataset.Element, groups dataset.GroupTable) *Engine {
	return &Engine{elements: elements, groups: groups}
}

// Elements returns the underlying collection in load order.
func (e *Engine) Elements() []*dataset.Element {
	return e.elements
}

// Search returns the first element whose criterion field equals value
// exactly. When the match has no Group value yet, the label is resolved
// from the group table and cached on the element, so later reads see a
// populated field without another table scan.
func (e *Engine) Search(criterion, value string) (*dataset.Element, error) {
	for _, el := range e.elements {
		stored, ok := el.Lookup(criterion)
		if !ok || stored != value {
			continue
		}
		if el.Group() == "" {
			el.Set(dataset.FieldGroup, e.groups.Resolve(el.Symbol()))
		}
		return el, nil
	}
	return nil, fmt.Errorf("%w: %s=%q", ErrNotFound, criterion, value)
}

// FilterBy returns every element whose field equals value exactly, in load
// order. Used by the group overview report, which filters before rendering.
func (e *Engine) FilterBy(field, value string) []*dataset.Element {
	var matched []*dataset.Element
	for _, el := range e.elements {
		if el.Get(field) == value {
			matched = append(matched, el)
		}
	}
	return matched
}

// AverageMass computes the arithmetic mean of AtomicMass over elements
// matching the group OR the period, exactly one of which must be non-empty.
// A malformed AtomicMass on a matching row aborts the computation.
func (e *Engine) AverageMass(group, period string) (float64, error) {
	if group != "" && period != "" {
		return 0, ErrCriterionConflict
	}
	field, value := dataset.FieldGroup, group
	if group == "" {
		if period == "" {
			return 0, ErrCriterionMissing
		}
		field, value = dataset.FieldPeriod, period
	}

	var sum float64
	var count int
	for _, el := range e.elements {
		if el.Get(field) != value {
			continue
		}
		mass, err := el.AtomicMass()
		if err != nil {
			return 0, fmt.Errorf("query: average mass: %w", err)
		}
		sum += mass
		count++
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrNoMatches, field, value)
	}
	return sum / float64(count), nil
}
