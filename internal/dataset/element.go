// internal/dataset/element.go
//
// The element table is schemaless on disk: whatever columns the CSV carries
// become fields, and every value stays a string until something actually
// needs a number. Element keeps the column order so listings and exports
// read the same way the source file does.

package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Field names the rest of the system relies on. Any other column is carried
// through untouched.
const (
	FieldSymbol       = "Symbol"
	FieldName         = "Element"
	FieldAtomicNumber = "AtomicNumber"
	FieldAtomicMass   = "AtomicMass"
	FieldGroup        = "Group"
	FieldPeriod       = "Period"
)

// Element is one row of the element table: an ordered mapping from column
// name to raw string value. Symbol is unique across the collection. After
// load an element is read-only except for one controlled mutation: the
// query engine may fill in an absent Group once it has been resolved.
type Element struct {
	fields []string
	values map[string]string
}

// NewElement builds an element from a column list and a value per column.
// Columns missing from values are stored as empty strings.
func NewElement(fields []string, values map[string]string) *Element {
	el := &Element{
		fields: append([]string(nil), fields...),
		values: make(map[string]string, len(fields)),
	}
	for _, f := range el.fields {
		el.values[f] = values[f]
	}
	return el
}

// Fields returns the column names in source order.
func (e *Element) Fields() []string {
	return append([]string(nil), e.fields...)
}

// Get returns the raw value for a field. An unknown field reads as "".
func (e *Element) Get(field string) string {
	return e.values[field]
}

// Lookup returns the raw value and whether the field exists at all. An
// absent field is distinguishable from one holding the empty string.
func (e *Element) Lookup(field string) (string, bool) {
	value, ok := e.values[field]
	return value, ok
}

// Set stores a value, appending the field to the ordering if it is new.
// Used by the query engine to cache a resolved group label.
func (e *Element) Set(field, value string) {
	if _, ok := e.values[field]; !ok {
		e.fields = append(e.fields, field)
	}
	e.values[field] = value
}

// Symbol returns the unique identifier of the element.
func (e *Element) Symbol() string { return e.values[FieldSymbol] }

// Name returns the display name of the element.
func (e *Element) Name() string { return e.values[FieldName] }

// Group returns the raw group value, which may be empty until resolved.
func (e *Element) Group() string { return e.values[FieldGroup] }

// Period returns the raw period value.
func (e *Element) Period() string { return e.values[FieldPeriod] }

// AtomicNumber parses the AtomicNumber field on demand.
func (e *Element) AtomicNumber() (int, error) {
	raw := e.values[FieldAtomicNumber]
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("dataset: element %s: atomic number %q: %w", e.Symbol(), raw, err)
	}
	return n, nil
}

// AtomicMass parses the AtomicMass field on demand.
func (e *Element) AtomicMass() (float64, error) {
	raw := e.values[FieldAtomicMass]
	m, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("dataset: element %s: atomic mass %q: %w", e.Symbol(), raw, err)
	}
	return m, nil
}

// MarshalJSON emits the element as a JSON object with keys in column order.
// encoding/json would sort a plain map alphabetically, which scrambles the
// source layout in exports.
func (e *Element) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range e.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.values[f])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
