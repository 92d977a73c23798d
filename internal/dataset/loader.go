package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// ErrMissingSource marks a dataset file that does not exist. Callers treat
// it as recoverable: report a diagnostic, continue with an empty collection.
var ErrMissingSource = errors.New("dataset: source file not found")

// LoadElements parses a header-bearing CSV file into elements, preserving
// row order and the full column set. A missing file returns
// ErrMissingSource with an empty slice; any other parse failure is fatal.
func LoadElements(path string) ([]*Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
		}
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: read header of %s: %w", path, err)
	}
	fields := make([]string, len(header))
	for i, h := range header {
		fields[i] = strings.TrimSpace(h)
	}

	var elements []*Element
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read row of %s: %w", path, err)
		}
		values := make(map[string]string, len(fields))
		for i, val := range row {
			if i >= len(fields) {
				break
			}
			values[fields[i]] = val
		}
		elements = append(elements, NewElement(fields, values))
	}
	return elements, nil
}

// LoadGroups decodes the group source, a JSON array of group records. A
// missing file returns ErrMissingSource with an empty table. There is no
// schema validation beyond what decoding into the sequence requires.
func LoadGroups(path string) (GroupTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
		}
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	var table GroupTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	return table, nil
}
