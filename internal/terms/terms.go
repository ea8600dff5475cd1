// Package terms compares terminology CSV exports the same way diagrams are
// compared: the term column is folded through the shared normalization policy
// and scored as a set, so the two comparators can never disagree on what
// counts as the same name.
package terms

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"umlcmp/internal/metric"
	"umlcmp/internal/model"
	"umlcmp/internal/normalize"
)

// List is the normalized term set of one CSV document. Originals maps each
// key back to the first original spelling so diffs stay readable.
type List struct {
	Path      string
	Keys      model.Set[string]
	Originals map[string]string
}

// ReadFile loads and normalizes the term column of a CSV file.
func ReadFile(path string, norm normalize.Func) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read terms %s: %w", path, err)
	}
	defer f.Close()

	list, err := Read(f, norm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	list.Path = path
	return list, nil
}

// Read parses CSV content. The term column is located case-insensitively;
// every other column is free-form metadata and ignored. Rows of the wrong
// width are tolerated, a missing term column is not.
func Read(r io.Reader, norm normalize.Func) (*List, error) {
	if norm == nil {
		norm = normalize.Key
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV document")
	}
	if err != nil {
		return nil, fmt.Errorf("parse CSV header: %w", err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), "term") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("no %q column in CSV header %v", "term", header)
	}

	list := &List{
		Keys:      make(model.Set[string]),
		Originals: make(map[string]string),
	}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse CSV row: %w", err)
		}
		if col >= len(row) {
			continue
		}
		term := strings.TrimSpace(row[col])
		if term == "" {
			continue
		}
		key := norm(term)
		if key == "" {
			continue
		}
		if !list.Keys.Has(key) {
			list.Originals[key] = term
		}
		list.Keys.Add(key)
	}
	return list, nil
}

// Diff lists the mismatched terms in their original spellings, sorted.
type Diff struct {
	Missing []string `json:"missing_terms"`
	Extra   []string `json:"extra_terms"`
}

// Compare scores a candidate term list against the reference.
func Compare(candidate, reference *List) (metric.Result, Diff) {
	result := metric.Score(candidate.Keys, reference.Keys)

	var d Diff
	for k := range reference.Keys {
		if !candidate.Keys.Has(k) {
			d.Missing = append(d.Missing, reference.Originals[k])
		}
	}
	for k := range candidate.Keys {
		if !reference.Keys.Has(k) {
			d.Extra = append(d.Extra, candidate.Originals[k])
		}
	}
	sort.Strings(d.Missing)
	sort.Strings(d.Extra)
	return result, d
}
