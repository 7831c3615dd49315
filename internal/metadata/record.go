// SPDX-License-Identifier: Apache-2.0

package metadata

import "context"

// Record is one normalized row of the subject's metadata: a top-level
// element of the source document together with the schema version that
// produced it. List-valued elements expand to one Record per item.
type Record struct {
	Schema    string
	Element   string
	Value     interface{}
	Qualifier string
}

// Table is the ordered collection of Records for one evaluation subject.
// Insertion order is preserved but carries no meaning; duplicate element
// names are expected (e.g. repeated format entries). A Table is built once
// per evaluation and never mutated afterwards.
type Table struct {
	records []Record
}

// NewTable builds a Table from the given records.
func NewTable(records []Record) *Table {
	copied := make([]Record, len(records))
	copy(copied, records)
	return &Table{records: copied}
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// IsEmpty reports whether the table holds no records.
func (t *Table) IsEmpty() bool {
	return len(t.records) == 0
}

// Records returns a copy of all records in insertion order.
func (t *Table) Records() []Record {
	copied := make([]Record, len(t.records))
	copy(copied, t.records)
	return copied
}

// Filter returns the records whose element name matches any of the given
// names, in insertion order.
func (t *Table) Filter(elements ...string) []Record {
	wanted := make(map[string]bool, len(elements))
	for _, e := range elements {
		wanted[e] = true
	}
	var out []Record
	for _, r := range t.records {
		if wanted[r.Element] {
			out = append(out, r)
		}
	}
	return out
}

// Values returns the raw values of the records matching the given element
// names, in insertion order.
func (t *Table) Values(elements ...string) []interface{} {
	records := t.Filter(elements...)
	values := make([]interface{}, 0, len(records))
	for _, r := range records {
		values = append(values, r.Value)
	}
	return values
}

// Elements returns the distinct element names present in the table, in
// first-appearance order.
func (t *Table) Elements() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.records {
		if !seen[r.Element] {
			seen[r.Element] = true
			out = append(out, r.Element)
		}
	}
	return out
}

// Source describes a raw metadata document before decoding.
type Source struct {
	// Content is the raw document content.
	Content []byte
	Format  string
	ID      string
}

// Decoder turns a raw metadata document into Records.
type Decoder interface {
	CanHandle(source Source) bool
	Decode(ctx context.Context, source Source) ([]Record, error)
	Name() string
}
