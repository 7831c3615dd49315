// SPDX-License-Identifier: Apache-2.0

package metadata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairscanproj/fairscan/internal/metadata"
)

func sampleTable() *metadata.Table {
	return metadata.NewTable([]metadata.Record{
		{Schema: "1.0", Element: "title", Value: "Seafloor displacement series"},
		{Schema: "1.0", Element: "format", Value: "application/json"},
		{Schema: "1.0", Element: "format", Value: "text/csv"},
		{Schema: "1.0", Element: "license", Value: "MIT"},
		{Schema: "1.0", Element: "spatial", Value: map[string]interface{}{"box": "35 -25 45 -10"}, Qualifier: "coverage"},
	})
}

func TestTableFilterAndValues(t *testing.T) {
	table := sampleTable()

	assert.Equal(t, 5, table.Len())
	assert.False(t, table.IsEmpty())

	// Duplicate element names are expected; both rows come back in order.
	formats := table.Values("format")
	assert.Equal(t, []interface{}{"application/json", "text/csv"}, formats)

	records := table.Filter("title", "license")
	assert.Len(t, records, 2)
	assert.Equal(t, "title", records[0].Element)
	assert.Equal(t, "license", records[1].Element)

	assert.Empty(t, table.Values("no-such-element"))
}

func TestTableElements(t *testing.T) {
	table := sampleTable()
	assert.Equal(t, []string{"title", "format", "license", "spatial"}, table.Elements())
}

func TestTableIsImmutable(t *testing.T) {
	records := []metadata.Record{{Schema: "1.0", Element: "title", Value: "a"}}
	table := metadata.NewTable(records)

	// Mutating the input slice after construction must not affect the table.
	records[0].Element = "mutated"
	assert.Equal(t, "title", table.Records()[0].Element)

	// Mutating a returned copy must not affect the table either.
	copied := table.Records()
	copied[0].Element = "mutated"
	assert.Equal(t, "title", table.Records()[0].Element)
}

func TestEmptyTable(t *testing.T) {
	table := metadata.NewTable(nil)
	assert.True(t, table.IsEmpty())
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Elements())
}
