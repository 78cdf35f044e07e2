package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scraper-go/selector"
)

func TestTableWithHeaderRow(t *testing.T) {
	markup := `
	<table id="people">
	  <tr><th>Name</th><th>Age</th></tr>
	  <tr><td>John</td><td>25</td></tr>
	  <tr><td>Jane</td><td>30</td></tr>
	</table>`

	records, err := ExtractTableData(markup, "#people")
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NotNil(t, records[0]["Name"])
	assert.Equal(t, "John", *records[0]["Name"])
	require.NotNil(t, records[0]["Age"])
	assert.Equal(t, "25", *records[0]["Age"])
	assert.Equal(t, "Jane", *records[1]["Name"])
	assert.Equal(t, "30", *records[1]["Age"])
}

func TestTableWithoutHeaderUsesPositionalNames(t *testing.T) {
	markup := `
	<table>
	  <tr><td>a</td><td>b</td></tr>
	  <tr><td>c</td><td>d</td></tr>
	</table>`

	records, err := ExtractTableData(markup, "table")
	require.NoError(t, err)
	require.Len(t, records, 2)

	require.NotNil(t, records[0]["0"])
	assert.Equal(t, "a", *records[0]["0"])
	assert.Equal(t, "b", *records[0]["1"])
	assert.Equal(t, "c", *records[1]["0"])
	assert.Equal(t, "d", *records[1]["1"])
}

func TestTableMixedFirstRowIsNotHeader(t *testing.T) {
	// a row with any td is data, not header
	markup := `
	<table>
	  <tr><th>Name</th><td>John</td></tr>
	</table>`

	records, err := ExtractTableData(markup, "table")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Name", *records[0]["0"])
	assert.Equal(t, "John", *records[0]["1"])
}

func TestTableShortRowPaddedWithAbsence(t *testing.T) {
	markup := `
	<table>
	  <tr><th>Name</th><th>Age</th><th>City</th></tr>
	  <tr><td>John</td></tr>
	</table>`

	records, err := ExtractTableData(markup, "table")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "John", *records[0]["Name"])
	age, present := records[0]["Age"]
	require.True(t, present, "padded column key must exist")
	assert.Nil(t, age)
	city, present := records[0]["City"]
	require.True(t, present)
	assert.Nil(t, city)
}

func TestTableLongRowGetsPositionalExtras(t *testing.T) {
	markup := `
	<table>
	  <tr><th>Name</th><th>Age</th></tr>
	  <tr><td>John</td><td>25</td><td>extra</td></tr>
	</table>`

	records, err := ExtractTableData(markup, "table")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "John", *records[0]["Name"])
	assert.Equal(t, "25", *records[0]["Age"])
	require.NotNil(t, records[0]["2"])
	assert.Equal(t, "extra", *records[0]["2"])
}

func TestTableFirstMatchOnly(t *testing.T) {
	markup := `
	<table class="t"><tr><td>first table</td></tr></table>
	<table class="t"><tr><td>second table</td></tr></table>`

	records, err := ExtractTableData(markup, "table.t")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "first table", *records[0]["0"])
}

func TestTableEmptyRowsSkipped(t *testing.T) {
	markup := `
	<table>
	  <tr></tr>
	  <tr><td>only</td></tr>
	</table>`

	records, err := ExtractTableData(markup, "table")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "only", *records[0]["0"])
}

func TestTableNoMatchYieldsEmpty(t *testing.T) {
	records, err := ExtractTableData(`<p>no tables</p>`, "table")
	require.NoError(t, err)
	require.NotNil(t, records)
	assert.Empty(t, records)
}

func TestTableInvalidSelector(t *testing.T) {
	_, err := ExtractTableData(`<table></table>`, "table:nth-of-type(1)")
	require.Error(t, err)

	var syn *selector.SyntaxError
	assert.ErrorAs(t, err, &syn)
}

func TestTableHeaderOnlyYieldsNoRecords(t *testing.T) {
	markup := `<table><tr><th>Name</th></tr></table>`
	records, err := ExtractTableData(markup, "table")
	require.NoError(t, err)
	assert.Empty(t, records)
}
