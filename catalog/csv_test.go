package catalog

import (
	"strings"
	"testing"

	"github.com/opporank/opporank/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPostings_TrustedHeader(t *testing.T) {
	src := strings.NewReader(
		"id,title,location,skills\n" +
			"101,Data Analyst,Remote,\"Python, SQL\"\n" +
			"102,Sales Intern,Mumbai,\n")

	postings, err := ReadPostings(src, DefaultColumnConfig())
	require.NoError(t, err)
	require.Len(t, postings, 2)

	assert.Equal(t, "101", postings[0].ID)
	assert.Equal(t, "Data Analyst", postings[0].Title)
	assert.Equal(t, "Remote", postings[0].Location)
	assert.ElementsMatch(t, []string{"python", "sql"}, postings[0].Skills.Tokens())

	// Empty skills column is valid and yields the empty set.
	assert.Equal(t, 0, postings[1].Skills.Len())
}

func TestReadPostings_HeaderColumnOrderIrrelevant(t *testing.T) {
	src := strings.NewReader(
		"Skills,ID,Location,Title\n" +
			"python,7,Remote,Analyst\n")

	postings, err := ReadPostings(src, DefaultColumnConfig())
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "7", postings[0].ID)
	assert.Equal(t, "Analyst", postings[0].Title)
}

func TestReadPostings_CustomColumnNames(t *testing.T) {
	src := strings.NewReader(
		"posting_id,role,city,requirements\n" +
			"1,Engineer,Pune,\"go, sql\"\n")

	cfg := ColumnConfig{
		ID:          "posting_id",
		Title:       "role",
		Location:    "city",
		Skills:      "requirements",
		TrustHeader: true,
	}
	postings, err := ReadPostings(src, cfg)
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "Engineer", postings[0].Title)
	assert.Equal(t, "Pune", postings[0].Location)
}

func TestReadPostings_UnreliableHeader(t *testing.T) {
	// The source header row is garbage; the configured positional order
	// takes over and the header row is skipped.
	src := strings.NewReader(
		"col_a,col_b,col_c,col_d\n" +
			"1,Data Analyst,Remote,\"python, sql\"\n" +
			"2,Designer,Mumbai,figma\n")

	cfg := ColumnConfig{
		TrustHeader: false,
		Order:       []string{"id", "title", "locations", "skills"},
	}
	postings, err := ReadPostings(src, cfg)
	require.NoError(t, err)
	require.Len(t, postings, 2)
	assert.Equal(t, "Data Analyst", postings[0].Title)
	assert.Equal(t, "Mumbai", postings[1].Location)
}

func TestReadPostings_MissingConfiguredColumn(t *testing.T) {
	src := strings.NewReader("id,title,location\n1,Analyst,Remote\n")

	_, err := ReadPostings(src, DefaultColumnConfig())
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadPostings_UnknownPositionalField(t *testing.T) {
	src := strings.NewReader("h\n")
	_, err := ReadPostings(src, ColumnConfig{Order: []string{"id", "title", "location", "bogus"}})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadPostings_IncompletePositionalOrder(t *testing.T) {
	src := strings.NewReader("h\n")
	_, err := ReadPostings(src, ColumnConfig{Order: []string{"id", "title"}})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadPostings_InvalidRowFailsLoudly(t *testing.T) {
	src := strings.NewReader(
		"id,title,location,skills\n" +
			"1,,Remote,python\n")

	_, err := ReadPostings(src, DefaultColumnConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidCatalogRow)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadPostings_EmptySource(t *testing.T) {
	postings, err := ReadPostings(strings.NewReader(""), DefaultColumnConfig())
	require.NoError(t, err)
	assert.Empty(t, postings)
}

func TestReadStore(t *testing.T) {
	src := strings.NewReader(
		"id,title,location,skills\n" +
			"1,Analyst,Remote,python\n" +
			"2,Engineer,Pune,go\n")

	store, err := ReadStore(src, DefaultColumnConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, "1", store.At(0).ID)
}
