package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/opporank/opporank/core"
)

// ColumnConfig maps catalog source columns to posting fields. The mapping
// is explicit because source header rows have proven unreliable: when
// TrustHeader is false the header row is skipped outright and Order gives
// the positional layout instead.
type ColumnConfig struct {
	// Header names of the required columns, matched case-insensitively.
	// Used only when TrustHeader is true.
	ID       string
	Title    string
	Location string
	Skills   string

	// TrustHeader resolves column positions from the source's header row.
	TrustHeader bool

	// Order lists the logical fields ("id", "title", "location", "skills")
	// in source column order. Used only when TrustHeader is false; the
	// header row is still consumed, just ignored.
	Order []string
}

// DefaultColumnConfig trusts a conventional header row.
func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{
		ID:          "id",
		Title:       "title",
		Location:    "location",
		Skills:      "skills",
		TrustHeader: true,
	}
}

// columnIndices holds resolved source positions for each posting field.
type columnIndices struct {
	id, title, location, skills int
}

// ReadPostings parses catalog rows into validated postings, preserving
// source order. A malformed row fails the whole read with
// core.ErrInvalidCatalogRow and its row number; rows with an empty skills
// column are valid and yield an empty skill set.
func ReadPostings(r io.Reader, cfg ColumnConfig) ([]*core.Posting, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return []*core.Posting{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}

	cols, err := resolveColumns(header, cfg)
	if err != nil {
		return nil, err
	}

	var postings []*core.Posting
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", core.ErrInvalidCatalogRow, row, err)
		}

		p, err := postingFromRecord(record, cols)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", core.ErrInvalidCatalogRow, row, err)
		}
		postings = append(postings, p)
	}

	return postings, nil
}

// ReadStore is a convenience wrapper building a Store snapshot directly.
func ReadStore(r io.Reader, cfg ColumnConfig) (*Store, error) {
	postings, err := ReadPostings(r, cfg)
	if err != nil {
		return nil, err
	}
	return NewStore(postings)
}

func resolveColumns(header []string, cfg ColumnConfig) (columnIndices, error) {
	if cfg.TrustHeader {
		byName := make(map[string]int, len(header))
		for i, name := range header {
			byName[strings.ToLower(strings.TrimSpace(name))] = i
		}
		lookup := func(name string) (int, error) {
			idx, ok := byName[strings.ToLower(name)]
			if !ok {
				return 0, fmt.Errorf("%w: %q", ErrMissingColumn, name)
			}
			return idx, nil
		}

		var cols columnIndices
		var err error
		if cols.id, err = lookup(cfg.ID); err != nil {
			return cols, err
		}
		if cols.title, err = lookup(cfg.Title); err != nil {
			return cols, err
		}
		if cols.location, err = lookup(cfg.Location); err != nil {
			return cols, err
		}
		if cols.skills, err = lookup(cfg.Skills); err != nil {
			return cols, err
		}
		return cols, nil
	}

	// Positional layout; header row already consumed and ignored.
	cols := columnIndices{id: -1, title: -1, location: -1, skills: -1}
	for i, field := range cfg.Order {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "id":
			cols.id = i
		case "title":
			cols.title = i
		case "location", "locations":
			cols.location = i
		case "skills":
			cols.skills = i
		default:
			return cols, fmt.Errorf("%w: unknown field %q in column order", ErrMissingColumn, field)
		}
	}
	for name, idx := range map[string]int{
		"id": cols.id, "title": cols.title, "location": cols.location, "skills": cols.skills,
	} {
		if idx < 0 {
			return cols, fmt.Errorf("%w: %q missing from column order", ErrMissingColumn, name)
		}
	}
	return cols, nil
}

func postingFromRecord(record []string, cols columnIndices) (*core.Posting, error) {
	field := func(idx int) string {
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	p := &core.Posting{
		ID:       field(cols.id),
		Title:    field(cols.title),
		Location: field(cols.location),
		Skills:   core.ParseSkills(field(cols.skills)),
	}
	if err := core.ValidatePosting(p); err != nil {
		return nil, err
	}
	return p, nil
}
