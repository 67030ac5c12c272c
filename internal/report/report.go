// Package report assembles selected record details into the structured
// document description consumed by the paginated renderer.
package report

import (
	"strings"
	"time"

	"github.com/registrar-tools/tally/internal/records"
)

// Row is one rendered line of a section: a per-section running counter,
// the record's registration code, its summary, and its location.
type Row struct {
	Index    int
	Code     string
	Summary  string
	Location string
}

// Section groups the rows drawn for one category.
type Section struct {
	Title string
	Rows  []Row
}

// Document is the immutable report description. It is built once per run
// and consumed exactly twice by the renderer: once to measure the page
// total, once for the final output.
type Document struct {
	Title       string
	Collection  string
	GeneratedAt time.Time
	Sections    []Section
}

// CategoryDetails pairs a category with the details of the records it drew,
// in presentation order. Baseline marks the final general category, which
// is rendered even when empty.
type CategoryDetails struct {
	Name     string
	Baseline bool
	Details  []records.Detail
}

// Assemble builds the report document. Categories appear in input order;
// a category with no selected records produces no section, except a
// baseline category which is always rendered. A record drawn by several
// categories appears in each of their sections.
func Assemble(collection string, categories []CategoryDetails, generatedAt time.Time) Document {
	doc := Document{
		Title:       "Collection Audit Report",
		Collection:  collection,
		GeneratedAt: generatedAt,
		Sections:    make([]Section, 0, len(categories)),
	}

	for _, cat := range categories {
		if len(cat.Details) == 0 && !cat.Baseline {
			continue
		}

		section := Section{
			Title: cat.Name,
			Rows:  make([]Row, 0, len(cat.Details)),
		}

		for i, d := range cat.Details {
			section.Rows = append(section.Rows, Row{
				Index:    i + 1,
				Code:     d.DisplayCode(),
				Summary:  stripCode(d.Summary, d.DisplayCode()),
				Location: location(d),
			})
		}

		doc.Sections = append(doc.Sections, section)
	}

	return doc
}

// stripCode removes a duplicated display code from the summary so the code
// column and summary column do not repeat the same text.
func stripCode(summary, code string) string {
	if code == "" || !strings.Contains(summary, code) {
		return summary
	}
	cleaned := strings.Replace(summary, code, "", 1)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return cleaned
}

func location(d records.Detail) string {
	if strings.TrimSpace(d.Location) == "" {
		return records.LocationNotRecorded
	}
	return d.Location
}
