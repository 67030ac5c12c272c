package report_test

import (
	"testing"
	"time"

	"github.com/registrar-tools/tally/internal/records"
	"github.com/registrar-tools/tally/internal/report"
)

func detail(id int64, prefix string, number int, summary, location string) records.Detail {
	return records.Detail{
		ID:         id,
		CodePrefix: prefix,
		CodeNumber: number,
		Summary:    summary,
		Location:   location,
	}
}

func TestAssembleOmitsEmptyCategories(t *testing.T) {
	doc := report.Assemble("maps", []report.CategoryDetails{
		{Name: "Rare", Details: nil},
		{Name: "High Value", Details: []records.Detail{detail(1, "HV", 10, "Atlas", "Vault 3")}},
		{Name: "General", Baseline: true, Details: nil},
	}, time.Now())

	if len(doc.Sections) != 2 {
		t.Fatalf("len(Sections) = %d, want 2", len(doc.Sections))
	}
	if doc.Sections[0].Title != "High Value" {
		t.Errorf("Sections[0].Title = %q, want %q", doc.Sections[0].Title, "High Value")
	}
	if doc.Sections[1].Title != "General" {
		t.Errorf("baseline section missing; Sections[1].Title = %q", doc.Sections[1].Title)
	}
	if len(doc.Sections[1].Rows) != 0 {
		t.Errorf("empty baseline section has %d rows, want 0", len(doc.Sections[1].Rows))
	}
}

func TestAssembleRowCountersResetPerSection(t *testing.T) {
	doc := report.Assemble("maps", []report.CategoryDetails{
		{Name: "A", Details: []records.Detail{
			detail(1, "A", 1, "one", "L1"),
			detail(2, "A", 2, "two", "L2"),
		}},
		{Name: "B", Baseline: true, Details: []records.Detail{
			detail(3, "B", 1, "three", "L3"),
		}},
	}, time.Now())

	for _, section := range doc.Sections {
		for i, row := range section.Rows {
			if row.Index != i+1 {
				t.Errorf("section %q row %d has Index %d", section.Title, i, row.Index)
			}
		}
	}
}

func TestAssembleStripsDuplicatedCode(t *testing.T) {
	d := detail(1, "QH", 371, "QH371 Field guide to mosses", "Stack 9")
	doc := report.Assemble("maps", []report.CategoryDetails{
		{Name: "A", Baseline: true, Details: []records.Detail{d}},
	}, time.Now())

	row := doc.Sections[0].Rows[0]
	if row.Code != "QH371" {
		t.Errorf("Code = %q, want %q", row.Code, "QH371")
	}
	if row.Summary != "Field guide to mosses" {
		t.Errorf("Summary = %q, want code stripped", row.Summary)
	}
}

func TestAssembleKeepsSummaryWithoutCode(t *testing.T) {
	d := detail(1, "QH", 371, "Field guide to mosses", "Stack 9")
	doc := report.Assemble("maps", []report.CategoryDetails{
		{Name: "A", Baseline: true, Details: []records.Detail{d}},
	}, time.Now())

	if got := doc.Sections[0].Rows[0].Summary; got != "Field guide to mosses" {
		t.Errorf("Summary = %q, want unchanged", got)
	}
}

func TestAssembleLocationNeverBlank(t *testing.T) {
	doc := report.Assemble("maps", []report.CategoryDetails{
		{Name: "A", Baseline: true, Details: []records.Detail{
			detail(1, "A", 1, "one", records.LocationNotRecorded),
			detail(2, "A", 2, "two", "   "),
			detail(3, "A", 3, "three", ""),
		}},
	}, time.Now())

	for _, row := range doc.Sections[0].Rows {
		if row.Location == "" {
			t.Errorf("row %d has blank location", row.Index)
		}
	}
	if got := doc.Sections[0].Rows[1].Location; got != records.LocationNotRecorded {
		t.Errorf("blank location = %q, want sentinel", got)
	}
}

func TestAssembleSharedRecordAppearsInEverySection(t *testing.T) {
	shared := detail(77, "SH", 77, "shared", "L")
	doc := report.Assemble("maps", []report.CategoryDetails{
		{Name: "A", Details: []records.Detail{shared}},
		{Name: "B", Baseline: true, Details: []records.Detail{shared}},
	}, time.Now())

	for _, section := range doc.Sections {
		if len(section.Rows) != 1 || section.Rows[0].Code != "SH77" {
			t.Errorf("section %q missing shared record row", section.Title)
		}
	}
}
