package render

import (
	"encoding/json"
	"fmt"

	"github.com/registrar-tools/tally/internal/report"
)

// pdfcpu create-JSON description types. Only the subset of the page
// description grammar this renderer emits is modeled.

type description struct {
	Paper  string          `json:"paper"`
	Origin string          `json:"origin"`
	Pages  map[string]page `json:"pages"`
}

type page struct {
	Content content `json:"content"`
}

type content struct {
	Text []textBox `json:"text"`
}

type textBox struct {
	Value  string  `json:"value"`
	Anchor string  `json:"anchor"`
	Dx     float64 `json:"dx"`
	Dy     float64 `json:"dy"`
	Font   font    `json:"font"`
}

type font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type line struct {
	text  string
	title bool
}

// layout flows the document's sections into per-page line lists. Section
// titles never sit alone at the bottom of a page.
func layout(doc report.Document, rowsPerPage int) [][]line {
	lines := make([]line, 0)
	for _, section := range doc.Sections {
		lines = append(lines, line{text: section.Title, title: true})
		if len(section.Rows) == 0 {
			lines = append(lines, line{text: "    (no records selected)"})
		}
		for _, row := range section.Rows {
			lines = append(lines, line{
				text: fmt.Sprintf("%4d  %-16s  %-52s  %s", row.Index, row.Code, clip(row.Summary, 52), row.Location),
			})
		}
	}

	pages := make([][]line, 0)
	current := make([]line, 0, rowsPerPage)
	for i, l := range lines {
		if len(current) >= rowsPerPage || (l.title && len(current) == rowsPerPage-1 && i < len(lines)-1) {
			pages = append(pages, current)
			current = make([]line, 0, rowsPerPage)
		}
		current = append(current, l)
	}
	if len(current) > 0 || len(pages) == 0 {
		pages = append(pages, current)
	}

	return pages
}

// describe builds the pdfcpu page description for the laid-out document.
// totalLabel fills the "of N" slot of the page header: the unresolved
// placeholder on the measuring pass, the resolved count on the final pass.
func (p *PDF) describe(doc report.Document, totalLabel string) ([]byte, error) {
	paged := layout(doc, p.cfg.RowsPerPage)

	d := description{
		Paper:  p.cfg.Paper,
		Origin: "upperLeft",
		Pages:  make(map[string]page, len(paged)),
	}

	for i, lines := range paged {
		boxes := make([]textBox, 0, len(lines)+2)

		boxes = append(boxes, textBox{
			Value:  fmt.Sprintf("%s: %s", doc.Title, doc.Collection),
			Anchor: "tl",
			Dx:     40,
			Dy:     36,
			Font:   font{Name: "Helvetica-Bold", Size: 12},
		})
		boxes = append(boxes, textBox{
			Value: fmt.Sprintf(
				"%s    Page %d of %s",
				doc.GeneratedAt.Format("2006-01-02"),
				i+1,
				totalLabel,
			),
			Anchor: "tr",
			Dx:     -40,
			Dy:     36,
			Font:   font{Name: "Helvetica", Size: 9},
		})

		y := 70.0
		for _, l := range lines {
			f := font{Name: p.cfg.FontName, Size: p.cfg.FontSize}
			if l.title {
				y += 8
				f = font{Name: "Helvetica-Bold", Size: p.cfg.FontSize + 2}
			}
			boxes = append(boxes, textBox{
				Value:  l.text,
				Anchor: "tl",
				Dx:     40,
				Dy:     y,
				Font:   f,
			})
			y += float64(p.cfg.FontSize) + 4
		}

		d.Pages[fmt.Sprintf("%d", i+1)] = page{Content: content{Text: boxes}}
	}

	return json.MarshalIndent(d, "", "  ")
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
