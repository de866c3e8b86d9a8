// Package report renders a search outcome to a PDF file.
package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/gojobsearch/internal/app"
)

// WritePDF renders the outcome as a simple A4 document: query, resolved
// filters, the search URL, and one block per posting with a clickable title.
func WritePDF(out app.Outcome, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Job search results", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5, fmt.Sprintf("Query: %s", out.Query), "", "L", false)
	pdf.Ln(2)

	if pairs := out.Filters.Pairs(); len(pairs) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, "Filters", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, p := range pairs {
			pdf.MultiCell(0, 5, fmt.Sprintf("%s: %s", p.Key, p.Value), "", "L", false)
		}
		pdf.Ln(2)
	}

	pdf.Write(5, "Search URL: ")
	pdf.WriteLinkString(5, out.URL, out.URL)
	pdf.Ln(8)

	for _, w := range out.Warnings {
		pdf.SetTextColor(160, 100, 0)
		pdf.MultiCell(0, 5, "Warning: "+w, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	if len(out.Warnings) > 0 {
		pdf.Ln(2)
	}

	if len(out.Results) == 0 {
		pdf.MultiCell(0, 5, "No results found.", "", "L", false)
		return pdf.OutputFileAndClose(outPath)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("%d result(s)", len(out.Results)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, e := range out.Results {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.WriteLinkString(5, e.Title, e.Link)
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 11)
		if e.Location != "" {
			pdf.MultiCell(0, 5, "Location: "+e.Location, "", "L", false)
		}
		if e.Snippet != "" {
			pdf.MultiCell(0, 5, e.Snippet, "", "L", false)
		}
		pdf.MultiCell(0, 5, e.Link, "", "L", false)
		pdf.Ln(3)
	}

	return pdf.OutputFileAndClose(outPath)
}
