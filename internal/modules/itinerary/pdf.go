// README: PDF export of the current itinerary (local download; email PDFs are built backend-side).
package itinerary

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

// WritePDF renders the itinerary as a simple A4 document. Empty blocks are
// suppressed the same way the on-screen renderer suppresses them.
func WritePDF(w io.Writer, it *Itinerary, title string) error {
	if err := it.Validate(); err != nil {
		return err
	}
	if title == "" {
		title = "Your Travel Itinerary"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, Summary(it), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, day := range it.Days {
		pdf.SetFont("Helvetica", "B", 14)
		heading := fmt.Sprintf("Day %d", day.Day)
		if day.Date != "" {
			heading += " - " + day.Date
		}
		pdf.CellFormat(0, 10, heading, "B", 1, "L", false, 0, "")

		for _, block := range day.Blocks {
			if len(block.POIs) == 0 {
				continue
			}
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, BlockLabel(block), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			for _, poi := range block.POIs {
				line := "- " + poi.Name
				if poi.Duration > 0 {
					line += fmt.Sprintf(" (%d min)", poi.Duration)
				}
				pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
			}
			if block.TravelTime > 0 {
				pdf.SetFont("Helvetica", "I", 10)
				pdf.CellFormat(0, 6, fmt.Sprintf("Travel time: %d min", block.TravelTime), "", 1, "L", false, 0, "")
			}
		}

		if day.TotalTravelTime > 0 {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.CellFormat(0, 7, fmt.Sprintf("Total travel time: %d minutes", day.TotalTravelTime), "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	return pdf.Output(w)
}
