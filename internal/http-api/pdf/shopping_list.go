package pdf

import (
	"bytes"
	"fmt"

	"foodgram/internal/http-api/repository"

	"github.com/go-pdf/fpdf"
)

// ShoppingList renders the aggregated cart as a one-page-per-overflow PDF:
// a title line, then one numbered line per (ingredient, unit) group.
func ShoppingList(items []repository.ShoppingListItem) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 10, "Your shopping list:", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetFont("Helvetica", "", 12)
	for i, item := range items {
		line := fmt.Sprintf("%d) %s - %d %s", i+1, item.Name, item.Total, item.MeasurementUnit)
		doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render shopping list: %w", err)
	}
	return buf.Bytes(), nil
}
