package product

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Name", "Category", "Price", "Stock", "Available", "Image", "Description", "CreatedAt", "UpdatedAt",
}

// WriteXLSX writes the catalog as a single-sheet workbook.
func WriteXLSX(w io.Writer, products []Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetBool(p.IsAvailable)
		row.AddCell().SetString(p.Image)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
