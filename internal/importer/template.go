package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"catalog-service/internal/models"
)

const templateSheetName = "Catalog"

// WriteCSVTemplate writes the catalog import template as CSV: one header row
// followed by the sample rows.
func WriteCSVTemplate(w io.Writer) error {
	template := models.CatalogImportTemplate()

	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := make([]string, len(template.Columns))
	for i, col := range template.Columns {
		headers[i] = col.Name
	}
	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, row := range template.SampleData {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteXLSXTemplate writes the catalog import template as a styled Excel
// workbook with sample rows and an Instructions sheet.
func WriteXLSXTemplate(w io.Writer) error {
	template := models.CatalogImportTemplate()

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", templateSheetName)

	// Style for header row
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	// Style for required columns
	requiredStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C65911"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, col := range template.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		headerText := col.Name
		if col.Required {
			headerText = col.Name + " *"
		}
		f.SetCellValue(templateSheetName, cell, headerText)

		if col.Required {
			f.SetCellStyle(templateSheetName, cell, cell, requiredStyle)
		} else {
			f.SetCellStyle(templateSheetName, cell, cell, headerStyle)
		}

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(templateSheetName, colName, colName, 20)
	}

	// Sample rows so the multi-row-per-product convention is visible
	for r, row := range template.SampleData {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(templateSheetName, cell, value)
		}
	}

	// Add Instructions sheet
	f.NewSheet("Instructions")
	f.SetCellValue("Instructions", "A1", "Catalog Import Instructions")

	f.SetCellValue("Instructions", "A3", "GROUPING:")
	f.SetCellValue("Instructions", "A4", "Rows sharing the same Handle become variants of one product.")
	f.SetCellValue("Instructions", "A5", "- Product-level fields (Title, Description, Status, ...) are taken from the first row of each handle.")
	f.SetCellValue("Instructions", "A6", "- Later rows for the same handle only need Handle, Title, Variant Title, Variant SKU, Price and Quantity.")

	f.SetCellValue("Instructions", "A8", "REFERENCES:")
	f.SetCellValue("Instructions", "A9", "1. Collections and Categories must exist before the import; unknown slugs are skipped with a warning.")
	f.SetCellValue("Instructions", "A10", "2. Tags are created automatically if missing.")

	f.SetCellValue("Instructions", "A12", "Column Definitions:")
	f.SetCellValue("Instructions", "A13", "Column")
	f.SetCellValue("Instructions", "B13", "Description")
	f.SetCellValue("Instructions", "C13", "Required")
	f.SetCellValue("Instructions", "D13", "Type")
	f.SetCellValue("Instructions", "E13", "Example")

	for i, col := range template.Columns {
		row := i + 14
		f.SetCellValue("Instructions", fmt.Sprintf("A%d", row), col.Name)
		f.SetCellValue("Instructions", fmt.Sprintf("B%d", row), col.Description)
		required := "Optional"
		if col.Required {
			required = "Required"
		}
		f.SetCellValue("Instructions", fmt.Sprintf("C%d", row), required)
		f.SetCellValue("Instructions", fmt.Sprintf("D%d", row), col.Type)
		f.SetCellValue("Instructions", fmt.Sprintf("E%d", row), col.Example)
	}

	f.SetColWidth("Instructions", "A", "A", 25)
	f.SetColWidth("Instructions", "B", "B", 60)
	f.SetColWidth("Instructions", "C", "C", 15)
	f.SetColWidth("Instructions", "D", "D", 15)
	f.SetColWidth("Instructions", "E", "E", 40)

	sheetIdx, _ := f.GetSheetIndex(templateSheetName)
	f.SetActiveSheet(sheetIdx)

	return f.Write(w)
}
