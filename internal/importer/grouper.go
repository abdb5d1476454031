package importer

import (
	"catalog-service/internal/models"
)

// RowRecord pairs a normalized row with the file line it came from
type RowRecord struct {
	Line int
	Row  models.NormalizedRow
}

// Group folds rows into one entry per product handle, in order of first
// appearance. The first row seen for a handle seeds the product-level fields;
// every row contributes one variant. Findings are partitioned into the group
// owning their row.
func Group(records []RowRecord, findings []models.Finding) []models.ProductGroup {
	groups := make([]models.ProductGroup, 0)
	index := make(map[string]int)
	lineToHandle := make(map[int]string)

	for _, rec := range records {
		row := rec.Row
		lineToHandle[rec.Line] = row.Handle

		i, ok := index[row.Handle]
		if !ok {
			groups = append(groups, models.ProductGroup{
				Handle:       row.Handle,
				Title:        row.Title,
				Subtitle:     row.Subtitle,
				Description:  row.Description,
				Status:       row.Status,
				Thumbnail:    row.Thumbnail,
				Highlights:   row.Highlights,
				Discountable: row.Discountable,
				Collections:  row.Collections,
				Categories:   row.Categories,
				Tags:         row.Tags,
			})
			i = len(groups) - 1
			index[row.Handle] = i
		}

		groups[i].Variants = append(groups[i].Variants, models.VariantSpec{
			Title:           row.VariantTitle,
			SKU:             row.SKU,
			Price:           row.Price,
			Quantity:        row.Quantity,
			ManageInventory: row.ManageInventory,
			AllowBackorder:  row.AllowBackorder,
			Images:          row.Images,
			Options:         row.Options,
		})
	}

	for _, f := range findings {
		handle, ok := lineToHandle[f.Row]
		if !ok {
			continue
		}
		i, ok := index[handle]
		if !ok {
			continue
		}
		if f.Severity == models.SeverityBlocking {
			groups[i].Blocking = append(groups[i].Blocking, f)
		} else {
			groups[i].Warnings = append(groups[i].Warnings, f)
		}
	}

	return groups
}
