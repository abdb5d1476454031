package importer

import (
	"strconv"
	"strings"

	"catalog-service/internal/models"
)

// Column aliases, current template name first. Several generations of export
// tooling produced these headers; the first non-empty match wins.
var (
	handleColumns      = []string{"handle", "product handle", "url handle"}
	titleColumns       = []string{"title", "product title", "product name", "name"}
	subtitleColumns    = []string{"subtitle", "product subtitle"}
	descriptionColumns = []string{"description", "product description", "body html"}
	statusColumns      = []string{"status", "product status"}
	thumbnailColumns   = []string{"thumbnail", "thumbnail url", "image src"}
	variantTitleCols   = []string{"variant title", "option title"}
	skuColumns         = []string{"variant sku", "sku"}
	priceColumns       = []string{"price", "variant price", "unit price"}
	quantityColumns    = []string{"quantity", "variant quantity", "inventory quantity", "stock"}
	discountableCols   = []string{"discountable", "is discountable"}
	manageInvColumns   = []string{"manage inventory", "track inventory"}
	backorderColumns   = []string{"allow backorder", "backorder"}
	collectionsColumns = []string{"collections", "collection handles", "collection"}
	categoriesColumns  = []string{"categories", "category handles", "category"}
)

// Normalize maps a raw row onto the canonical row shape. It is total: absent
// or garbled values degrade to empty/zero/false instead of erroring.
func Normalize(row RawRow) models.NormalizedRow {
	rawQuantity := firstNonEmpty(row, quantityColumns)

	n := models.NormalizedRow{
		Handle:          firstNonEmpty(row, handleColumns),
		Title:           firstNonEmpty(row, titleColumns),
		Subtitle:        firstNonEmpty(row, subtitleColumns),
		Description:     firstNonEmpty(row, descriptionColumns),
		Status:          parseStatus(firstNonEmpty(row, statusColumns)),
		Thumbnail:       firstNonEmpty(row, thumbnailColumns),
		VariantTitle:    firstNonEmpty(row, variantTitleCols),
		SKU:             firstNonEmpty(row, skuColumns),
		Price:           parseNumber(firstNonEmpty(row, priceColumns)),
		Quantity:        int(parseNumber(rawQuantity)),
		QuantityGiven:   rawQuantity != "",
		Discountable:    parseBool(firstNonEmpty(row, discountableCols)),
		ManageInventory: parseBool(firstNonEmpty(row, manageInvColumns)),
		AllowBackorder:  parseBool(firstNonEmpty(row, backorderColumns)),
		Collections:     parseList(firstNonEmpty(row, collectionsColumns)),
		Categories:      parseList(firstNonEmpty(row, categoriesColumns)),
	}

	// Image URLs: comma list plus two legacy single-URL columns
	n.Images = parseList(row.Get("variant images"))
	for _, col := range []string{"variant image 1", "variant image 2"} {
		if v := row.Get(col); v != "" {
			n.Images = append(n.Images, v)
		}
	}

	// Tags: comma list plus two legacy single-tag columns
	n.Tags = parseList(row.Get("tags"))
	for _, col := range []string{"tag 1", "tag 2"} {
		if v := row.Get(col); v != "" {
			n.Tags = append(n.Tags, v)
		}
	}

	// Highlight and option slots only count when both halves are present,
	// slot 1 before slot 2
	for _, slot := range []string{"1", "2"} {
		label := firstNonEmpty(row, []string{"highlight " + slot + " label", "feature " + slot + " name"})
		value := firstNonEmpty(row, []string{"highlight " + slot + " value", "feature " + slot + " value"})
		if label != "" && value != "" {
			n.Highlights = append(n.Highlights, models.HighlightPair{Label: label, Value: value})
		}

		name := firstNonEmpty(row, []string{"option " + slot + " name", "attribute " + slot + " name"})
		val := firstNonEmpty(row, []string{"option " + slot + " value", "attribute " + slot + " value"})
		if name != "" && val != "" {
			n.Options = append(n.Options, models.OptionPair{Name: name, Value: val})
		}
	}

	return n
}

func firstNonEmpty(row RawRow, columns []string) string {
	for _, col := range columns {
		if v := row.Get(col); v != "" {
			return v
		}
	}
	return ""
}

// parseBool accepts true/1/yes (case-insensitive); everything else is false
func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// parseNumber strips currency symbols and grouping characters before parsing;
// unparsable values degrade to 0
func parseNumber(value string) float64 {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	num, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return num
}

// parseList splits on comma, trims each element and drops empties
func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// parseStatus maps published/active onto published; anything else is draft
func parseStatus(value string) models.ProductStatus {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "published", "active":
		return models.ProductStatusPublished
	}
	return models.ProductStatusDraft
}
