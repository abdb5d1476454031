package importer

import (
	"context"
	"fmt"
	"regexp"

	"catalog-service/internal/models"
)

var (
	handlePattern = regexp.MustCompile(`^[a-z0-9-]+$`)
	// Recommended SKU shape: BRAND-CATEGORY-PRODUCT-VARIANT, four or more
	// upper-case alphanumeric segments
	skuPattern = regexp.MustCompile(`^[A-Z0-9]+(?:-[A-Z0-9]+){3,}$`)
)

// Batch carries the validation state shared across all rows of one file.
// Tracking seen SKUs here catches intra-file duplicates before they reach
// the store.
type Batch struct {
	seenSKUs map[string]struct{}
}

// NewBatch returns an empty batch accumulator
func NewBatch() *Batch {
	return &Batch{seenSKUs: make(map[string]struct{})}
}

func (b *Batch) seen(sku string) bool {
	_, ok := b.seenSKUs[sku]
	return ok
}

func (b *Batch) add(sku string) {
	b.seenSKUs[sku] = struct{}{}
}

// Validator checks canonical rows against structural and business rules.
// Store lookups are read-only existence checks; a failed lookup never turns
// into a finding.
type Validator struct {
	store Store
}

// NewValidator returns a validator backed by the given store
func NewValidator(store Store) *Validator {
	return &Validator{store: store}
}

// ValidateRow evaluates every rule against one row. Rules are not
// short-circuited: a row can carry several findings at once. line is the
// human-visible file line the findings point at.
func (v *Validator) ValidateRow(ctx context.Context, row models.NormalizedRow, line int, batch *Batch) []models.Finding {
	var findings []models.Finding

	blocking := func(field, message string) {
		findings = append(findings, models.Finding{Row: line, Field: field, Message: message, Severity: models.SeverityBlocking})
	}
	warning := func(field, message string) {
		findings = append(findings, models.Finding{Row: line, Field: field, Message: message, Severity: models.SeverityWarning})
	}

	if row.Handle == "" {
		blocking("handle", "Handle is required")
	} else if !handlePattern.MatchString(row.Handle) {
		blocking("handle", "Handle may only contain lowercase letters, numbers and hyphens")
	}
	if row.Title == "" {
		blocking("title", "Title is required")
	}
	if row.VariantTitle == "" {
		blocking("variant title", "Variant title is required")
	}

	if row.SKU == "" {
		blocking("variant sku", "Variant SKU is required")
	} else {
		if batch.seen(row.SKU) {
			blocking("variant sku", fmt.Sprintf("Duplicate SKU '%s' appears earlier in this file", row.SKU))
		} else {
			batch.add(row.SKU)
		}

		if !skuPattern.MatchString(row.SKU) {
			warning("variant sku", "SKU does not follow the recommended BRAND-CATEGORY-PRODUCT-VARIANT format")
		}

		if exists, err := v.store.SKUExists(ctx, row.SKU); err == nil && exists {
			warning("variant sku", fmt.Sprintf("SKU '%s' already exists and will be updated", row.SKU))
		}
	}

	if row.Price <= 0 {
		blocking("price", "Price must be greater than 0")
	}
	// Coercion maps a blank quantity cell onto 0, so presence is checked
	// separately from the value
	if !row.QuantityGiven {
		blocking("quantity", "Quantity is required")
	} else if row.Quantity < 0 {
		blocking("quantity", "Quantity cannot be negative")
	}

	if row.AllowBackorder && !row.ManageInventory {
		warning("allow backorder", "Backorder is allowed but inventory is not managed")
	}
	if row.Thumbnail == "" {
		warning("thumbnail", "Missing thumbnail image")
	}

	for _, ref := range row.Categories {
		if exists, err := v.store.CategoryExists(ctx, ref); err == nil && !exists {
			warning("categories", fmt.Sprintf("Category '%s' does not exist and will be skipped", ref))
		}
	}
	for _, ref := range row.Collections {
		if exists, err := v.store.CollectionExists(ctx, ref); err == nil && !exists {
			warning("collections", fmt.Sprintf("Collection '%s' does not exist and will be skipped", ref))
		}
	}

	return findings
}
