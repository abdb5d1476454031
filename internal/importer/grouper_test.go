package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-service/internal/models"
)

func TestGroup_RowsSharingAHandleBecomeOneProduct(t *testing.T) {
	records := []RowRecord{
		{Line: 2, Row: models.NormalizedRow{
			Handle: "oxford-shirt", Title: "Oxford Shirt", Status: models.ProductStatusPublished,
			Thumbnail: "https://cdn.example.com/oxford-shirt.jpg", Tags: []string{"cotton"},
			VariantTitle: "Black / M", SKU: "DUDE-SHT-OXFRD-BLK-M", Price: 19.99, Quantity: 100,
		}},
		{Line: 3, Row: models.NormalizedRow{
			Handle:       "oxford-shirt",
			VariantTitle: "Black / L", SKU: "DUDE-SHT-OXFRD-BLK-L", Price: 19.99, Quantity: 100,
		}},
	}

	groups := Group(records, nil)

	assert.Len(t, groups, 1)
	group := groups[0]
	assert.Equal(t, "oxford-shirt", group.Handle)
	assert.Equal(t, "Oxford Shirt", group.Title)
	assert.Equal(t, models.ProductStatusPublished, group.Status)
	assert.Equal(t, []string{"cotton"}, group.Tags)
	assert.Len(t, group.Variants, 2)
	assert.Equal(t, "DUDE-SHT-OXFRD-BLK-M", group.Variants[0].SKU)
	assert.Equal(t, "DUDE-SHT-OXFRD-BLK-L", group.Variants[1].SKU)
}

func TestGroup_FirstRowSeedsProductFields(t *testing.T) {
	records := []RowRecord{
		{Line: 2, Row: models.NormalizedRow{Handle: "tee", Title: "Basic Tee", Description: "Soft.", VariantTitle: "S", SKU: "ACME-APP-TEE-S"}},
		{Line: 3, Row: models.NormalizedRow{Handle: "tee", Title: "Different Title", Description: "Ignored.", VariantTitle: "M", SKU: "ACME-APP-TEE-M"}},
	}

	groups := Group(records, nil)

	assert.Len(t, groups, 1)
	assert.Equal(t, "Basic Tee", groups[0].Title)
	assert.Equal(t, "Soft.", groups[0].Description)
}

func TestGroup_PreservesFileOrder(t *testing.T) {
	records := []RowRecord{
		{Line: 2, Row: models.NormalizedRow{Handle: "zebra", VariantTitle: "Default", SKU: "ACME-TOY-ZBR-STD"}},
		{Line: 3, Row: models.NormalizedRow{Handle: "apple", VariantTitle: "Default", SKU: "ACME-TOY-APL-STD"}},
		{Line: 4, Row: models.NormalizedRow{Handle: "zebra", VariantTitle: "Large", SKU: "ACME-TOY-ZBR-LRG"}},
	}

	groups := Group(records, nil)

	assert.Len(t, groups, 2)
	assert.Equal(t, "zebra", groups[0].Handle)
	assert.Equal(t, "apple", groups[1].Handle)
	assert.Len(t, groups[0].Variants, 2)
}

func TestGroup_PartitionsFindingsIntoOwningGroup(t *testing.T) {
	records := []RowRecord{
		{Line: 2, Row: models.NormalizedRow{Handle: "mug", VariantTitle: "Default", SKU: "ACME-KIT-MUG-STD"}},
		{Line: 3, Row: models.NormalizedRow{Handle: "tee", VariantTitle: "Default", SKU: "ACME-APP-TEE-STD"}},
	}
	findings := []models.Finding{
		{Row: 2, Field: "price", Message: "Price must be greater than 0", Severity: models.SeverityBlocking},
		{Row: 3, Field: "thumbnail", Message: "Missing thumbnail image", Severity: models.SeverityWarning},
	}

	groups := Group(records, findings)

	assert.Len(t, groups[0].Blocking, 1)
	assert.Empty(t, groups[0].Warnings)
	assert.False(t, groups[0].Importable())

	assert.Empty(t, groups[1].Blocking)
	assert.Len(t, groups[1].Warnings, 1)
	assert.True(t, groups[1].Importable())
}
