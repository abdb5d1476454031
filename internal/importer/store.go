package importer

import (
	"context"

	"github.com/google/uuid"

	"catalog-service/internal/models"
)

// Store is the persistence surface the import pipeline depends on. Every
// method is an independent round-trip to the backing store with its own
// failure mode. Lookup methods return (nil, nil) when no record matches.
type Store interface {
	FindProductByHandle(ctx context.Context, handle string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error

	UpsertPrimaryImage(ctx context.Context, productID uuid.UUID, url string) error

	FindVariantBySKU(ctx context.Context, sku string) (*models.ProductVariant, error)
	CreateVariant(ctx context.Context, variant *models.ProductVariant) error
	UpdateVariant(ctx context.Context, variant *models.ProductVariant) error
	UpsertInventoryLevel(ctx context.Context, level *models.InventoryLevel) error

	// Reference resolution. Categories and collections must pre-exist; tags
	// are created on first use. Attach operations treat an existing join row
	// as a no-op.
	FindCategoryByRef(ctx context.Context, ref string) (*models.Category, error)
	FindCollectionByRef(ctx context.Context, ref string) (*models.Collection, error)
	FindOrCreateTag(ctx context.Context, name string) (*models.Tag, error)
	AttachCategory(ctx context.Context, productID, categoryID uuid.UUID) error
	AttachCollection(ctx context.Context, productID, collectionID uuid.UUID) error
	AttachTag(ctx context.Context, productID, tagID uuid.UUID) error

	// Read-only existence checks used by validation
	SKUExists(ctx context.Context, sku string) (bool, error)
	CategoryExists(ctx context.Context, ref string) (bool, error)
	CollectionExists(ctx context.Context, ref string) (bool, error)
}
