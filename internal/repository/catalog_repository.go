package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"catalog-service/internal/models"
)

// Cache TTL constants
const (
	RefCacheTTL = 30 * time.Minute // Categories and collections rarely change mid-import
)

// CatalogRepository persists products, variants, inventory and reference
// associations. Category and collection lookups are cached in Redis because
// an import file repeats the same handful of slugs across hundreds of rows.
type CatalogRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewCatalogRepository(db *gorm.DB, redis *redis.Client) *CatalogRepository {
	return &CatalogRepository{
		db:    db,
		redis: redis,
	}
}

// Product Operations

// FindProductByHandle retrieves a product by its handle. Returns (nil, nil)
// when no product has the handle.
func (r *CatalogRepository) FindProductByHandle(ctx context.Context, handle string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a new product
func (r *CatalogRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(product).Error
}

// UpdateProduct saves product-level fields for an existing product
func (r *CatalogRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"title":        product.Title,
			"subtitle":     product.Subtitle,
			"description":  product.Description,
			"status":       product.Status,
			"thumbnail":    product.Thumbnail,
			"highlights":   product.Highlights,
			"discountable": product.Discountable,
			"updated_at":   product.UpdatedAt,
		}).Error
}

// UpsertPrimaryImage creates or replaces the primary image row for a product.
// At most one primary image exists per product.
func (r *CatalogRepository) UpsertPrimaryImage(ctx context.Context, productID uuid.UUID, url string) error {
	var image models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_primary = ?", productID, true).
		First(&image).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		image = models.ProductImage{
			ID:        uuid.New(),
			ProductID: productID,
			URL:       url,
			IsPrimary: true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		return r.db.WithContext(ctx).Create(&image).Error
	}
	if err != nil {
		return err
	}

	if image.URL == url {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.ProductImage{}).
		Where("id = ?", image.ID).
		Updates(map[string]interface{}{
			"url":        url,
			"updated_at": time.Now(),
		}).Error
}

// Variant Operations

// FindVariantBySKU retrieves a variant by SKU. Returns (nil, nil) when no
// variant has the SKU.
func (r *CatalogRepository) FindVariantBySKU(ctx context.Context, sku string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&variant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// CreateVariant creates a new product variant
func (r *CatalogRepository) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	if variant.ID == uuid.Nil {
		variant.ID = uuid.New()
	}
	variant.CreatedAt = time.Now()
	variant.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(variant).Error
}

// UpdateVariant saves variant fields for an existing variant
func (r *CatalogRepository) UpdateVariant(ctx context.Context, variant *models.ProductVariant) error {
	variant.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Model(&models.ProductVariant{}).
		Where("id = ?", variant.ID).
		Updates(map[string]interface{}{
			"title":      variant.Title,
			"price":      variant.Price,
			"quantity":   variant.Quantity,
			"active":     variant.Active,
			"updated_at": variant.UpdatedAt,
		}).Error
}

// UpsertInventoryLevel creates or updates the inventory row for a variant.
// One inventory row exists per variant.
func (r *CatalogRepository) UpsertInventoryLevel(ctx context.Context, level *models.InventoryLevel) error {
	if level.ID == uuid.Nil {
		level.ID = uuid.New()
	}
	level.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "variant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"quantity", "in_stock", "manage_inventory", "allow_backorder", "updated_at",
		}),
	}).Create(level).Error
}

// Reference Operations

// FindCategoryByRef retrieves a category by slug or name (case-insensitive),
// with caching. Returns (nil, nil) when no category matches.
func (r *CatalogRepository) FindCategoryByRef(ctx context.Context, ref string) (*models.Category, error) {
	cacheKey := fmt.Sprintf("catalog:category:%s", strings.ToLower(ref))

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var category models.Category
			if err := json.Unmarshal([]byte(val), &category); err == nil {
				return &category, nil
			}
		}
	}

	var category models.Category
	err := r.db.WithContext(ctx).
		Where("slug = ? OR LOWER(name) = LOWER(?)", strings.ToLower(ref), ref).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(category); err == nil {
			r.redis.Set(ctx, cacheKey, data, RefCacheTTL)
		}
	}

	return &category, nil
}

// FindCollectionByRef retrieves a collection by slug or title
// (case-insensitive), with caching. Returns (nil, nil) when no collection
// matches.
func (r *CatalogRepository) FindCollectionByRef(ctx context.Context, ref string) (*models.Collection, error) {
	cacheKey := fmt.Sprintf("catalog:collection:%s", strings.ToLower(ref))

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var collection models.Collection
			if err := json.Unmarshal([]byte(val), &collection); err == nil {
				return &collection, nil
			}
		}
	}

	var collection models.Collection
	err := r.db.WithContext(ctx).
		Where("slug = ? OR LOWER(title) = LOWER(?)", strings.ToLower(ref), ref).
		First(&collection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.redis != nil {
		if data, err := json.Marshal(collection); err == nil {
			r.redis.Set(ctx, cacheKey, data, RefCacheTTL)
		}
	}

	return &collection, nil
}

// FindOrCreateTag finds a tag by name (case-insensitive) or creates it.
// A concurrent create racing on the unique index falls back to a re-fetch.
func (r *CatalogRepository) FindOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = models.Tag{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate") {
			if findErr := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&tag).Error; findErr == nil {
				return &tag, nil
			}
		}
		return nil, fmt.Errorf("failed to create tag '%s': %w", name, err)
	}
	return &tag, nil
}

// AttachCategory links a product to a category; re-attaching is a no-op
func (r *CatalogRepository) AttachCategory(ctx context.Context, productID, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProductCategory{ProductID: productID, CategoryID: categoryID}).Error
}

// AttachCollection links a product to a collection; re-attaching is a no-op
func (r *CatalogRepository) AttachCollection(ctx context.Context, productID, collectionID uuid.UUID) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProductCollection{ProductID: productID, CollectionID: collectionID}).Error
}

// AttachTag links a product to a tag; re-attaching is a no-op
func (r *CatalogRepository) AttachTag(ctx context.Context, productID, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProductTag{ProductID: productID, TagID: tagID}).Error
}

// Existence Checks (used by validation, read-only)

// SKUExists reports whether a variant with the SKU already exists
func (r *CatalogRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductVariant{}).
		Where("sku = ?", sku).
		Count(&count).Error
	return count > 0, err
}

// CategoryExists reports whether a category matches the slug or name
func (r *CatalogRepository) CategoryExists(ctx context.Context, ref string) (bool, error) {
	category, err := r.FindCategoryByRef(ctx, ref)
	if err != nil {
		return false, err
	}
	return category != nil, nil
}

// CollectionExists reports whether a collection matches the slug or title
func (r *CatalogRepository) CollectionExists(ctx context.Context, ref string) (bool, error) {
	collection, err := r.FindCollectionByRef(ctx, ref)
	if err != nil {
		return false, err
	}
	return collection != nil, nil
}
