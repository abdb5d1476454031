package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductStatus represents the publication status of a product
type ProductStatus string

const (
	ProductStatusDraft     ProductStatus = "DRAFT"
	ProductStatusPublished ProductStatus = "PUBLISHED"
)

// JSON type for PostgreSQL JSONB (object/map)
type JSON map[string]interface{}

func (j JSON) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// JSONArray type for PostgreSQL JSONB (array)
type JSONArray []interface{}

func (j JSONArray) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONArray, 0)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// Product represents a catalog product. The handle is the natural key used by
// the bulk importer to decide create-vs-update.
type Product struct {
	ID           uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Handle       string            `json:"handle" gorm:"not null;uniqueIndex:idx_products_handle"`
	Title        string            `json:"title" gorm:"not null"`
	Subtitle     *string           `json:"subtitle,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Status       ProductStatus     `json:"status" gorm:"not null;default:'DRAFT';index"`
	Thumbnail    *string           `json:"thumbnail,omitempty"`
	Highlights   *JSONArray        `json:"highlights,omitempty" gorm:"type:jsonb"`
	Discountable bool              `json:"discountable" gorm:"not null;default:true"`
	Price        string            `json:"price" gorm:"not null;default:'0'"`
	Variants     []*ProductVariant `json:"variants,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	DeletedAt    *gorm.DeletedAt   `json:"deletedAt,omitempty" gorm:"index"`
}

// ProductVariant represents a purchasable variant of a product, keyed by SKU.
type ProductVariant struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID       `json:"productId" gorm:"type:uuid;not null;index"`
	SKU       string          `json:"sku" gorm:"not null;uniqueIndex:idx_variants_sku"`
	Title     string          `json:"title" gorm:"not null"`
	Price     string          `json:"price" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null;default:0"`
	Active    bool            `json:"active" gorm:"not null;default:true"`
	Images    *JSONArray      `json:"images,omitempty" gorm:"type:jsonb"`
	Options   *JSONArray      `json:"options,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	DeletedAt *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// ProductImage represents an image attached to a product
type ProductImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_images_product_primary,where:is_primary"`
	URL       string    `json:"url" gorm:"not null"`
	IsPrimary bool      `json:"isPrimary" gorm:"column:is_primary;not null;default:false"`
	Position  int       `json:"position" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// InventoryLevel tracks stock for a single variant
type InventoryLevel struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VariantID       uuid.UUID `json:"variantId" gorm:"type:uuid;not null;uniqueIndex:idx_inventory_variant"`
	Quantity        int       `json:"quantity" gorm:"not null;default:0"`
	InStock         bool      `json:"inStock" gorm:"column:in_stock;not null;default:false"`
	ManageInventory bool      `json:"manageInventory" gorm:"column:manage_inventory;not null;default:true"`
	AllowBackorder  bool      `json:"allowBackorder" gorm:"column:allow_backorder;not null;default:false"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Collection represents a curated product collection. Collections must exist
// before an import can reference them.
type Collection struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Slug      string    `json:"slug" gorm:"not null;uniqueIndex"`
	Title     string    `json:"title" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Category represents a product category. Categories must exist before an
// import can reference them.
type Category struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Slug      string    `json:"slug" gorm:"not null;uniqueIndex"`
	Name      string    `json:"name" gorm:"not null"`
	IsActive  *bool     `json:"isActive" gorm:"column:is_active;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Tag represents a free-form product tag. Tags are the only reference type
// the importer creates on the fly.
type Tag struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductCategory is the product/category join row
type ProductCategory struct {
	ProductID  uuid.UUID `json:"productId" gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `json:"categoryId" gorm:"type:uuid;primaryKey"`
}

// ProductCollection is the product/collection join row
type ProductCollection struct {
	ProductID    uuid.UUID `json:"productId" gorm:"type:uuid;primaryKey"`
	CollectionID uuid.UUID `json:"collectionId" gorm:"type:uuid;primaryKey"`
}

// ProductTag is the product/tag join row
type ProductTag struct {
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `json:"tagId" gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TableName returns the table name for the ProductVariant model
func (ProductVariant) TableName() string {
	return "product_variants"
}

// TableName returns the table name for the ProductImage model
func (ProductImage) TableName() string {
	return "product_images"
}

// TableName returns the table name for the InventoryLevel model
func (InventoryLevel) TableName() string {
	return "inventory_levels"
}

// TableName returns the table name for the Collection model
func (Collection) TableName() string {
	return "collections"
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// TableName returns the table name for the Tag model
func (Tag) TableName() string {
	return "tags"
}

// TableName returns the table name for the ProductCategory model
func (ProductCategory) TableName() string {
	return "product_categories"
}

// TableName returns the table name for the ProductCollection model
func (ProductCollection) TableName() string {
	return "product_collections"
}

// TableName returns the table name for the ProductTag model
func (ProductTag) TableName() string {
	return "product_tags"
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     Error  `json:"error"`
	Timestamp string `json:"timestamp,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Details *JSON  `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message *string     `json:"message,omitempty"`
}
