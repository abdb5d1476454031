package models

// ImportFormat represents the file format for import
type ImportFormat string

const (
	ImportFormatCSV  ImportFormat = "csv"
	ImportFormatXLSX ImportFormat = "xlsx"
)

// Severity classifies a validation finding. Blocking findings exclude the
// containing row's group from import; warnings are informational only.
type Severity string

const (
	SeverityBlocking Severity = "blocking"
	SeverityWarning  Severity = "warning"
)

// Finding represents a single validation result for a row. Row is the
// human-visible file line (header = 1, first data row = 2).
type Finding struct {
	Row      int      `json:"row"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// HighlightPair is a label/value product highlight
type HighlightPair struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OptionPair is a name/value variant option (e.g. Color / Black)
type OptionPair struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NormalizedRow is the canonical shape of one input row after column aliasing
// and type coercion. Every row belongs to exactly one product handle.
type NormalizedRow struct {
	Handle          string          `json:"handle"`
	Title           string          `json:"title"`
	Subtitle        string          `json:"subtitle,omitempty"`
	Description     string          `json:"description,omitempty"`
	Status          ProductStatus   `json:"status"`
	Thumbnail       string          `json:"thumbnail,omitempty"`
	Highlights      []HighlightPair `json:"highlights,omitempty"`
	Discountable    bool            `json:"discountable"`
	VariantTitle    string          `json:"variantTitle"`
	SKU             string          `json:"sku"`
	Price           float64         `json:"price"`
	Quantity        int             `json:"quantity"`
	// QuantityGiven distinguishes a blank quantity cell from an explicit 0
	QuantityGiven   bool            `json:"-"`
	ManageInventory bool            `json:"manageInventory"`
	AllowBackorder  bool            `json:"allowBackorder"`
	Images          []string        `json:"images,omitempty"`
	Options         []OptionPair    `json:"options,omitempty"`
	Collections     []string        `json:"collections,omitempty"`
	Categories      []string        `json:"categories,omitempty"`
	Tags            []string        `json:"tags,omitempty"`
}

// VariantSpec is the variant payload carried by a ProductGroup
type VariantSpec struct {
	Title           string       `json:"title"`
	SKU             string       `json:"sku"`
	Price           float64      `json:"price"`
	Quantity        int          `json:"quantity"`
	ManageInventory bool         `json:"manageInventory"`
	AllowBackorder  bool         `json:"allowBackorder"`
	Images          []string     `json:"images,omitempty"`
	Options         []OptionPair `json:"options,omitempty"`
}

// ProductGroup aggregates all rows sharing one handle. Product-level fields
// come from the first row seen for the handle; later rows only contribute
// variants. The group is the unit of import and of failure isolation.
type ProductGroup struct {
	Handle       string          `json:"handle"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle,omitempty"`
	Description  string          `json:"description,omitempty"`
	Status       ProductStatus   `json:"status"`
	Thumbnail    string          `json:"thumbnail,omitempty"`
	Highlights   []HighlightPair `json:"highlights,omitempty"`
	Discountable bool            `json:"discountable"`
	Collections  []string        `json:"collections,omitempty"`
	Categories   []string        `json:"categories,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	Variants     []VariantSpec   `json:"variants"`
	Blocking     []Finding       `json:"blocking,omitempty"`
	Warnings     []Finding       `json:"warnings,omitempty"`
}

// Importable reports whether the executor may attempt this group
func (g *ProductGroup) Importable() bool {
	return len(g.Blocking) == 0
}

// PreviewResult is the read-only outcome of running the pipeline without any
// store writes. Row counts are file-level; group counts reflect the folded
// product/variant view.
type PreviewResult struct {
	Success       bool           `json:"success"`
	TotalRows     int            `json:"totalRows"`
	ValidRows     int            `json:"validRows"`
	InvalidRows   int            `json:"invalidRows"`
	TotalProducts int            `json:"totalProducts"`
	TotalVariants int            `json:"totalVariants"`
	Groups        []ProductGroup `json:"groups"`
	Blocking      []Finding      `json:"blocking,omitempty"`
	Warnings      []Finding      `json:"warnings,omitempty"`
}

// ImportError records one product group that could not be imported
type ImportError struct {
	Handle  string `json:"handle"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ImportResult is the outcome of executing an import. Partial success is an
// expected, reported state: counts cover everything that did import even when
// the error list is non-empty.
type ImportResult struct {
	Success         bool          `json:"success"`
	ProductsCreated int           `json:"productsCreated"`
	ProductsUpdated int           `json:"productsUpdated"`
	VariantsCreated int           `json:"variantsCreated"`
	VariantsUpdated int           `json:"variantsUpdated"`
	FailedCount     int           `json:"failedCount"`
	Errors          []ImportError `json:"errors,omitempty"`
	DurationMs      int64         `json:"durationMs"`
}

// ExecuteImportRequest is the payload for the import execute endpoint. The
// caller is expected to run preview first and pass the (possibly edited)
// groups back.
type ExecuteImportRequest struct {
	Groups []ProductGroup `json:"groups" binding:"required"`
}

// ImportTemplateColumn defines a column in the import template
type ImportTemplateColumn struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Type        string `json:"type"` // string, number, boolean
	Example     string `json:"example"`
}

// ImportTemplate defines the structure of an import template
type ImportTemplate struct {
	Entity     string                 `json:"entity"`
	Version    string                 `json:"version"`
	Columns    []ImportTemplateColumn `json:"columns"`
	SampleData [][]string             `json:"sampleData,omitempty"`
}

// CatalogImportColumns returns the column definitions for catalog import
func CatalogImportColumns() []ImportTemplateColumn {
	return []ImportTemplateColumn{
		{Name: "Handle", Description: "Unique product slug; rows sharing a handle become variants of one product", Required: true, Type: "string", Example: "oxford-shirt"},
		{Name: "Title", Description: "Product title", Required: true, Type: "string", Example: "Oxford Shirt"},
		{Name: "Subtitle", Description: "Short product subtitle", Required: false, Type: "string", Example: "Classic fit"},
		{Name: "Description", Description: "Long product description", Required: false, Type: "string", Example: "A wardrobe staple in breathable cotton."},
		{Name: "Status", Description: "draft or published (defaults to draft)", Required: false, Type: "string", Example: "published"},
		{Name: "Thumbnail", Description: "Primary image URL", Required: false, Type: "string", Example: "https://cdn.example.com/oxford-shirt.jpg"},
		{Name: "Highlight 1 Label", Description: "First highlight label", Required: false, Type: "string", Example: "Material"},
		{Name: "Highlight 1 Value", Description: "First highlight value", Required: false, Type: "string", Example: "100% cotton"},
		{Name: "Highlight 2 Label", Description: "Second highlight label", Required: false, Type: "string", Example: "Fit"},
		{Name: "Highlight 2 Value", Description: "Second highlight value", Required: false, Type: "string", Example: "Classic"},
		{Name: "Discountable", Description: "true/1/yes to allow discounts", Required: false, Type: "boolean", Example: "true"},
		{Name: "Variant Title", Description: "Variant display title", Required: true, Type: "string", Example: "Black / M"},
		{Name: "Variant SKU", Description: "Unique variant SKU (BRAND-CATEGORY-PRODUCT-VARIANT recommended)", Required: true, Type: "string", Example: "DUDE-SHT-OXFRD-BLK-M"},
		{Name: "Price", Description: "Variant price, must be greater than 0", Required: true, Type: "number", Example: "19.99"},
		{Name: "Quantity", Description: "Stock quantity, zero or more", Required: true, Type: "number", Example: "100"},
		{Name: "Manage Inventory", Description: "true to track stock for this variant", Required: false, Type: "boolean", Example: "true"},
		{Name: "Allow Backorder", Description: "true to sell below zero stock", Required: false, Type: "boolean", Example: "false"},
		{Name: "Variant Images", Description: "Comma-separated image URLs", Required: false, Type: "string", Example: ""},
		{Name: "Option 1 Name", Description: "First option name", Required: false, Type: "string", Example: "Color"},
		{Name: "Option 1 Value", Description: "First option value", Required: false, Type: "string", Example: "Black"},
		{Name: "Option 2 Name", Description: "Second option name", Required: false, Type: "string", Example: "Size"},
		{Name: "Option 2 Value", Description: "Second option value", Required: false, Type: "string", Example: "M"},
		{Name: "Collections", Description: "Comma-separated collection slugs (must exist)", Required: false, Type: "string", Example: "essentials"},
		{Name: "Categories", Description: "Comma-separated category slugs (must exist)", Required: false, Type: "string", Example: "shirts"},
		{Name: "Tags", Description: "Comma-separated tags (created if missing)", Required: false, Type: "string", Example: "cotton,classic"},
	}
}

// CatalogImportSampleRows returns two example rows sharing one handle,
// demonstrating the multi-row-per-product convention.
func CatalogImportSampleRows() [][]string {
	return [][]string{
		{
			"oxford-shirt", "Oxford Shirt", "Classic fit", "A wardrobe staple in breathable cotton.",
			"published", "https://cdn.example.com/oxford-shirt.jpg",
			"Material", "100% cotton", "Fit", "Classic", "true",
			"Black / M", "DUDE-SHT-OXFRD-BLK-M", "19.99", "100", "true", "false",
			"", "Color", "Black", "Size", "M",
			"essentials", "shirts", "cotton,classic",
		},
		{
			"oxford-shirt", "Oxford Shirt", "", "",
			"", "",
			"", "", "", "", "",
			"Black / L", "DUDE-SHT-OXFRD-BLK-L", "19.99", "100", "true", "false",
			"", "Color", "Black", "Size", "L",
			"", "", "",
		},
	}
}

// CatalogImportTemplate returns the template definition for catalog import
func CatalogImportTemplate() ImportTemplate {
	return ImportTemplate{
		Entity:     "catalog",
		Version:    "1.0",
		Columns:    CatalogImportColumns(),
		SampleData: CatalogImportSampleRows(),
	}
}
