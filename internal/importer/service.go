package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"catalog-service/internal/models"
)

// Service orchestrates the import pipeline: parse, normalize, validate,
// group, and either preview or execute. Rows are processed strictly in file
// order; the batch SKU set and the store's create-vs-update lookups both
// depend on it.
type Service struct {
	store Store
	log   *logrus.Logger
}

// NewService returns an import service backed by the given store
func NewService(store Store, log *logrus.Logger) *Service {
	return &Service{store: store, log: log}
}

// Preview runs the full pipeline without writing to the store. The only store
// access is the read-only existence checks inside validation. Success means
// zero blocking findings across the whole file.
func (s *Service) Preview(ctx context.Context, data []byte, format models.ImportFormat) (*models.PreviewResult, error) {
	rows, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	validator := NewValidator(s.store)
	batch := NewBatch()

	records := make([]RowRecord, 0, len(rows))
	var findings []models.Finding

	for _, raw := range rows {
		row := Normalize(raw)
		records = append(records, RowRecord{Line: raw.Line, Row: row})
		findings = append(findings, validator.ValidateRow(ctx, row, raw.Line, batch)...)
	}

	groups := Group(records, findings)

	result := &models.PreviewResult{
		TotalRows:     len(rows),
		TotalProducts: len(groups),
		Groups:        groups,
	}

	blockedLines := make(map[int]struct{})
	for _, f := range findings {
		if f.Severity == models.SeverityBlocking {
			result.Blocking = append(result.Blocking, f)
			blockedLines[f.Row] = struct{}{}
		} else {
			result.Warnings = append(result.Warnings, f)
		}
	}
	result.InvalidRows = len(blockedLines)
	result.ValidRows = result.TotalRows - result.InvalidRows
	result.Success = len(result.Blocking) == 0

	for _, g := range groups {
		result.TotalVariants += len(g.Variants)
	}

	return result, nil
}

// Execute imports the given groups in order. Groups with blocking findings
// never reach the store; a group that fails mid-import is recorded and the
// executor moves on. Counters accumulate monotonically and are not rolled
// back on a later failure.
func (s *Service) Execute(ctx context.Context, groups []models.ProductGroup) *models.ImportResult {
	start := time.Now()
	result := &models.ImportResult{}

	for i := range groups {
		group := &groups[i]

		if !group.Importable() {
			messages := make([]string, 0, len(group.Blocking))
			for _, f := range group.Blocking {
				messages = append(messages, f.Message)
			}
			result.FailedCount++
			result.Errors = append(result.Errors, models.ImportError{
				Handle:  group.Handle,
				Message: "validation failed",
				Details: strings.Join(messages, "; "),
			})
			continue
		}

		if err := s.importGroup(ctx, group, result); err != nil {
			s.log.WithFields(logrus.Fields{
				"handle": group.Handle,
				"error":  err.Error(),
			}).Warn("product group import failed")
			result.FailedCount++
			result.Errors = append(result.Errors, models.ImportError{
				Handle:  group.Handle,
				Message: err.Error(),
			})
			continue
		}
	}

	result.Success = len(result.Errors) == 0
	result.DurationMs = time.Since(start).Milliseconds()
	return result
}

// importGroup creates or updates one product with its variants, inventory and
// associations. Create-vs-update is decided by handle/SKU lookup, which makes
// re-importing the same file naturally idempotent.
func (s *Service) importGroup(ctx context.Context, group *models.ProductGroup, result *models.ImportResult) error {
	now := time.Now()

	product, err := s.store.FindProductByHandle(ctx, group.Handle)
	if err != nil {
		return fmt.Errorf("lookup product '%s': %w", group.Handle, err)
	}

	if product != nil {
		product.Title = group.Title
		product.Subtitle = optional(group.Subtitle)
		product.Description = optional(group.Description)
		product.Status = group.Status
		product.Discountable = group.Discountable
		product.Highlights = highlightsJSON(group.Highlights)
		product.Thumbnail = optional(group.Thumbnail)
		product.UpdatedAt = now
		if err := s.store.UpdateProduct(ctx, product); err != nil {
			return fmt.Errorf("update product '%s': %w", group.Handle, err)
		}
		result.ProductsUpdated++
	} else {
		product = &models.Product{
			Handle:       group.Handle,
			Title:        group.Title,
			Subtitle:     optional(group.Subtitle),
			Description:  optional(group.Description),
			Status:       group.Status,
			Thumbnail:    optional(group.Thumbnail),
			Highlights:   highlightsJSON(group.Highlights),
			Discountable: group.Discountable,
			Price:        formatPrice(minVariantPrice(group.Variants)),
		}
		if err := s.store.CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("create product '%s': %w", group.Handle, err)
		}
		result.ProductsCreated++
	}

	if group.Thumbnail != "" {
		if err := s.store.UpsertPrimaryImage(ctx, product.ID, group.Thumbnail); err != nil {
			return fmt.Errorf("upsert thumbnail for '%s': %w", group.Handle, err)
		}
	}

	for _, spec := range group.Variants {
		if err := s.importVariant(ctx, product, spec, now, result); err != nil {
			return err
		}
	}

	return s.attachReferences(ctx, product, group)
}

func (s *Service) importVariant(ctx context.Context, product *models.Product, spec models.VariantSpec, now time.Time, result *models.ImportResult) error {
	variant, err := s.store.FindVariantBySKU(ctx, spec.SKU)
	if err != nil {
		return fmt.Errorf("lookup variant '%s': %w", spec.SKU, err)
	}

	if variant != nil {
		variant.Title = spec.Title
		variant.Price = formatPrice(spec.Price)
		variant.Quantity = spec.Quantity
		variant.Active = true
		variant.UpdatedAt = now
		if err := s.store.UpdateVariant(ctx, variant); err != nil {
			return fmt.Errorf("update variant '%s': %w", spec.SKU, err)
		}
		result.VariantsUpdated++
	} else {
		variant = &models.ProductVariant{
			ProductID: product.ID,
			SKU:       spec.SKU,
			Title:     spec.Title,
			Price:     formatPrice(spec.Price),
			Quantity:  spec.Quantity,
			Active:    true,
			Images:    stringsJSON(spec.Images),
			Options:   optionsJSON(spec.Options),
		}
		if err := s.store.CreateVariant(ctx, variant); err != nil {
			return fmt.Errorf("create variant '%s': %w", spec.SKU, err)
		}
		result.VariantsCreated++
	}

	level := &models.InventoryLevel{
		VariantID:       variant.ID,
		Quantity:        spec.Quantity,
		InStock:         spec.Quantity > 0 || spec.AllowBackorder,
		ManageInventory: spec.ManageInventory,
		AllowBackorder:  spec.AllowBackorder,
	}
	if err := s.store.UpsertInventoryLevel(ctx, level); err != nil {
		return fmt.Errorf("upsert inventory for '%s': %w", spec.SKU, err)
	}

	return nil
}

// attachReferences resolves collection/category/tag references and upserts
// the join rows. Categories and collections must pre-exist; an unresolved
// reference is skipped (preview already warned about it). Tags are created
// on first use.
func (s *Service) attachReferences(ctx context.Context, product *models.Product, group *models.ProductGroup) error {
	for _, ref := range group.Categories {
		category, err := s.store.FindCategoryByRef(ctx, ref)
		if err != nil {
			return fmt.Errorf("lookup category '%s': %w", ref, err)
		}
		if category == nil {
			continue
		}
		if err := s.store.AttachCategory(ctx, product.ID, category.ID); err != nil {
			return fmt.Errorf("attach category '%s': %w", ref, err)
		}
	}

	for _, ref := range group.Collections {
		collection, err := s.store.FindCollectionByRef(ctx, ref)
		if err != nil {
			return fmt.Errorf("lookup collection '%s': %w", ref, err)
		}
		if collection == nil {
			continue
		}
		if err := s.store.AttachCollection(ctx, product.ID, collection.ID); err != nil {
			return fmt.Errorf("attach collection '%s': %w", ref, err)
		}
	}

	for _, name := range group.Tags {
		tag, err := s.store.FindOrCreateTag(ctx, name)
		if err != nil {
			return fmt.Errorf("resolve tag '%s': %w", name, err)
		}
		if err := s.store.AttachTag(ctx, product.ID, tag.ID); err != nil {
			return fmt.Errorf("attach tag '%s': %w", name, err)
		}
	}

	return nil
}

func minVariantPrice(variants []models.VariantSpec) float64 {
	if len(variants) == 0 {
		return 0
	}
	min := variants[0].Price
	for _, v := range variants[1:] {
		if v.Price < min {
			min = v.Price
		}
	}
	return min
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringsJSON(values []string) *models.JSONArray {
	if len(values) == 0 {
		return nil
	}
	arr := make(models.JSONArray, 0, len(values))
	for _, v := range values {
		arr = append(arr, v)
	}
	return &arr
}

func optionsJSON(options []models.OptionPair) *models.JSONArray {
	if len(options) == 0 {
		return nil
	}
	arr := make(models.JSONArray, 0, len(options))
	for _, o := range options {
		arr = append(arr, map[string]interface{}{"name": o.Name, "value": o.Value})
	}
	return &arr
}

func highlightsJSON(highlights []models.HighlightPair) *models.JSONArray {
	if len(highlights) == 0 {
		return nil
	}
	arr := make(models.JSONArray, 0, len(highlights))
	for _, h := range highlights {
		arr = append(arr, map[string]interface{}{"label": h.Label, "value": h.Value})
	}
	return &arr
}
