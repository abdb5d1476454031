package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"catalog-service/internal/importer"
	"catalog-service/internal/models"
)

// stubStore is an in-memory Store where nothing exists yet and every write
// succeeds
type stubStore struct{}

func (stubStore) FindProductByHandle(ctx context.Context, handle string) (*models.Product, error) {
	return nil, nil
}
func (stubStore) CreateProduct(ctx context.Context, product *models.Product) error {
	product.ID = uuid.New()
	return nil
}
func (stubStore) UpdateProduct(ctx context.Context, product *models.Product) error { return nil }
func (stubStore) UpsertPrimaryImage(ctx context.Context, productID uuid.UUID, url string) error {
	return nil
}
func (stubStore) FindVariantBySKU(ctx context.Context, sku string) (*models.ProductVariant, error) {
	return nil, nil
}
func (stubStore) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	variant.ID = uuid.New()
	return nil
}
func (stubStore) UpdateVariant(ctx context.Context, variant *models.ProductVariant) error {
	return nil
}
func (stubStore) UpsertInventoryLevel(ctx context.Context, level *models.InventoryLevel) error {
	return nil
}
func (stubStore) FindCategoryByRef(ctx context.Context, ref string) (*models.Category, error) {
	return nil, nil
}
func (stubStore) FindCollectionByRef(ctx context.Context, ref string) (*models.Collection, error) {
	return nil, nil
}
func (stubStore) FindOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	return &models.Tag{ID: uuid.New(), Name: name}, nil
}
func (stubStore) AttachCategory(ctx context.Context, productID, categoryID uuid.UUID) error {
	return nil
}
func (stubStore) AttachCollection(ctx context.Context, productID, collectionID uuid.UUID) error {
	return nil
}
func (stubStore) AttachTag(ctx context.Context, productID, tagID uuid.UUID) error { return nil }
func (stubStore) SKUExists(ctx context.Context, sku string) (bool, error)         { return false, nil }
func (stubStore) CategoryExists(ctx context.Context, ref string) (bool, error)    { return true, nil }
func (stubStore) CollectionExists(ctx context.Context, ref string) (bool, error)  { return true, nil }

func setupImportRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	service := importer.NewService(stubStore{}, logger)
	handler := NewImportHandler(service)

	r := gin.New()
	r.GET("/api/v1/catalog/import/template", handler.GetImportTemplate)
	r.POST("/api/v1/catalog/import/preview", handler.PreviewImport)
	r.POST("/api/v1/catalog/import", handler.ExecuteImport)
	return r
}

func TestGetImportTemplate_JSON(t *testing.T) {
	router := setupImportRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/import/template", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success  bool                  `json:"success"`
		Template models.ImportTemplate `json:"template"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "catalog", body.Template.Entity)
	assert.NotEmpty(t, body.Template.Columns)
	assert.Len(t, body.Template.SampleData, 2)
}

func TestGetImportTemplate_CSVDownload(t *testing.T) {
	router := setupImportRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/import/template?format=csv", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Handle,Title")
	assert.Contains(t, w.Body.String(), "oxford-shirt")
}

func TestPreviewImport_RequiresFile(t *testing.T) {
	router := setupImportRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import/preview", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "FILE_REQUIRED", body.Error.Code)
}

func TestPreviewImport_RejectsUnknownExtension(t *testing.T) {
	router := setupImportRouter()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "catalog.pdf")
	part.Write([]byte("not a spreadsheet"))
	writer.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import/preview", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UNSUPPORTED_FORMAT", body.Error.Code)
}

func TestPreviewImport_RejectsHeaderOnlyFile(t *testing.T) {
	router := setupImportRouter()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "catalog.csv")
	part.Write([]byte("Handle,Title,Variant Title,Variant SKU,Price,Quantity\n"))
	writer.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import/preview", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "EMPTY_FILE", body.Error.Code)
}

func TestPreviewImport_ReturnsGroupedPreview(t *testing.T) {
	router := setupImportRouter()

	csv := "Handle,Title,Variant Title,Variant SKU,Price,Quantity,Thumbnail\n" +
		"oxford-shirt,Oxford Shirt,Black / M,DUDE-SHT-OXFRD-BLK-M,19.99,100,https://cdn.example.com/oxford-shirt.jpg\n" +
		"oxford-shirt,Oxford Shirt,Black / L,DUDE-SHT-OXFRD-BLK-L,19.99,100,https://cdn.example.com/oxford-shirt.jpg\n"

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("file", "catalog.csv")
	part.Write([]byte(csv))
	writer.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import/preview", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.PreviewResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.TotalProducts)
	assert.Equal(t, 2, result.TotalVariants)
	assert.Len(t, result.Groups, 1)
}

func TestExecuteImport_RejectsEmptyBody(t *testing.T) {
	router := setupImportRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
}

func TestExecuteImport_ImportsGroups(t *testing.T) {
	router := setupImportRouter()

	payload, _ := json.Marshal(models.ExecuteImportRequest{
		Groups: []models.ProductGroup{
			{
				Handle: "oxford-shirt",
				Title:  "Oxford Shirt",
				Status: models.ProductStatusPublished,
				Variants: []models.VariantSpec{
					{Title: "Black / M", SKU: "DUDE-SHT-OXFRD-BLK-M", Price: 19.99, Quantity: 100},
				},
			},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result models.ImportResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ProductsCreated)
	assert.Equal(t, 1, result.VariantsCreated)
}
