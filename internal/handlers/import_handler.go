package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-service/internal/importer"
	"catalog-service/internal/models"
)

// MaxImportFileSize caps uploaded import files at 10 MB
const MaxImportFileSize = 10 << 20

type ImportHandler struct {
	service *importer.Service
}

func NewImportHandler(service *importer.Service) *ImportHandler {
	return &ImportHandler{service: service}
}

// GetImportTemplate returns the import template definition or file
// @Summary Get catalog import template
// @Description Get the catalog import template as JSON definition, CSV or Excel file
// @Tags Import
// @Produce json
// @Param format query string false "Template format: json, csv or xlsx" default(json)
// @Success 200 {object} models.SuccessResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /catalog/import/template [get]
func (h *ImportHandler) GetImportTemplate(c *gin.Context) {
	format := c.DefaultQuery("format", "json")

	switch format {
	case "csv":
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", "attachment; filename=catalog_import_template.csv")
		if err := importer.WriteCSVTemplate(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "TEMPLATE_FAILED",
					Message: "Failed to generate CSV template",
				},
			})
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", "attachment; filename=catalog_import_template.xlsx")
		if err := importer.WriteXLSXTemplate(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "TEMPLATE_FAILED",
					Message: "Failed to generate Excel template",
				},
			})
		}
	default:
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"template": models.CatalogImportTemplate(),
		})
	}
}

// PreviewImport validates an uploaded file and returns the grouped preview
// @Summary Preview a catalog import
// @Description Parse and validate a CSV or Excel file without writing anything; returns product groups with blocking errors and warnings
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or Excel file"
// @Success 200 {object} models.PreviewResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /catalog/import/preview [post]
func (h *ImportHandler) PreviewImport(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "Please upload a CSV or Excel file",
			},
		})
		return
	}
	defer file.Close()

	if header.Size > MaxImportFileSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_TOO_LARGE",
				Message: "Import file must not exceed 10 MB",
			},
		})
		return
	}

	format, err := importer.FormatFromFilename(header.Filename)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "UNSUPPORTED_FORMAT",
				Message: err.Error(),
			},
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_READ_FAILED",
				Message: "Failed to read uploaded file",
			},
		})
		return
	}

	result, err := h.service.Preview(c.Request.Context(), data, format)
	if errors.Is(err, importer.ErrEmptyFile) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "EMPTY_FILE",
				Message: "The file contains no data rows",
			},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "PARSE_FAILED",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExecuteImport imports the given product groups
// @Summary Execute a catalog import
// @Description Import the product groups produced by preview; groups with blocking errors are skipped, failures are isolated per group
// @Tags Import
// @Accept json
// @Produce json
// @Param request body models.ExecuteImportRequest true "Product groups to import"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} models.ErrorResponse
// @Router /catalog/import [post]
func (h *ImportHandler) ExecuteImport(c *gin.Context) {
	var req models.ExecuteImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid request body",
				Details: &models.JSON{"error": err.Error()},
			},
		})
		return
	}

	if len(req.Groups) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "EMPTY_IMPORT",
				Message: "At least one product group is required",
			},
		})
		return
	}

	result := h.service.Execute(c.Request.Context(), req.Groups)
	c.JSON(http.StatusOK, result)
}
