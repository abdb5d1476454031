package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-service/internal/models"
)

func TestParseCSV_LineNumbersStartAfterHeader(t *testing.T) {
	csv := "Handle,Title\n" +
		"mug,Coffee Mug\n" +
		"tee,Basic Tee\n"

	rows, err := Parse([]byte(csv), models.ImportFormatCSV)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "mug", rows[0].Get("handle"))
	assert.Equal(t, "Basic Tee", rows[1].Get("title"))
}

func TestParseCSV_HeadersAreNormalized(t *testing.T) {
	csv := "Handle *, Variant SKU *,PRICE\n" +
		"mug,ACME-KIT-MUG-STD,9.99\n"

	rows, err := Parse([]byte(csv), models.ImportFormatCSV)

	assert.NoError(t, err)
	assert.Equal(t, "mug", rows[0].Get("handle"))
	assert.Equal(t, "ACME-KIT-MUG-STD", rows[0].Get("variant sku"))
	assert.Equal(t, "9.99", rows[0].Get("price"))
}

func TestParseCSV_ValuesAreTrimmed(t *testing.T) {
	csv := "Handle,Title\n" +
		" mug , Coffee Mug \n"

	rows, err := Parse([]byte(csv), models.ImportFormatCSV)

	assert.NoError(t, err)
	assert.Equal(t, "mug", rows[0].Get("handle"))
	assert.Equal(t, "Coffee Mug", rows[0].Get("title"))
}

func TestParseCSV_ShortRowsAreAccepted(t *testing.T) {
	csv := "Handle,Title,Price\n" +
		"mug,Coffee Mug\n"

	rows, err := Parse([]byte(csv), models.ImportFormatCSV)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("price"))
}

func TestParseCSV_HeaderOnlyIsEmptyFile(t *testing.T) {
	_, err := Parse([]byte("Handle,Title,Price\n"), models.ImportFormatCSV)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("x"), models.ImportFormat("pdf"))
	assert.Error(t, err)
}

func TestFormatFromFilename(t *testing.T) {
	format, err := FormatFromFilename("catalog.csv")
	assert.NoError(t, err)
	assert.Equal(t, models.ImportFormatCSV, format)

	format, err = FormatFromFilename("Catalog.XLSX")
	assert.NoError(t, err)
	assert.Equal(t, models.ImportFormatXLSX, format)

	_, err = FormatFromFilename("catalog.pdf")
	assert.Error(t, err)
}

func TestParseXLSX_RoundTripsTheTemplate(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteXLSXTemplate(&buf))

	rows, err := Parse(buf.Bytes(), models.ImportFormatXLSX)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "oxford-shirt", rows[0].Get("handle"))
	assert.Equal(t, "DUDE-SHT-OXFRD-BLK-M", rows[0].Get("variant sku"))
	assert.Equal(t, "DUDE-SHT-OXFRD-BLK-L", rows[1].Get("variant sku"))
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 3, rows[1].Line)
}

func TestWriteCSVTemplate_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, WriteCSVTemplate(&buf))

	rows, err := Parse(buf.Bytes(), models.ImportFormatCSV)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "oxford-shirt", rows[0].Get("handle"))
	assert.Equal(t, "19.99", rows[1].Get("price"))
}
