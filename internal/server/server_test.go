package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flipledger/flipledger/internal/analytics"
	"github.com/flipledger/flipledger/internal/entity"
	"github.com/flipledger/flipledger/internal/export"
	"github.com/flipledger/flipledger/internal/extract"
	"github.com/flipledger/flipledger/internal/importer"
	"github.com/flipledger/flipledger/internal/repository"
)

type stubRecognizer struct {
	text string
}

func (s *stubRecognizer) Recognize(_ context.Context, _ io.Reader) (extract.Recognition, error) {
	return extract.Recognition{Text: s.text, Confidence: 0.9}, nil
}

func newTestRouter(t *testing.T, ocrText string) http.Handler {
	t.Helper()
	db, err := repository.Open(context.Background(), repository.Config{DSN: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(nil) })
	require.NoError(t, repository.EnsureSchema(context.Background(), db))

	lots := repository.NewLotRepository(db, nil)
	sales := repository.NewSaleRepository(db, lots, nil)
	an := analytics.NewService(lots, sales, nil)
	ex := export.NewService(lots, an, nil)
	scanner := extract.NewService(func() (extract.Recognizer, error) {
		return &stubRecognizer{text: ocrText}, nil
	}, nil, nil)

	srv := New(lots, sales, an, ex, scanner, importer.NewCSVImporter(nil), 0, nil)
	return srv.Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLotLifecycle(t *testing.T) {
	h := newTestRouter(t, "")

	rec := doJSON(t, h, http.MethodPost, "/v1/lots", `{"name": "Nike Dunk Low", "cost": 45.5, "quantity": 2, "purchased_at": "2026-02-10"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Lot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Nike Dunk Low", created.Name)
	assert.Equal(t, 2, created.Quantity)

	rec = doJSON(t, h, http.MethodGet, "/v1/lots/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPut, "/v1/lots/"+created.ID.String(), `{"name": "Nike Dunk Low Panda", "cost": 45.5, "quantity": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated entity.Lot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Nike Dunk Low Panda", updated.Name)
	assert.Equal(t, created.PurchasedAt, updated.PurchasedAt, "omitted purchase date keeps the stored one")

	rec = doJSON(t, h, http.MethodGet, "/v1/lots", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []entity.Lot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	rec = doJSON(t, h, http.MethodDelete, "/v1/lots/"+created.ID.String(), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/v1/lots/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLotValidation(t *testing.T) {
	h := newTestRouter(t, "")

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"cost": 5}`},
		{"negative cost", `{"name": "x", "cost": -1}`},
		{"bad date", `{"name": "x", "purchased_at": "02/10/2026"}`},
		{"malformed json", `{"name": `},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/v1/lots", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSaleEndpoints(t *testing.T) {
	h := newTestRouter(t, "")

	rec := doJSON(t, h, http.MethodPost, "/v1/lots", `{"name": "Flannel Shirt Lot", "cost": 30, "quantity": 3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var lot entity.Lot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lot))

	rec = doJSON(t, h, http.MethodPost, "/v1/lots/"+lot.ID.String()+"/sales",
		`{"price": 24.99, "fees": 3.50, "quantity": 1, "platform": "ebay", "sold_at": "2026-06-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var sale entity.Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sale))
	assert.Equal(t, lot.ID, sale.LotID)

	rec = doJSON(t, h, http.MethodGet, "/v1/lots/"+lot.ID.String()+"/sales", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []entity.Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	// selling against a lot that does not exist is a 404
	rec = doJSON(t, h, http.MethodPost, "/v1/lots/00000000-0000-0000-0000-000000000001/sales", `{"price": 5}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/v1/sales/"+sale.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProfitReportEndpoint(t *testing.T) {
	h := newTestRouter(t, "")

	rec := doJSON(t, h, http.MethodPost, "/v1/lots", `{"name": "Report Lot", "cost": 40, "quantity": 4}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var lot entity.Lot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lot))

	rec = doJSON(t, h, http.MethodPost, "/v1/lots/"+lot.ID.String()+"/sales",
		`{"price": 30, "fees": 4, "quantity": 2, "sold_at": "2026-05-12"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/v1/reports/profit?from=2026-05-01&to=2026-05-31&window=month", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var report analytics.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Buckets, 1)
	assert.InDelta(t, 30, report.Totals.Revenue, 1e-9)
	assert.InDelta(t, 20, report.Totals.CostBasis, 1e-9)
	assert.InDelta(t, 6, report.Totals.Net, 1e-9)

	rec = doJSON(t, h, http.MethodGet, "/v1/reports/profit?window=fortnight", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/v1/reports/profit?from=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportCSVEndpoint(t *testing.T) {
	h := newTestRouter(t, "")

	csv := "name,cost,quantity\nGoodwill Haul,18.00,5\n,9.99,1\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/import/csv", strings.NewReader(csv))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp importResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Imported)
	require.Len(t, resp.Warnings, 1)

	list := doJSON(t, h, http.MethodGet, "/v1/lots", "")
	var lots []entity.Lot
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &lots))
	require.Len(t, lots, 1)
	assert.Equal(t, "Goodwill Haul", lots[0].Name)
}

func TestImportJSONEndpoint(t *testing.T) {
	h := newTestRouter(t, "")

	body := `[{"name": "Vintage Tee", "cost": 6, "quantity": 2}]`
	req := httptest.NewRequest(http.MethodPost, "/v1/import/json", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	bad := httptest.NewRequest(http.MethodPost, "/v1/import/json", strings.NewReader(`[{"cost": 6}]`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractEndpoint(t *testing.T) {
	text := "Your Orders\nCole Haan Men's Grand Crosscourt Sneaker (M)\nTotal: $89.99\nQty: 2\n"
	h := newTestRouter(t, text)

	req := httptest.NewRequest(http.MethodPost, "/v1/extract", bytes.NewReader([]byte("fake image bytes")))
	req.Header.Set("Content-Type", "application/octet-stream")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var result extract.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Cole Haan Men's Grand Crosscourt Sneaker (M)", result.Name)
	assert.InDelta(t, 89.99, result.Cost, 1e-9)
	assert.Equal(t, 2, result.Quantity)
}

func TestExtractEndpointRejectsBadExtension(t *testing.T) {
	h := newTestRouter(t, "whatever")

	var buf bytes.Buffer
	mw := newMultipart(t, &buf, "receipt.exe")
	req := httptest.NewRequest(http.MethodPost, "/v1/extract", &buf)
	req.Header.Set("Content-Type", mw)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t, "")
	rec := doJSON(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func newMultipart(t *testing.T, buf *bytes.Buffer, filename string) (contentType string) {
	t.Helper()
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return w.FormDataContentType()
}
