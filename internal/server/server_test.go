package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldoc/fiscaldoc/internal/server"
)

const validReceipt = `{
	"company": {
		"email": "shop@example.com",
		"sno": "osn",
		"inn": "1234567890",
		"payment_address": "https://shop.example.com"
	},
	"items": [{"name": "widget", "price": 10.00, "quantity": 2.000}],
	"payments": [{"type": 1, "sum": 20.00}]
}`

const validCorrection = `{
	"company": {
		"email": "shop@example.com",
		"sno": "osn",
		"inn": "1234567890",
		"payment_address": "https://shop.example.com"
	},
	"correction_info": {"type": "self", "base_date": "23.05.2026", "base_number": "K-11"},
	"payments": [{"type": 0, "sum": 100.00}]
}`

func newTestServer() *server.Server {
	config := &server.Config{
		Address: ":8080",
		Debug:   true,
	}
	return server.NewServer(config)
}

func post(srv *server.Server, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestValidateReceiptEndpoint(t *testing.T) {
	srv := newTestServer()
	w := post(srv, "/api/v1/receipts/validate", validReceipt)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Valid)
	assert.Equal(t, "20.00", response.Total)
}

func TestValidateReceiptEndpoint_Invalid(t *testing.T) {
	srv := newTestServer()
	bad := `{"items": [{"name": "", "price": 1.00, "quantity": 1.000}], "payments": [{"type": 0, "sum": 1.00}]}`
	w := post(srv, "/api/v1/receipts/validate", bad)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Valid)
	require.NotEmpty(t, response.Errors)
}

func TestValidateReceiptEndpoint_EmptyBody(t *testing.T) {
	srv := newTestServer()
	w := post(srv, "/api/v1/receipts/validate", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateCorrectionEndpoint(t *testing.T) {
	srv := newTestServer()
	w := post(srv, "/api/v1/corrections/validate", validCorrection)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Valid)
}

func TestRenderReceiptEndpoint(t *testing.T) {
	srv := newTestServer()
	w := post(srv, "/api/v1/receipts/render", validReceipt)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	// Canonical output carries the recomputed total and fixed-point numbers
	assert.Contains(t, w.Body.String(), `"total":20.00`)
	assert.Contains(t, w.Body.String(), `"quantity":2.000`)
}

func TestRenderCorrectionEndpoint(t *testing.T) {
	srv := newTestServer()
	w := post(srv, "/api/v1/corrections/render", validCorrection)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"base_date":"23.05.2026"`)
	assert.NotContains(t, w.Body.String(), `"items"`)
}

func TestAutoEndpoints_DetectKind(t *testing.T) {
	srv := newTestServer()

	w := post(srv, "/api/v1/documents/validate", validCorrection)
	assert.Equal(t, http.StatusOK, w.Code)
	var response server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "correction", response.Kind)

	w = post(srv, "/api/v1/documents/validate", validReceipt)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "receipt", response.Kind)

	w = post(srv, "/api/v1/documents/validate", `{"company": {}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenderAutoEndpoint(t *testing.T) {
	srv := newTestServer()
	w := post(srv, "/api/v1/documents/render", validReceipt)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":20.00`)
}
