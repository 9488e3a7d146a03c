package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabanas/quote-service/internal/middleware"
	"github.com/cabanas/quote-service/internal/quote"
	"github.com/cabanas/quote-service/internal/spreadsheet"
	"github.com/cabanas/quote-service/internal/storage"
	"github.com/cabanas/quote-service/internal/tariff"
)

const testAdminKey = "test-admin-key"

type failingStorage struct {
	storage.Storage
}

func (failingStorage) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func setupRouter(t *testing.T, backend storage.Storage) (*gin.Engine, *storage.OverrideStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewOverrideStore(backend)
	h := New(store, nil, zerolog.Nop())

	r := gin.New()
	h.RegisterRoutes(r, middleware.AdminAuthMiddleware(testAdminKey))
	return r, store
}

func doRequest(r http.Handler, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminHeaders() map[string]string {
	return map[string]string{middleware.AdminKeyHeader: testAdminKey}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r, _ := setupRouter(t, storage.NewMemoryStorage())
		w := doRequest(r, http.MethodGet, "/health", nil, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := decode[HealthResponse](t, w)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "ok", resp.Storage)
		assert.Equal(t, "not configured", resp.Database)
	})

	t.Run("storage down", func(t *testing.T) {
		r, _ := setupRouter(t, failingStorage{storage.NewMemoryStorage()})
		w := doRequest(r, http.MethodGet, "/health", nil, nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decode[HealthResponse](t, w)
		assert.Equal(t, "unavailable", resp.Storage)
	})
}

func TestListSeasons(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStorage())
	w := doRequest(r, http.MethodGet, "/api/v1/seasons", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[ListSeasonsResponse](t, w)
	require.Len(t, resp.Seasons, 2)
	assert.Equal(t, tariff.SeasonSummer, resp.Seasons[0].Season)
	assert.Equal(t, "Verano", resp.Seasons[0].Label)
	assert.Len(t, resp.Seasons[0].Installments, 3)
	assert.Equal(t, tariff.SeasonSpring, resp.Seasons[1].Season)
	assert.Len(t, resp.Seasons[1].Installments, 2)
}

func TestGetTariffs(t *testing.T) {
	r, store := setupRouter(t, storage.NewMemoryStorage())

	w := doRequest(r, http.MethodGet, "/api/v1/seasons/summer/tariffs", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[TariffsResponse](t, w)
	assert.Equal(t, tariff.Builtin(tariff.SeasonSummer), resp.Table)
	assert.False(t, resp.Overridden)
	assert.NotEmpty(t, resp.DiscountMenu)

	_, err := store.SetSeason(context.Background(), tariff.SeasonSpring, &tariff.Override{LongStayDiscounts: []tariff.LongStayDiscount{}})
	require.NoError(t, err)

	w = doRequest(r, http.MethodGet, "/api/v1/seasons/SPRING/tariffs", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode[TariffsResponse](t, w)
	assert.True(t, resp.Overridden)
	assert.Empty(t, resp.Table.LongStayDiscounts)
	assert.Equal(t, tariff.Builtin(tariff.SeasonSpring).PeopleBands, resp.Table.PeopleBands)

	w = doRequest(r, http.MethodGet, "/api/v1/seasons/winter/tariffs", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSuggestion(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStorage())

	w := doRequest(r, http.MethodGet, "/api/v1/seasons/spring/suggestion?people=3&nights=5", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	s := decode[quote.Suggestion](t, w)
	assert.Equal(t, 4, s.BandPeople)
	assert.Equal(t, int64(7_500_000), s.PricePerNightCents)
	assert.Equal(t, "75.000", s.PriceText)
	assert.Equal(t, 10, s.StayDiscountPercent)
	assert.True(t, s.AutoApplyDiscount)

	w = doRequest(r, http.MethodGet, "/api/v1/seasons/summer/suggestion", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	s = decode[quote.Suggestion](t, w)
	assert.Zero(t, s.PricePerNightCents)
	assert.False(t, s.HasStayDiscount)
}

func TestGetNights(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStorage())

	tests := []struct {
		query string
		want  int
	}{
		{"from=15/12/2024&to=18/12/2024", 3},
		{"from=18/12/2024&to=15/12/2024", 0},
		{"from=bad&to=18/12/2024", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/api/v1/nights?"+tt.query, nil, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, decode[NightsResponse](t, w).Nights)
		})
	}
}

func TestCreateQuote(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStorage())

	t.Run("summer with explicit price", func(t *testing.T) {
		body := `{"people":"4","nights":"3","pricePerNight":"150.000","season":"summer"}`
		w := doRequest(r, http.MethodPost, "/api/v1/quotes", []byte(body), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[QuoteResponse](t, w)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, int64(45_000_000), resp.Result.TotalOriginalCents)
		assert.Equal(t, int64(45_000_000), resp.Result.TotalWithDiscountCents)
		assert.Equal(t, int64(9_000_000), resp.Result.DepositCents)
		assert.Equal(t, int64(13_500_000), resp.Result.SecondPaymentCents)
		assert.Equal(t, int64(22_500_000), resp.Result.BalanceCents)
		assert.Contains(t, resp.Summary, "✅ *Total $450.000*")
		assert.NotContains(t, resp.Summary, "📅")
		assert.Len(t, resp.Display.Installments, 3)
	})

	t.Run("spring uses table price and long stay discount", func(t *testing.T) {
		body := `{"people":"2","nights":"5","season":"spring"}`
		w := doRequest(r, http.MethodPost, "/api/v1/quotes", []byte(body), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[QuoteResponse](t, w)
		assert.Equal(t, int64(5_500_000), resp.Result.PricePerNightCents)
		assert.Equal(t, int64(27_500_000), resp.Result.TotalOriginalCents)
		assert.InDelta(t, 0.1, resp.Result.Discount, 1e-9)
		assert.Equal(t, int64(24_750_000), resp.Result.TotalWithDiscountCents)
		assert.Equal(t, int64(12_375_000), resp.Result.DepositCents)
		assert.Equal(t, int64(12_375_000), resp.Result.BalanceCents)
		assert.Equal(t, "55.000", resp.Form.Price)
		assert.Equal(t, "10", resp.Display.DiscountPercent)
		assert.Contains(t, resp.Summary, "🌸 Su Presupuesto")
	})

	t.Run("dates derive nights and default to summer", func(t *testing.T) {
		body := `{"people":"2","dateFrom":"15/12/2024","dateTo":"18/12/2024","pricePerNight":"100.000"}`
		w := doRequest(r, http.MethodPost, "/api/v1/quotes", []byte(body), nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[QuoteResponse](t, w)
		assert.Equal(t, tariff.SeasonSummer, resp.Result.Season)
		assert.Equal(t, 3, resp.Result.Nights)
		assert.Equal(t, int64(30_000_000), resp.Result.TotalOriginalCents)
		assert.Contains(t, resp.Summary, "📅 Del 15/12/2024 al 18/12/2024")
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"no people", `{"people":"0","nights":"3","pricePerNight":"100"}`, http.StatusUnprocessableEntity},
		{"no nights", `{"people":"2","pricePerNight":"100"}`, http.StatusUnprocessableEntity},
		{"unknown season", `{"people":"2","nights":"3","season":"winter"}`, http.StatusBadRequest},
		{"malformed body", `{"people":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/v1/quotes", []byte(tt.body), nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
			assert.NotEmpty(t, decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestAdminRequiresKey(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStorage())

	w := doRequest(r, http.MethodGet, "/api/v1/admin/overrides", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/admin/overrides", nil, map[string]string{middleware.AdminKeyHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOverrideLifecycle(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStorage())

	w := doRequest(r, http.MethodGet, "/api/v1/admin/overrides", nil, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)
	empty := decode[OverridesResponse](t, w)
	assert.Nil(t, empty.Overrides.Summer)
	assert.Empty(t, empty.Checksum)

	w = doRequest(r, http.MethodPut, "/api/v1/admin/overrides/summer", []byte(`{"longStayDiscounts":[]}`), adminHeaders())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decode[SaveOverrideResponse](t, w)
	assert.Empty(t, saved.Table.LongStayDiscounts)
	assert.Equal(t, tariff.Builtin(tariff.SeasonSummer).PeopleBands, saved.Table.PeopleBands)
	assert.NotNil(t, saved.Warnings)
	assert.Equal(t, strconv.Quote(saved.Checksum), w.Header().Get("ETag"))

	w = doRequest(r, http.MethodGet, "/api/v1/admin/overrides", nil, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[OverridesResponse](t, w)
	require.NotNil(t, got.Overrides.Summer)
	assert.Nil(t, got.Overrides.Summer.PeopleBands)
	assert.NotNil(t, got.Overrides.Summer.LongStayDiscounts)
	assert.Equal(t, saved.Checksum, got.Checksum)

	// stale precondition
	headers := adminHeaders()
	headers["If-Match"] = `"stale"`
	w = doRequest(r, http.MethodPut, "/api/v1/admin/overrides/summer", []byte(`{}`), headers)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	headers["If-Match"] = strconv.Quote(got.Checksum)
	w = doRequest(r, http.MethodDelete, "/api/v1/admin/overrides/summer", nil, headers)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(r, http.MethodGet, "/api/v1/seasons/summer/tariffs", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[TariffsResponse](t, w).Overridden)
}

func TestAdminPutOverrideValidation(t *testing.T) {
	r, _ := setupRouter(t, storage.NewMemoryStorage())

	body := `{"peopleBands":[{"people":0,"pricePerNightCents":100}]}`
	w := doRequest(r, http.MethodPut, "/api/v1/admin/overrides/spring", []byte(body), adminHeaders())
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode[ErrorResponse](t, w)
	assert.Contains(t, resp.Fields, "spring.peopleBands[0]")

	w = doRequest(r, http.MethodPut, "/api/v1/admin/overrides/autumn", []byte(`{}`), adminHeaders())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = `{"longStayDiscounts":[{"minNights":3,"discountPercent":20},{"minNights":7,"discountPercent":10}]}`
	w = doRequest(r, http.MethodPut, "/api/v1/admin/overrides/spring", []byte(body), adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)
	saved := decode[SaveOverrideResponse](t, w)
	require.Len(t, saved.Warnings, 1)
	assert.Equal(t, "spring.longStayDiscounts", saved.Warnings[0].Field)
}

func uploadWorkbook(t *testing.T, r http.Handler, path string, content []byte, ifMatch ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "tarifas.xlsx")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.AdminKeyHeader, testAdminKey)
	for _, v := range ifMatch {
		req.Header.Set("If-Match", v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminExportImport(t *testing.T) {
	r, store := setupRouter(t, storage.NewMemoryStorage())

	w := doRequest(r, http.MethodGet, "/api/v1/admin/tariffs/spring/export", nil, adminHeaders())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(w.Header().Get("Content-Disposition"), "tarifas-spring.xlsx"))

	imported, err := spreadsheet.Import(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, tariff.Builtin(tariff.SeasonSpring).PeopleBands, imported.Override.PeopleBands)

	edited := tariff.Builtin(tariff.SeasonSpring)
	edited.PeopleBands[0].PricePerNightCents = 6_000_000
	content, err := spreadsheet.Export(edited)
	require.NoError(t, err)

	w = uploadWorkbook(t, r, "/api/v1/admin/tariffs/spring/import?dryRun=true", content)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dry := decode[ImportResponse](t, w)
	assert.True(t, dry.DryRun)
	assert.Equal(t, int64(6_000_000), dry.Table.PeopleBands[0].PricePerNightCents)

	o, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, o.Spring)

	w = uploadWorkbook(t, r, "/api/v1/admin/tariffs/spring/import", content, `"stale"`)
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	w = uploadWorkbook(t, r, "/api/v1/admin/tariffs/spring/import", content)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[ImportResponse](t, w)
	assert.False(t, res.DryRun)
	assert.Empty(t, res.RowErrors)
	assert.NotEmpty(t, res.Checksum)

	table, err := store.Active(context.Background(), tariff.SeasonSpring)
	require.NoError(t, err)
	assert.Equal(t, int64(6_000_000), table.PeopleBands[0].PricePerNightCents)

	w = uploadWorkbook(t, r, "/api/v1/admin/tariffs/spring/import", []byte("garbage"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
