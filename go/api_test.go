package bakeryserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdocstore "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/docstore"
	catalogpricing "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/pricing"
	catalogworkflows "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/workflows"
	catalogapp "github.com/Apurer/bakery-ledger/internal/domains/catalog/application"
	pricingdocstore "github.com/Apurer/bakery-ledger/internal/domains/pricing/adapters/docstore"
	pricingapp "github.com/Apurer/bakery-ledger/internal/domains/pricing/application"
	summarydocstore "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/docstore"
	ledgermemory "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/ledger/memory"
	summarypricing "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/pricing"
	summarypdf "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/report/pdf"
	summaryapp "github.com/Apurer/bakery-ledger/internal/domains/summary/application"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore/memory"
)

type testServer struct {
	store  *memory.Store
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	prices := pricingapp.NewService(
		pricingdocstore.NewPriceRepository(store),
		pricingdocstore.NewBeverageRepository(store),
	)
	catalogRepo := catalogdocstore.NewRepository(store)
	catalog := catalogapp.NewService(
		catalogRepo,
		catalogworkflows.NewInlineSwapExecutor(catalogRepo),
		catalogapp.WithSettleDelay(0),
		catalogapp.WithPriceCascade(catalogpricing.NewCascade(prices)),
	)
	exporter := summarypdf.NewExporter()
	summary := summaryapp.NewService(
		summarydocstore.NewRecordReader(store),
		summarypricing.NewSource(prices),
		ledgermemory.NewStore(),
		summaryapp.WithExporter(exporter),
	)

	router := NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		CatalogAPI: NewCatalogAPI(catalog),
		PricingAPI: NewPricingAPI(prices, catalog),
		SummaryAPI: NewSummaryAPI(summary, exporter),
	})
	return &testServer{store: store, router: router}
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Notice *Notice         `json:"notice"`
}

type problem struct {
	Status     int            `json:"status"`
	Title      string         `json:"title"`
	Detail     string         `json:"detail"`
	Extensions map[string]any `json:"extensions"`
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) problem {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var p problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p), rec.Body.String())
	return p
}

type itemBody struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int64  `json:"order"`
}

func (s *testServer) addItems(t *testing.T, names ...string) map[string]string {
	t.Helper()
	ids := make(map[string]string, len(names))
	for _, name := range names {
		rec := s.do(t, http.MethodPost, "/v1/catalog/items", map[string]string{"name": name})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var item itemBody
		env := decodeEnvelope(t, rec, &item)
		require.NotNil(t, env.Notice)
		assert.Equal(t, "success", env.Notice.Severity)
		ids[name] = item.ID
	}
	return ids
}

func itemNames(items []itemBody) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

func TestCatalogMoveDownSwapsNeighbours(t *testing.T) {
	s := newTestServer(t)
	s.addItems(t, "A", "B", "C")

	rec := s.do(t, http.MethodPost, "/v1/catalog/move-down/B", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		Outcome string     `json:"outcome"`
		Items   []itemBody `json:"items"`
	}
	env := decodeEnvelope(t, rec, &result)
	assert.Equal(t, "moved", result.Outcome)
	assert.Equal(t, []string{"A", "C", "B"}, itemNames(result.Items))
	assert.Equal(t, "success", env.Notice.Severity)

	rec = s.do(t, http.MethodGet, "/v1/catalog/items", nil)
	var items []itemBody
	decodeEnvelope(t, rec, &items)
	assert.Equal(t, []string{"A", "C", "B"}, itemNames(items))
}

func TestCatalogMoveAtBoundaryIsInfo(t *testing.T) {
	s := newTestServer(t)
	s.addItems(t, "A", "B")

	rec := s.do(t, http.MethodPost, "/v1/catalog/move-up/A", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, "info", env.Notice.Severity)
	assert.Contains(t, env.Notice.Message, "top")
}

func TestCatalogMoveUnknownItemIsNotFound(t *testing.T) {
	s := newTestServer(t)
	s.addItems(t, "A")

	rec := s.do(t, http.MethodPost, "/v1/catalog/move-down/Missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "error", p.Extensions["severity"])
}

func TestSlashInNameIsRejectedAndUnknownRoutesAreProblems(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/catalog/items", map[string]string{"name": "Fish/Egg Roll"})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "warning", decodeProblem(t, rec).Extensions["severity"])

	rec = s.do(t, http.MethodPost, "/v1/beverages", map[string]string{"name": "Iced/Tea"})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	for _, path := range []string{"/v1/catalog/move-up/Fish%2FEgg%20Roll", "/v1/prices/pending/bakery/Fish%2FEgg%20Roll"} {
		method := http.MethodPost
		if strings.Contains(path, "pending") {
			method = http.MethodPut
		}
		rec = s.do(t, method, path, map[string]string{"price": "10"})
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		p := decodeProblem(t, rec)
		assert.Equal(t, "error", p.Extensions["severity"], path)
		assert.Contains(t, p.Detail, "no route", path)
	}
}

func TestCatalogSearchAndDuplicateNames(t *testing.T) {
	s := newTestServer(t)
	s.addItems(t, "Fish Bun", "Tea Bun", "Roll")

	rec := s.do(t, http.MethodGet, "/v1/catalog/items?q=bun", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []itemBody
	decodeEnvelope(t, rec, &items)
	assert.Equal(t, []string{"Fish Bun", "Tea Bun"}, itemNames(items))

	rec = s.do(t, http.MethodPost, "/v1/catalog/items", map[string]string{"name": "Roll"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "warning", p.Extensions["severity"])
}

func TestPriceStageCommitAndCascadeDelete(t *testing.T) {
	s := newTestServer(t)
	ids := s.addItems(t, "Bun")

	rec := s.do(t, http.MethodPut, "/v1/prices/pending/bakery/Bun", map[string]string{"price": "45.50"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/v1/prices/pending/bakery/commit", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var commit struct {
		Attempted int `json:"attempted"`
		Saved     int `json:"saved"`
	}
	env := decodeEnvelope(t, rec, &commit)
	assert.Equal(t, 1, commit.Saved)
	assert.Equal(t, "success", env.Notice.Severity)

	rec = s.do(t, http.MethodGet, "/v1/prices/items/Bun", nil)
	var lookup struct {
		Price *string `json:"price"`
	}
	decodeEnvelope(t, rec, &lookup)
	require.NotNil(t, lookup.Price)
	assert.Equal(t, "45.5", *lookup.Price)

	rec = s.do(t, http.MethodGet, "/v1/prices/stats", nil)
	var stats struct {
		BakeryPriced int `json:"bakeryPriced"`
	}
	decodeEnvelope(t, rec, &stats)
	assert.Equal(t, 1, stats.BakeryPriced)

	rec = s.do(t, http.MethodDelete, "/v1/catalog/items/"+ids["Bun"], nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env = decodeEnvelope(t, rec, nil)
	assert.Contains(t, env.Notice.Message, "price")

	rec = s.do(t, http.MethodGet, "/v1/prices/items/Bun", nil)
	lookup.Price = nil
	decodeEnvelope(t, rec, &lookup)
	assert.Nil(t, lookup.Price)
}

func TestPriceValidationFailures(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/v1/prices/pending/bakery/Bun", map[string]string{"price": "abc"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "warning", decodeProblem(t, rec).Extensions["severity"])

	rec = s.do(t, http.MethodPost, "/v1/prices/pending/beverage/commit", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/v1/prices/pending/pastry", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriceCommitRejectsInvalidBatch(t *testing.T) {
	s := newTestServer(t)

	batches := [][]map[string]string{
		{{"itemName": "Bun", "price": "-5"}, {"itemName": "Cake", "price": "1"}},
		{{"itemName": "Cake", "price": "1"}, {"itemName": "Cake", "price": "2"}},
		{{"itemName": "", "price": "3"}},
	}
	for _, edits := range batches {
		rec := s.do(t, http.MethodPost, "/v1/prices/commit", map[string]any{"edits": edits})
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Equal(t, "warning", decodeProblem(t, rec).Extensions["severity"])
	}

	docs, err := s.store.QueryAll(context.Background(), docstore.CollectionPriceRecords)
	require.NoError(t, err)
	assert.Empty(t, docs)

	rec := s.do(t, http.MethodPost, "/v1/prices/commit", map[string]any{"edits": []map[string]string{
		{"itemName": "Bun", "price": "45"},
		{"itemName": "Cake", "price": "120"},
	}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	docs, err = s.store.QueryAll(context.Background(), docstore.CollectionPriceRecords)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestBeveragesDefaultAndAdd(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/v1/beverages", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var beverages []struct {
		ItemName string `json:"itemName"`
	}
	decodeEnvelope(t, rec, &beverages)
	require.Len(t, beverages, 2)

	rec = s.do(t, http.MethodPost, "/v1/beverages", map[string]string{"name": "Milo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestSummaryLedgerAndReport(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	day := time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC)
	_, err := s.store.Insert(ctx, docstore.CollectionInventoryRecords, docstore.Fields{
		"category": "Buns", "totalItems": 10, "soldItems": 6, "remainingItems": 4, "price": "50", "timestamp": day,
	})
	require.NoError(t, err)

	rec := s.do(t, http.MethodPut, "/v1/summary/2024-03-09/ledger", map[string]string{
		"cashierName": "Nimal", "initialCash": "1000", "totalSales": "300", "cashOut": "0", "finalCash": "1250",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, "warning", env.Notice.Severity)
	assert.Contains(t, env.Notice.Message, "short by 50.00")

	rec = s.do(t, http.MethodGet, "/v1/summary/2024-03-09", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary struct {
		Bakery struct {
			Categories int    `json:"categories"`
			SoldValue  string `json:"soldValue"`
		} `json:"bakery"`
		Cash struct {
			IsBalanced bool   `json:"isBalanced"`
			Balance    string `json:"balance"`
		} `json:"cash"`
		Ledger struct {
			CashierName string `json:"cashierName"`
		} `json:"ledger"`
	}
	decodeEnvelope(t, rec, &summary)
	assert.Equal(t, 1, summary.Bakery.Categories)
	assert.Equal(t, "300", summary.Bakery.SoldValue)
	assert.False(t, summary.Cash.IsBalanced)
	assert.Equal(t, "deficit", summary.Cash.Balance)
	assert.Equal(t, "Nimal", summary.Ledger.CashierName)

	rec = s.do(t, http.MethodGet, "/v1/summary/2024-03-09/report.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "mahajana_bakery_summary_2024-03-09.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestSummaryRejectsMalformedDate(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/v1/summary/yesterday", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "warning", decodeProblem(t, rec).Extensions["severity"])
}
