//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	pacttest "github.com/Apurer/bakery-ledger/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type notice struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type catalogItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int64  `json:"order"`
}

type moveResponse struct {
	Data struct {
		Outcome string        `json:"outcome"`
		Items   []catalogItem `json:"items"`
	} `json:"data"`
	Notice *notice `json:"notice"`
}

type priceResponse struct {
	Data struct {
		ItemName string  `json:"itemName"`
		Price    *string `json:"price"`
	} `json:"data"`
}

type summaryResponse struct {
	Data struct {
		Date string `json:"date"`
		Cash struct {
			IsBalanced bool   `json:"isBalanced"`
			Balance    string `json:"balance"`
		} `json:"cash"`
		Ledger struct {
			CashierName string `json:"cashierName"`
		} `json:"ledger"`
	} `json:"data"`
}

type problemDetail struct {
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail"`
	Extensions map[string]any `json:"extensions"`
}

type apiError struct {
	status   int
	title    string
	severity string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d, severity %s)", e.title, e.status, e.severity)
}

func TestBakeryCounterContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	itemMatcher := func(name string) matchers.Map {
		return matchers.Map{
			"id":    matchers.Like("3f0c9a52-6f1f-4d0e-9c55-1c2d3e4f5a6b"),
			"name":  matchers.S(name),
			"order": matchers.Like(1),
		}
	}

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request to move B down").
		WithRequest("POST", "/v1/catalog/move-down/B").
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"data": matchers.Map{
					"outcome": matchers.S("moved"),
					"items": []any{
						itemMatcher("A"),
						itemMatcher("C"),
						itemMatcher("B"),
					},
				},
				"notice": matchers.Map{
					"severity": matchers.S("success"),
					"message":  matchers.Like("B moved down"),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogBaseline).
		UponReceiving("a request to move an unknown item").
		WithRequest("POST", "/v1/catalog/move-up/"+pacttest.MissingItem).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
				"extensions": matchers.Map{
					"severity": matchers.S("error"),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateBunPriced).
		UponReceiving("a request for the price of Bun").
		WithRequest("GET", "/v1/prices/items/"+pacttest.PricedItem).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"data": matchers.Map{
					"itemName": matchers.S(pacttest.PricedItem),
					"price":    matchers.Term(pacttest.PricedAmount, `^\d+(\.\d+)?$`),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateLedgerSaved).
		UponReceiving("a request for the daily summary").
		WithRequest("GET", "/v1/summary/"+pacttest.SummaryDate).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"data": matchers.Map{
					"date": matchers.S(pacttest.SummaryDate),
					"cash": matchers.Map{
						"isBalanced": matchers.Like(true),
						"balance":    matchers.Term("perfect", "perfect|surplus|deficit"),
					},
					"ledger": matchers.Map{
						"cashierName": matchers.Like(pacttest.CashierName),
					},
				},
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newCounterClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var moved moveResponse
		if err := client.do(ctx, http.MethodPost, "/v1/catalog/move-down/B", &moved); err != nil {
			return fmt.Errorf("move down: %w", err)
		}
		if moved.Data.Outcome != "moved" || len(moved.Data.Items) != 3 || moved.Data.Items[2].Name != "B" {
			return fmt.Errorf("unexpected move result %+v", moved.Data)
		}
		if moved.Notice == nil || moved.Notice.Severity != "success" {
			return fmt.Errorf("expected a success notice, got %+v", moved.Notice)
		}

		err := client.do(ctx, http.MethodPost, "/v1/catalog/move-up/"+pacttest.MissingItem, nil)
		apiErr, ok := err.(apiError)
		if !ok || apiErr.status != http.StatusNotFound || apiErr.severity != "error" {
			return fmt.Errorf("expected not found problem, got %v", err)
		}

		var price priceResponse
		if err := client.do(ctx, http.MethodGet, "/v1/prices/items/"+url.PathEscape(pacttest.PricedItem), &price); err != nil {
			return fmt.Errorf("get price: %w", err)
		}
		if price.Data.Price == nil {
			return fmt.Errorf("expected a price for %s", pacttest.PricedItem)
		}

		var summary summaryResponse
		if err := client.do(ctx, http.MethodGet, "/v1/summary/"+pacttest.SummaryDate, &summary); err != nil {
			return fmt.Errorf("get summary: %w", err)
		}
		if !summary.Data.Cash.IsBalanced {
			return fmt.Errorf("expected balanced drawer, got %+v", summary.Data.Cash)
		}
		return nil
	})
	require.NoError(t, err)
}

type counterClient struct {
	baseURL    string
	httpClient *http.Client
}

func newCounterClient(config pactconsumer.MockServerConfig) *counterClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &counterClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *counterClient) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var problem problemDetail
		_ = json.NewDecoder(res.Body).Decode(&problem)
		severity, _ := problem.Extensions["severity"].(string)
		return apiError{status: res.StatusCode, title: problem.Title, severity: severity}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}
