package bakeryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	router.NoRoute(respondRouteNotFound)
	return router
}

// DefaultHandleFunc is used for routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the catalog part of the API
	CatalogAPI CatalogAPI
	// Routes for the pricing part of the API
	PricingAPI PricingAPI
	// Routes for the summary part of the API
	SummaryAPI SummaryAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"ListItems",
			http.MethodGet,
			"/v1/catalog/items",
			handleFunctions.CatalogAPI.ListItems,
		},
		{
			"AddItem",
			http.MethodPost,
			"/v1/catalog/items",
			handleFunctions.CatalogAPI.AddItem,
		},
		{
			"RenameItem",
			http.MethodPatch,
			"/v1/catalog/items/:itemId",
			handleFunctions.CatalogAPI.RenameItem,
		},
		{
			"DeleteItem",
			http.MethodDelete,
			"/v1/catalog/items/:itemId",
			handleFunctions.CatalogAPI.DeleteItem,
		},
		{
			"MoveItemUp",
			http.MethodPost,
			"/v1/catalog/move-up/:name",
			handleFunctions.CatalogAPI.MoveItemUp,
		},
		{
			"MoveItemDown",
			http.MethodPost,
			"/v1/catalog/move-down/:name",
			handleFunctions.CatalogAPI.MoveItemDown,
		},
		{
			"GetPrice",
			http.MethodGet,
			"/v1/prices/items/:name",
			handleFunctions.PricingAPI.GetPrice,
		},
		{
			"DeletePrice",
			http.MethodDelete,
			"/v1/prices/items/:name",
			handleFunctions.PricingAPI.DeletePrice,
		},
		{
			"StagePrice",
			http.MethodPut,
			"/v1/prices/pending/:scope/:name",
			handleFunctions.PricingAPI.StagePrice,
		},
		{
			"ListPending",
			http.MethodGet,
			"/v1/prices/pending/:scope",
			handleFunctions.PricingAPI.ListPending,
		},
		{
			"CommitPending",
			http.MethodPost,
			"/v1/prices/pending/:scope/commit",
			handleFunctions.PricingAPI.CommitPending,
		},
		{
			"CommitPrices",
			http.MethodPost,
			"/v1/prices/commit",
			handleFunctions.PricingAPI.CommitPrices,
		},
		{
			"GetPriceStats",
			http.MethodGet,
			"/v1/prices/stats",
			handleFunctions.PricingAPI.GetPriceStats,
		},
		{
			"ListBeverages",
			http.MethodGet,
			"/v1/beverages",
			handleFunctions.PricingAPI.ListBeverages,
		},
		{
			"AddBeverage",
			http.MethodPost,
			"/v1/beverages",
			handleFunctions.PricingAPI.AddBeverage,
		},
		{
			"GetDailySummary",
			http.MethodGet,
			"/v1/summary/:date",
			handleFunctions.SummaryAPI.GetDailySummary,
		},
		{
			"GetLedger",
			http.MethodGet,
			"/v1/summary/:date/ledger",
			handleFunctions.SummaryAPI.GetLedger,
		},
		{
			"SaveLedger",
			http.MethodPut,
			"/v1/summary/:date/ledger",
			handleFunctions.SummaryAPI.SaveLedger,
		},
		{
			"ExportReport",
			http.MethodGet,
			"/v1/summary/:date/report.pdf",
			handleFunctions.SummaryAPI.ExportReport,
		},
	}
}
