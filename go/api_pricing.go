package bakeryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogports "github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
	pricingmapper "github.com/Apurer/bakery-ledger/internal/domains/pricing/adapters/http/mapper"
	pricingdomain "github.com/Apurer/bakery-ledger/internal/domains/pricing/domain"
	pricingports "github.com/Apurer/bakery-ledger/internal/domains/pricing/ports"
)

// PricingAPI wires HTTP transport with the pricing service. The catalog supplies the
// bakery item names for price statistics.
type PricingAPI struct {
	prices  pricingports.Service
	catalog catalogports.Service
}

func NewPricingAPI(prices pricingports.Service, catalog catalogports.Service) PricingAPI {
	return PricingAPI{prices: prices, catalog: catalog}
}

type stagePricePayload struct {
	Price string `json:"price"`
}

type commitPayload struct {
	Edits []pricingmapper.PendingEdit `json:"edits"`
}

type beveragePayload struct {
	Name string `json:"name" binding:"required"`
}

// Get /v1/prices/items/:name
// Looks a price up by exact item name
func (api *PricingAPI) GetPrice(c *gin.Context) {
	name, ok := bindPathString(c, "name")
	if !ok {
		return
	}
	lookup, err := api.prices.GetPrice(c.Request.Context(), name)
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{Data: pricingmapper.FromLookup(name, lookup)})
}

// Delete /v1/prices/items/:name
// Removes the price record for an item
func (api *PricingAPI) DeletePrice(c *gin.Context) {
	name, ok := bindPathString(c, "name")
	if !ok {
		return
	}
	removed, err := api.prices.DeletePrice(c.Request.Context(), name)
	if err != nil {
		respondFault(c, err)
		return
	}
	notice := infof("No price was recorded for %s", name)
	if removed {
		notice = successf("Price for %s removed", name)
	}
	c.JSON(http.StatusOK, Envelope{Data: gin.H{"removed": removed}, Notice: notice})
}

// Put /v1/prices/pending/:scope/:name
// Stages a price edit without saving it
func (api *PricingAPI) StagePrice(c *gin.Context) {
	scope, ok := api.bindScope(c)
	if !ok {
		return
	}
	name, ok := bindPathString(c, "name")
	if !ok {
		return
	}
	var payload stagePricePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.prices.SetPendingEdit(c.Request.Context(), scope, name, payload.Price); err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{
		Data:   pricingmapper.FromEdits(api.prices.PendingEdits(c.Request.Context(), scope)),
		Notice: infof("Price change for %s staged", name),
	})
}

// Get /v1/prices/pending/:scope
// Lists staged edits for a scope
func (api *PricingAPI) ListPending(c *gin.Context) {
	scope, ok := api.bindScope(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, Envelope{Data: pricingmapper.FromEdits(api.prices.PendingEdits(c.Request.Context(), scope))})
}

// Post /v1/prices/pending/:scope/commit
// Saves every staged edit of a scope
func (api *PricingAPI) CommitPending(c *gin.Context) {
	scope, ok := api.bindScope(c)
	if !ok {
		return
	}
	result, err := api.prices.CommitPending(c.Request.Context(), scope)
	api.respondCommit(c, result, err)
}

// Post /v1/prices/commit
// Saves an explicit list of price edits
func (api *PricingAPI) CommitPrices(c *gin.Context) {
	var payload commitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	result, err := api.prices.CommitEdits(c.Request.Context(), pricingmapper.ToEdits(payload.Edits))
	api.respondCommit(c, result, err)
}

// Get /v1/prices/stats
// Counts priced bakery items and beverages
func (api *PricingAPI) GetPriceStats(c *gin.Context) {
	items, err := api.catalog.List(c.Request.Context())
	if err != nil {
		respondFault(c, err)
		return
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	stats, err := api.prices.Stats(c.Request.Context(), names)
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{Data: pricingmapper.FromStats(stats)})
}

// Get /v1/beverages
// Lists beverages, falling back to the default menu
func (api *PricingAPI) ListBeverages(c *gin.Context) {
	items, err := api.prices.ListBeverages(c.Request.Context())
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{Data: pricingmapper.FromBeverages(items)})
}

// Post /v1/beverages
// Adds a beverage dated today
func (api *PricingAPI) AddBeverage(c *gin.Context) {
	var payload beveragePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := api.prices.AddBeverage(c.Request.Context(), payload.Name)
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusCreated, Envelope{
		Data:   pricingmapper.FromBeverage(item),
		Notice: successf("%s added to beverages", item.ItemName),
	})
}

func (api *PricingAPI) bindScope(c *gin.Context) (pricingdomain.Scope, bool) {
	raw, ok := bindPathString(c, "scope")
	if !ok {
		return "", false
	}
	scope, err := pricingdomain.ParseScope(raw)
	if err != nil {
		respondBadRequest(c, err)
		return "", false
	}
	return scope, true
}

func (api *PricingAPI) respondCommit(c *gin.Context, result pricingdomain.CommitResult, err error) {
	if err != nil {
		if result.Attempted > 0 {
			respondProblemWith(c, err, "results", pricingmapper.FromCommitResult(result))
			return
		}
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{
		Data:   pricingmapper.FromCommitResult(result),
		Notice: successf("Saved %d price changes", result.Saved),
	})
}
