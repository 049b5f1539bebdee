package bakeryserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/bakery-ledger/internal/domains/catalog/adapters/http/mapper"
	catalogdomain "github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalog service.
type CatalogAPI struct {
	service catalogports.Service
}

func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

type itemNamePayload struct {
	Name string `json:"name" binding:"required"`
}

// Get /v1/catalog/items
// Lists the catalog in display order, optionally filtered by q
func (api *CatalogAPI) ListItems(c *gin.Context) {
	query, ok := bindQueryString(c, "q")
	if !ok {
		return
	}
	var (
		items []catalogdomain.Item
		err   error
	)
	if strings.TrimSpace(query) == "" {
		items, err = api.service.List(c.Request.Context())
	} else {
		items, err = api.service.Search(c.Request.Context(), query)
	}
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{Data: catalogmapper.FromDomainItems(items)})
}

// Post /v1/catalog/items
// Appends a new item at the end of the catalog
func (api *CatalogAPI) AddItem(c *gin.Context) {
	var payload itemNamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := api.service.AddItem(c.Request.Context(), payload.Name)
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusCreated, Envelope{
		Data:   catalogmapper.FromDomainItem(item),
		Notice: successf("%s added to the catalog", item.Name),
	})
}

// Patch /v1/catalog/items/:itemId
// Renames an item, carrying its price along
func (api *CatalogAPI) RenameItem(c *gin.Context) {
	id, ok := bindPathString(c, "itemId")
	if !ok {
		return
	}
	var payload itemNamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	item, err := api.service.RenameItem(c.Request.Context(), id, payload.Name)
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{
		Data:   catalogmapper.FromDomainItem(item),
		Notice: successf("Item renamed to %s", item.Name),
	})
}

// Delete /v1/catalog/items/:itemId
// Deletes an item and its price record
func (api *CatalogAPI) DeleteItem(c *gin.Context) {
	id, ok := bindPathString(c, "itemId")
	if !ok {
		return
	}
	result, err := api.service.DeleteItem(c.Request.Context(), id)
	if err != nil {
		respondFault(c, err)
		return
	}
	notice := successf("%s deleted", result.Item.Name)
	if result.PriceRemoved {
		notice = successf("%s and its price deleted", result.Item.Name)
	}
	c.JSON(http.StatusOK, Envelope{Data: catalogmapper.FromDomainItem(result.Item), Notice: notice})
}

// Post /v1/catalog/move-up/:name
// Swaps an item with its predecessor
func (api *CatalogAPI) MoveItemUp(c *gin.Context) {
	api.move(c, catalogdomain.Up)
}

// Post /v1/catalog/move-down/:name
// Swaps an item with its successor
func (api *CatalogAPI) MoveItemDown(c *gin.Context) {
	api.move(c, catalogdomain.Down)
}

func (api *CatalogAPI) move(c *gin.Context, dir catalogdomain.Direction) {
	name, ok := bindPathString(c, "name")
	if !ok {
		return
	}
	var (
		result catalogports.MoveResult
		err    error
	)
	if dir == catalogdomain.Up {
		result, err = api.service.MoveUp(c.Request.Context(), name)
	} else {
		result, err = api.service.MoveDown(c.Request.Context(), name)
	}
	if err != nil {
		respondFault(c, err)
		return
	}

	body := Envelope{Data: catalogmapper.FromMoveResult(result)}
	status := http.StatusOK
	switch result.Outcome {
	case catalogdomain.Moved:
		body.Notice = successf("%s moved %s", name, dir)
	case catalogdomain.AtBoundary:
		edge := "top"
		if dir == catalogdomain.Down {
			edge = "bottom"
		}
		body.Notice = infof("%s is already at the %s", name, edge)
	case catalogdomain.Busy:
		status = http.StatusConflict
		body.Notice = warningf("Another reorder is still in progress. Try again in a moment.")
	}
	c.JSON(status, body)
}
