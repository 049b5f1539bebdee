package bakeryserver

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	summarymapper "github.com/Apurer/bakery-ledger/internal/domains/summary/adapters/http/mapper"
	summarydomain "github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	summaryports "github.com/Apurer/bakery-ledger/internal/domains/summary/ports"
)

// SummaryAPI wires HTTP transport with the daily summary service.
type SummaryAPI struct {
	service summaryports.Service
	report  summaryports.ReportExporter
}

// NewSummaryAPI builds the API. report supplies the download name and media type of
// exported reports.
func NewSummaryAPI(service summaryports.Service, report summaryports.ReportExporter) SummaryAPI {
	return SummaryAPI{service: service, report: report}
}

// Get /v1/summary/:date
// Aggregates the day's inventory and beverages and reconciles the cash drawer
func (api *SummaryAPI) GetDailySummary(c *gin.Context) {
	date, ok := bindPathDate(c, "date")
	if !ok {
		return
	}
	summary, err := api.service.DailySummary(c.Request.Context(), date)
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{Data: summarymapper.FromDailySummary(summary)})
}

// Get /v1/summary/:date/ledger
// Returns the cash ledger entries for a day
func (api *SummaryAPI) GetLedger(c *gin.Context) {
	date, ok := bindPathDate(c, "date")
	if !ok {
		return
	}
	ledger, err := api.service.Ledger(c.Request.Context(), date)
	if err != nil {
		respondFault(c, err)
		return
	}
	c.JSON(http.StatusOK, Envelope{Data: summarymapper.FromDomainLedger(ledger)})
}

// Put /v1/summary/:date/ledger
// Saves the cash ledger entries for a day
func (api *SummaryAPI) SaveLedger(c *gin.Context) {
	date, ok := bindPathDate(c, "date")
	if !ok {
		return
	}
	var payload summarymapper.CashLedger
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.SaveLedger(c.Request.Context(), date, summarymapper.ToDomainLedger(payload))
	if err != nil {
		respondFault(c, err)
		return
	}
	rec := saved.Reconcile()
	c.JSON(http.StatusOK, Envelope{
		Data: gin.H{
			"ledger": summarymapper.FromDomainLedger(saved),
			"cash":   summarymapper.FromReconciliation(rec),
		},
		Notice: ledgerNotice(rec),
	})
}

// Get /v1/summary/:date/report.pdf
// Downloads the day's summary report
func (api *SummaryAPI) ExportReport(c *gin.Context) {
	date, ok := bindPathDate(c, "date")
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := api.service.ExportReport(c.Request.Context(), date, &buf); err != nil {
		respondFault(c, err)
		return
	}
	contentType := "application/octet-stream"
	fileName := "summary_" + date
	if api.report != nil {
		contentType = api.report.ContentType()
		fileName = api.report.FileName(date)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func ledgerNotice(rec summarydomain.CashReconciliation) *Notice {
	switch rec.Balance() {
	case summarydomain.BalanceSurplus:
		return warningf("Cash ledger saved. Drawer is over by %s", rec.Difference.StringFixed(2))
	case summarydomain.BalanceDeficit:
		return warningf("Cash ledger saved. Drawer is short by %s", rec.Difference.Abs().StringFixed(2))
	default:
		return successf("Cash ledger saved. Drawer is balanced")
	}
}
