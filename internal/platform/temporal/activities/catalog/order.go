package catalog

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

const (
	// ApplyOrderActivityName writes one sort key of a catalog swap.
	ApplyOrderActivityName = "catalog.activities.ApplyOrder"

	// Application error types that survive the workflow boundary.
	ErrTypeRecordNotFound   = "RecordNotFound"
	ErrTypePermissionDenied = "PermissionDenied"
	ErrTypeWriteFailed      = "SwapWriteFailed"
)

// ApplyOrderInput is a single sort-key write.
type ApplyOrderInput struct {
	Step     int
	ItemID   string
	ItemName string
	Order    int64
}

// Activities groups activities that operate on the catalog bounded context.
type Activities struct {
	repo catalogports.Repository
}

func NewActivities(repo catalogports.Repository) *Activities {
	return &Activities{repo: repo}
}

// ApplyOrder writes the sort key. Missing records and refused writes are not retried.
func (a *Activities) ApplyOrder(ctx context.Context, input ApplyOrderInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.repo == nil {
		logger.Error("apply order activity not initialized", "itemId", input.ItemID)
		return errors.New("apply order activity not initialized")
	}
	logger.Info("ApplyOrder activity started", "step", input.Step, "item", input.ItemName, "order", input.Order)
	if err := a.repo.UpdateOrder(ctx, input.ItemID, input.Order); err != nil {
		logger.Error("ApplyOrder activity failed", "step", input.Step, "item", input.ItemName, "error", err)
		switch {
		case errors.Is(err, docstore.ErrNotFound):
			return temporal.NewNonRetryableApplicationError("catalog item not found: "+input.ItemName, ErrTypeRecordNotFound, err)
		case errors.Is(err, docstore.ErrPermissionDenied):
			return temporal.NewNonRetryableApplicationError("order write refused", ErrTypePermissionDenied, err)
		}
		return err
	}
	logger.Info("ApplyOrder activity completed", "step", input.Step, "item", input.ItemName)
	return nil
}
