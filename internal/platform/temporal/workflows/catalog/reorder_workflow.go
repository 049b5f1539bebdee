package catalog

import (
	"go.temporal.io/sdk/workflow"

	catalogdomain "github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	"github.com/Apurer/bakery-ledger/internal/platform/temporal/sequences"
)

const (
	// ReorderWorkflowName is the public identifier for registering the workflow.
	ReorderWorkflowName = "catalog.workflows.Reorder"
	// ReorderTaskQueue is the queue consumed by the worker processing reorder workflows.
	ReorderTaskQueue = "CATALOG_REORDER"
)

// ReorderWorkflowInput carries the swap to apply.
type ReorderWorkflowInput struct {
	Plan    catalogdomain.SwapPlan
	TraceID string
}

// ReorderWorkflow exchanges the sort keys of two adjacent catalog items.
func ReorderWorkflow(ctx workflow.Context, input ReorderWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("ReorderWorkflow started", withTraceID(input.TraceID, "target", input.Plan.Target.Name)...)
	if err := sequences.RunSwapSequence(ctx, input.Plan); err != nil {
		logger.Error("ReorderWorkflow failed", withTraceID(input.TraceID, "target", input.Plan.Target.Name, "error", err)...)
		return err
	}
	logger.Info("ReorderWorkflow completed", withTraceID(input.TraceID, "target", input.Plan.Target.Name)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
