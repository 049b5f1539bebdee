package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/catalog/ports"
	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
	catalogactivities "github.com/Apurer/bakery-ledger/internal/platform/temporal/activities/catalog"
	"github.com/Apurer/bakery-ledger/internal/platform/temporal/sequences"
	catalogworkflows "github.com/Apurer/bakery-ledger/internal/platform/temporal/workflows/catalog"
)

var (
	_ ports.SwapExecutor = (*TemporalSwapExecutor)(nil)
	_ ports.SwapExecutor = (*InlineSwapExecutor)(nil)
)

// TemporalSwapExecutor runs swaps as a durable workflow on a Temporal cluster.
type TemporalSwapExecutor struct {
	client    client.Client
	taskQueue string
}

func NewTemporalSwapExecutor(c client.Client) *TemporalSwapExecutor {
	return &TemporalSwapExecutor{client: c, taskQueue: catalogworkflows.ReorderTaskQueue}
}

// Execute starts the reorder workflow and waits for it to finish.
func (e *TemporalSwapExecutor) Execute(ctx context.Context, plan domain.SwapPlan) error {
	if e == nil || e.client == nil {
		return errors.New("temporal swap executor not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("catalog-reorder-%s-%s", plan.Target.ID, traceComponent),
		TaskQueue: e.taskQueue,
	}
	run, err := e.client.ExecuteWorkflow(
		ctx,
		options,
		catalogworkflows.ReorderWorkflowName,
		catalogworkflows.ReorderWorkflowInput{Plan: plan, TraceID: traceComponent},
	)
	if err != nil {
		return fromStartError(err)
	}
	if err := run.Get(ctx, nil); err != nil {
		return fromWorkflowError(err)
	}
	return nil
}

// fromStartError classifies a frontend rejection of the workflow start.
func fromStartError(err error) error {
	var denied *serviceerror.PermissionDenied
	if errors.As(err, &denied) {
		return fmt.Errorf("%w: %w", docstore.ErrPermissionDenied, err)
	}
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &alreadyStarted) {
		return fmt.Errorf("%w: reorder already running as %s: %w", docstore.ErrUnavailable, alreadyStarted.RunId, err)
	}
	return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
}

// fromWorkflowError rebuilds the step error from the failure details the sequence attaches.
func fromWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
	}
	var failure sequences.SwapFailure
	if appErr.HasDetails() {
		_ = appErr.Details(&failure)
	}
	var kind error
	switch appErr.Type() {
	case catalogactivities.ErrTypeRecordNotFound:
		kind = domain.ErrItemNotFound
	case catalogactivities.ErrTypePermissionDenied:
		kind = docstore.ErrPermissionDenied
	default:
		kind = docstore.ErrUnavailable
	}
	wrapped := fmt.Errorf("%w: %w", kind, err)
	if failure.Step == 0 {
		return wrapped
	}
	return &domain.SwapStepError{Step: failure.Step, Applied: failure.Applied, Err: wrapped}
}

// InlineSwapExecutor writes through the repository directly, useful for tests or dev fallbacks.
type InlineSwapExecutor struct {
	repo ports.Repository
}

func NewInlineSwapExecutor(repo ports.Repository) *InlineSwapExecutor {
	return &InlineSwapExecutor{repo: repo}
}

func (e *InlineSwapExecutor) Execute(ctx context.Context, plan domain.SwapPlan) error {
	if e == nil || e.repo == nil {
		return errors.New("inline swap executor not configured")
	}
	for i, step := range plan.Steps() {
		if err := e.repo.UpdateOrder(ctx, step.ItemID, step.Order); err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				err = fmt.Errorf("%w: %s: %w", domain.ErrItemNotFound, step.ItemName, err)
			}
			return &domain.SwapStepError{Step: i + 1, Applied: i, Err: err}
		}
	}
	return nil
}

func workflowTraceComponent(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if spanCtx.IsValid() && spanCtx.TraceID().IsValid() {
		return spanCtx.TraceID().String()
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}
