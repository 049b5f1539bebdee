package sequences

import (
	"errors"
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	catalogdomain "github.com/Apurer/bakery-ledger/internal/domains/catalog/domain"
	catalogactivities "github.com/Apurer/bakery-ledger/internal/platform/temporal/activities/catalog"
)

// SwapFailure is attached to the error returned when a swap write fails.
type SwapFailure struct {
	Step    int
	Applied int
}

// RunSwapSequence applies the writes of a swap plan one activity at a time. Writes that
// completed before a failure are left in place.
func RunSwapSequence(ctx workflow.Context, plan catalogdomain.SwapPlan) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("swap sequence started", "target", plan.Target.Name, "neighbor", plan.Neighbor.Name)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}
	actCtx := workflow.WithActivityOptions(ctx, options)

	for i, step := range plan.Steps() {
		input := catalogactivities.ApplyOrderInput{
			Step:     i + 1,
			ItemID:   step.ItemID,
			ItemName: step.ItemName,
			Order:    step.Order,
		}
		if err := workflow.ExecuteActivity(actCtx, catalogactivities.ApplyOrderActivityName, input).Get(ctx, nil); err != nil {
			logger.Error("swap sequence write failed", "step", i+1, "item", step.ItemName, "error", err)
			return temporal.NewNonRetryableApplicationError(
				fmt.Sprintf("swap write %d of 3 failed", i+1),
				failureType(err),
				err,
				SwapFailure{Step: i + 1, Applied: i},
			)
		}
	}
	logger.Info("swap sequence completed", "target", plan.Target.Name)
	return nil
}

func failureType(err error) string {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() != "" {
		return appErr.Type()
	}
	return catalogactivities.ErrTypeWriteFailed
}
