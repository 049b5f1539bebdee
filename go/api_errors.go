package bakeryserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/bakery-ledger/internal/shared/errors"
)

var problems = apierrors.NewChainedResponder("", apierrors.FaultMapper, internalMapper)

// internalMapper catches anything outside the fault taxonomy so clients still get a severity.
func internalMapper(err error) (apierrors.ProblemDetail, bool) {
	var problem apierrors.ProblemDetail
	if errors.As(err, &problem) {
		return problem, true
	}
	return apierrors.ErrInternal.
		WithDetail("Something went wrong. Please try again.").
		WithSeverity(apierrors.SeverityError), true
}

// respondFault writes err as a problem document.
func respondFault(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	problems.RespondError(c, err)
}

// respondBadRequest reports a malformed request.
func respondBadRequest(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	problems.Respond(c, apierrors.ErrBadRequest.
		WithDetail(err.Error()).
		WithSeverity(apierrors.SeverityWarning))
}

// respondProblemWith writes err as a problem document carrying an extra extension.
func respondProblemWith(c *gin.Context, err error, key string, value any) {
	problem, ok := apierrors.FaultMapper(err)
	if !ok {
		problem, _ = internalMapper(err)
	}
	_ = c.Error(err)
	problems.Respond(c, problem.WithExtension(key, value))
}

// respondRouteNotFound reports a path no route matches, for example an item name with an encoded '/'.
func respondRouteNotFound(c *gin.Context) {
	problems.Respond(c, apierrors.ErrNotFound.
		WithDetail(fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path)).
		WithSeverity(apierrors.SeverityError))
}
