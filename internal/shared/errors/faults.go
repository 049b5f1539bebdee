package errors

import (
	"errors"

	"github.com/Apurer/bakery-ledger/internal/shared/faults"
)

// Severity values carried by problem and notice payloads.
const (
	SeveritySuccess = "success"
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// FaultMapper maps the shared fault taxonomy onto problem details. Every problem it produces
// carries a severity extension so clients can raise exactly one notification.
func FaultMapper(err error) (ProblemDetail, bool) {
	var problem ProblemDetail
	switch {
	case errors.Is(err, faults.ErrValidation):
		problem = ErrValidation.WithSeverity(SeverityWarning)
	case errors.Is(err, faults.ErrRecordNotFound):
		problem = ErrNotFound.WithSeverity(SeverityError)
	case errors.Is(err, faults.ErrPermissionDenied):
		problem = ErrForbidden.WithSeverity(SeverityError)
	case errors.Is(err, faults.ErrStoreUnavailable):
		problem = ErrUnavailable.WithSeverity(SeverityError)
	default:
		return ProblemDetail{}, false
	}
	return problem.WithDetail(faults.Message(err)), true
}
