package bakeryserver

import (
	"fmt"

	apierrors "github.com/Apurer/bakery-ledger/internal/shared/errors"
)

// Notice is the single user-facing message attached to a successful mutation.
type Notice struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Envelope wraps every successful response body.
type Envelope struct {
	Data   any     `json:"data,omitempty"`
	Notice *Notice `json:"notice,omitempty"`
}

func noticef(severity, format string, args ...any) *Notice {
	return &Notice{Severity: severity, Message: fmt.Sprintf(format, args...)}
}

func successf(format string, args ...any) *Notice {
	return noticef(apierrors.SeveritySuccess, format, args...)
}

func infof(format string, args ...any) *Notice {
	return noticef(apierrors.SeverityInfo, format, args...)
}

func warningf(format string, args ...any) *Notice {
	return noticef(apierrors.SeverityWarning, format, args...)
}
