package postgres

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/bakery-ledger/internal/platform/docstore"
)

const (
	sqlStateInsufficientPrivilege = "42501"
	sqlClassConnectionException   = "08"
	sqlClassOperatorIntervention  = "57"
	sqlClassInsufficientResources = "53"
)

// translate maps driver and GORM errors onto the docstore error kinds. Both lib/pq and pgx
// errors are recognised since either driver can sit under GORM.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return docstore.ErrNotFound
	}
	if code, ok := sqlState(err); ok {
		switch {
		case code == sqlStateInsufficientPrivilege:
			return fmt.Errorf("%w: %w", docstore.ErrPermissionDenied, err)
		case strings.HasPrefix(code, sqlClassConnectionException),
			strings.HasPrefix(code, sqlClassOperatorIntervention),
			strings.HasPrefix(code, sqlClassInsufficientResources):
			return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
		}
		return err
	}
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", docstore.ErrUnavailable, err)
	}
	return err
}

func sqlState(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}
