package services

import (
	"errors"
	"strings"
)

// Sentinel errors for workflow outcomes. Handlers map these onto the
// HTTP error taxonomy; everything else becomes a 500.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrDuplicate  = errors.New("duplicate")
	ErrValidation = errors.New("validation failed")
)

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation. Uniqueness invariants (one active enrollment per pair, one
// review per triple) are enforced by the database so they hold under
// concurrent writers, and the violation is translated to a conflict.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// AuditMeta carries per-request correlation data into audit entries.
type AuditMeta struct {
	RequestID string
	IPAddress string
	UserAgent string
}
