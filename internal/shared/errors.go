package shared

import "errors"

// CSRF failures. The middleware answers both with 403.
var (
	ErrCSRFTokenMissing  = errors.New("shared: csrf token missing")
	ErrCSRFTokenMismatch = errors.New("shared: csrf token mismatch")
)
