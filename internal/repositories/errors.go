package repositories

import "errors"

// Sentinel errors raised by the repository layer. Handlers translate these
// to HTTP statuses in exactly one place; repositories never see HTTP.
var (
	ErrNotFound             = errors.New("record not found")
	ErrTargetNotFound       = errors.New("target not found")
	ErrParentNotFound       = errors.New("parent comment not found")
	ErrParentTargetMismatch = errors.New("parent comment belongs to a different target")
	ErrDuplicate            = errors.New("duplicate record")
	ErrForbidden            = errors.New("operation not allowed for this user")
)
