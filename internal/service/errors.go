package service

import (
	"errors"

	"agriplan/internal/repository"
)

// Sentinel errors returned by the service layer. Handlers translate them into
// HTTP statuses with a {"detail": ...} body; the entry-window message is a
// contract with clients, which match it case-insensitively to flip their
// local window state.
var (
	ErrEntryWindowClosed = errors.New("entry window closed for this stage")
	ErrForbidden         = errors.New("you do not have permission to perform this action")
	ErrNotFound          = errors.New("resource not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError wraps ErrValidation with a field-specific message.
func ValidationError(msg string) error {
	return &detailError{sentinel: ErrValidation, detail: msg}
}

// ForbiddenError wraps ErrForbidden with a role-specific message.
func ForbiddenError(msg string) error {
	return &detailError{sentinel: ErrForbidden, detail: msg}
}

// TransitionError wraps ErrInvalidTransition with the concrete reason.
func TransitionError(msg string) error {
	return &detailError{sentinel: ErrInvalidTransition, detail: msg}
}

type detailError struct {
	sentinel error
	detail   string
}

func (e *detailError) Error() string { return e.detail }
func (e *detailError) Unwrap() error { return e.sentinel }

// notFoundErr maps the repository's no-rows sentinel to ErrNotFound and
// passes every other error through.
func notFoundErr(err error) error {
	if errors.Is(err, repository.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
