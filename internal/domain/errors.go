package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain errors so the transport layer can map them to
// HTTP status codes without inspecting error strings.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindInvalidState ErrorKind = "invalid_state"
	KindForbidden    ErrorKind = "forbidden"
	KindUnauthorized ErrorKind = "unauthorized"
)

// Error is the common error type for all domain-level failures.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError reports an invalid or missing input field.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Code: "VALIDATION_ERROR", Message: message}
}

// NewInvalidDateRangeError reports a stay range where checkOut is not after checkIn.
func NewInvalidDateRangeError(message string) *Error {
	return &Error{Kind: KindValidation, Code: "INVALID_DATE_RANGE", Message: message}
}

// NewNotFoundError reports that an entity does not exist.
func NewNotFoundError(entity, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %s not found", entity, id),
	}
}

// NewConflictError reports a state conflict such as a lost optimistic-lock race.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Code: "CONFLICT", Message: message}
}

// NewRoomUnavailableError reports that a room cannot take a new booking.
func NewRoomUnavailableError(roomNumber, status string) *Error {
	return &Error{
		Kind:    KindConflict,
		Code:    "ROOM_UNAVAILABLE",
		Message: fmt.Sprintf("room %s is not available (status: %s)", roomNumber, status),
	}
}

// NewInvalidTransitionError reports a lifecycle operation attempted from a
// state that does not allow it.
func NewInvalidTransitionError(from, to string) *Error {
	return &Error{
		Kind:    KindInvalidState,
		Code:    "INVALID_TRANSITION",
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// NewOverpaymentError reports a payment that would push paidAmount past totalAmount.
func NewOverpaymentError(balance int64) *Error {
	return &Error{
		Kind:    KindConflict,
		Code:    "OVERPAYMENT_REJECTED",
		Message: fmt.Sprintf("payment exceeds outstanding balance of %d", balance),
	}
}

// NewForbiddenError reports an operation the caller's role does not permit.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Code: "FORBIDDEN", Message: message}
}

// NewUnauthorizedError reports a missing or invalid credential.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// AsError unwraps err into a *Error if it is one.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsError(err)
	return ok && de.Kind == kind
}

// IsCode reports whether err is a domain error carrying the given code.
func IsCode(err error, code string) bool {
	de, ok := AsError(err)
	return ok && de.Code == code
}
