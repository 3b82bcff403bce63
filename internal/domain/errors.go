package domain

import "errors"

// ErrorKind is the stable, machine-readable class of a domain error.
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindUnavailable     ErrorKind = "unavailable"
	KindNotFound        ErrorKind = "not_found"
	KindForbidden       ErrorKind = "forbidden"
	KindInvalidState    ErrorKind = "invalid_state"
	KindConflict        ErrorKind = "conflict"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindInternal        ErrorKind = "internal"
)

// Error is a request-scoped failure reported back to the caller.
type Error struct {
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

// Is matches another *Error with the same kind and reason, so sentinels work
// with errors.Is even after the value has been copied or re-created.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Reason == t.Reason
}

func NewError(kind ErrorKind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

func ValidationError(reason string) *Error { return NewError(KindValidation, reason) }
func UnavailableError(reason string) *Error { return NewError(KindUnavailable, reason) }
func NotFoundError(reason string) *Error { return NewError(KindNotFound, reason) }
func AuthorizationError(reason string) *Error { return NewError(KindForbidden, reason) }
func InvalidStateError(reason string) *Error { return NewError(KindInvalidState, reason) }

// KindOf returns the kind of a domain error anywhere in err's chain, or
// KindInternal for anything else.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrDatesRequired           = ValidationError("dates required")
	ErrCheckInPast             = ValidationError("check-in in past")
	ErrCheckOutNotAfterCheckIn = ValidationError("checkout before or equal to checkin")
	ErrInvalidGuestCount       = ValidationError("invalid guest count")
	ErrExceedsCapacity         = ValidationError("exceeds capacity")
	ErrRoomUnavailable         = UnavailableError("room not available for dates")

	ErrBookingNotFound     = NotFoundError("booking not found")
	ErrRoomNotFound        = NotFoundError("room not found")
	ErrHotelNotFound       = NotFoundError("hotel not found")
	ErrNotBookingOwner     = AuthorizationError("booking belongs to another user")
	ErrBookingNotConfirmed = InvalidStateError("only confirmed bookings can be cancelled")

	ErrEmailTaken         = NewError(KindConflict, "email already registered")
	ErrInvalidCredentials = NewError(KindUnauthenticated, "invalid credentials")
)
