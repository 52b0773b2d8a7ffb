package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
)

type Code string

const (
	CodeInvalidRequest         Code = "InvalidRequest"
	CodeCapacityExceeded       Code = "CapacityExceeded"
	CodeStoreNotFound          Code = "StoreNotFound"
	CodeStoreNotApproved       Code = "StoreNotApproved"
	CodeNotFound               Code = "NotFound"
	CodeInvalidStateTransition Code = "InvalidStateTransition"
	CodeAlreadyCheckedIn       Code = "AlreadyCheckedIn"
	CodeAlreadyCheckedOut      Code = "AlreadyCheckedOut"
	CodeIdentityMismatch       Code = "IdentityMismatch"
	CodeInternal               Code = "Internal"
)

// Error is the business error returned by the core services.
// Two errors are equal for errors.Is when their codes match.
type Error struct {
	Code    Code   `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return e.Message + ": " + e.Details
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// HTTPStatus returns the status code the HTTP layer answers with.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeNotFound, CodeStoreNotFound:
		return http.StatusNotFound
	case CodeCapacityExceeded, CodeInvalidStateTransition, CodeAlreadyCheckedIn, CodeAlreadyCheckedOut:
		return http.StatusConflict
	case CodeStoreNotApproved:
		return http.StatusUnprocessableEntity
	case CodeIdentityMismatch:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func (e *Error) GRPCCode() codes.Code {
	switch e.Code {
	case CodeInvalidRequest:
		return codes.InvalidArgument
	case CodeNotFound, CodeStoreNotFound:
		return codes.NotFound
	case CodeCapacityExceeded:
		return codes.ResourceExhausted
	case CodeStoreNotApproved, CodeInvalidStateTransition:
		return codes.FailedPrecondition
	case CodeAlreadyCheckedIn, CodeAlreadyCheckedOut:
		return codes.AlreadyExists
	case CodeIdentityMismatch:
		return codes.PermissionDenied
	default:
		return codes.Internal
	}
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidRequest         = &Error{Code: CodeInvalidRequest, Message: "invalid request"}
	ErrCapacityExceeded       = &Error{Code: CodeCapacityExceeded, Message: "store capacity exceeded"}
	ErrStoreNotFound          = &Error{Code: CodeStoreNotFound, Message: "store not found"}
	ErrStoreNotApproved       = &Error{Code: CodeStoreNotApproved, Message: "store is not approved"}
	ErrNotFound               = &Error{Code: CodeNotFound, Message: "not found"}
	ErrInvalidStateTransition = &Error{Code: CodeInvalidStateTransition, Message: "invalid state transition"}
	ErrAlreadyCheckedIn       = &Error{Code: CodeAlreadyCheckedIn, Message: "reservation already checked in"}
	ErrAlreadyCheckedOut      = &Error{Code: CodeAlreadyCheckedOut, Message: "storage item already checked out"}
	ErrIdentityMismatch       = &Error{Code: CodeIdentityMismatch, Message: "identity verification failed"}
)

func New(code Code, message, details string) *Error {
	return &Error{Code: code, Message: message, Details: details}
}

func NewInvalidRequest(details string) *Error {
	return New(CodeInvalidRequest, "invalid request", details)
}

func NewCapacityExceeded(date, size string, committed, requested, capacity int) *Error {
	return New(CodeCapacityExceeded, "store capacity exceeded",
		fmt.Sprintf("date %s, size %s: committed %d + requested %d > capacity %d", date, size, committed, requested, capacity))
}

func NewStoreNotFound(storeID int64) *Error {
	return New(CodeStoreNotFound, "store not found", fmt.Sprintf("store id: %d", storeID))
}

func NewStoreNotApproved(storeID int64) *Error {
	return New(CodeStoreNotApproved, "store is not approved", fmt.Sprintf("store id: %d", storeID))
}

func NewNotFound(entity, key string) *Error {
	return New(CodeNotFound, entity+" not found", key)
}

func NewInvalidStateTransition(from, to string) *Error {
	return New(CodeInvalidStateTransition, "invalid state transition", fmt.Sprintf("%s -> %s", from, to))
}

func NewAlreadyCheckedIn(reservationNumber string) *Error {
	return New(CodeAlreadyCheckedIn, "reservation already checked in", reservationNumber)
}

func NewAlreadyCheckedOut(storageCode string) *Error {
	return New(CodeAlreadyCheckedOut, "storage item already checked out", storageCode)
}

// NewIdentityMismatch never says which field failed.
func NewIdentityMismatch() *Error {
	return New(CodeIdentityMismatch, "identity verification failed", "")
}

func NewInternal(message string, err error) *Error {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &Error{Code: CodeInternal, Message: message, Details: details, cause: err}
}

// From extracts the business error from err, wrapping anything else as Internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternal("internal error", err)
}
