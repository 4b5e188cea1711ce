package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrWriteConflict      = errors.New("write conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// sanitize flattens a value to a single line so that user supplied input
// cannot break log records built from error messages.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a lookup by identifier that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrObjectNotFound, e.ParamName, sanitize(e.ID))
	return withCause(msg, e.Cause)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed or semantically wrong input.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsOutOfRange, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory input.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidAmountError reports a monetary amount or quantity that is negative,
// non-finite or otherwise unusable in a price calculation.
type InvalidAmountError struct {
	ParamName string
	Value     any
	Cause     error
}

func NewInvalidAmountError(paramName string, value any) *InvalidAmountError {
	return &InvalidAmountError{ParamName: paramName, Value: value}
}

func NewInvalidAmountErrorWithCause(paramName string, value any, cause error) *InvalidAmountError {
	return &InvalidAmountError{ParamName: paramName, Value: value, Cause: cause}
}

func (e *InvalidAmountError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s", ErrInvalidAmount, e.ParamName, sanitize(e.Value))
	return withCause(msg, e.Cause)
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

// WriteConflictError reports that a concurrent writer changed the object
// between read and write. The caller may reload and retry.
type WriteConflictError struct {
	Entity string
	ID     any
	Cause  error
}

func NewWriteConflictError(entity string, id any) *WriteConflictError {
	return &WriteConflictError{Entity: entity, ID: id}
}

func NewWriteConflictErrorWithCause(entity string, id any, cause error) *WriteConflictError {
	return &WriteConflictError{Entity: entity, ID: id, Cause: cause}
}

func (e *WriteConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrWriteConflict, e.Entity, sanitize(e.ID))
	return withCause(msg, e.Cause)
}

func (e *WriteConflictError) Unwrap() error {
	return ErrWriteConflict
}

// StorageUnavailableError reports a storage failure that is expected to be
// transient: timeouts, refused connections, server shutdowns.
//
// Unlike the other error types it unwraps to both the sentinel and the
// cause, so errors.Is(err, context.DeadlineExceeded) keeps working.
type StorageUnavailableError struct {
	Op    string
	Cause error
}

func NewStorageUnavailableError(op string, cause error) *StorageUnavailableError {
	return &StorageUnavailableError{Op: op, Cause: cause}
}

func (e *StorageUnavailableError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrStorageUnavailable, e.Op), e.Cause)
}

func (e *StorageUnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrStorageUnavailable}
	}
	return []error{ErrStorageUnavailable, e.Cause}
}
