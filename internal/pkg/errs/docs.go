// Package errs provides the error vocabulary shared by every layer of the
// marketplace order service.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed
//   - ValueIsOutOfRangeError: a value falls outside the accepted bounds
//   - ObjectNotFoundError: a lookup by identifier matched nothing
//   - InvalidAmountError: a price, fee or quantity is negative or non-finite
//   - WriteConflictError: an optimistic version check failed
//   - StorageUnavailableError: the database is temporarily out of reach
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so that errors.Is matches the sentinel
//
// The HTTP adapter classifies failures exclusively through errors.Is against
// these sentinels, so new failure kinds belong here rather than in the
// adapters.
package errs
