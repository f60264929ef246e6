// Package errs provides standardized error types for the rotation queue service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, enabling errors.Is classification
//
// This keeps error handling uniform across the domain model, the command
// handlers, and the persistence adapters.
package errs
