// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrObjectNotFound) for errors.Is checks
//   - A struct type carrying error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() for classification
//
// The taxonomy maps directly onto the API behavior of the order lifecycle and
// wallet subsystems:
//   - ValueIsInvalid / ValueIsRequired / ValueIsOutOfRange: malformed input,
//     mismatched confirmation codes, malformed URLs; aborted with no mutation
//   - ObjectNotFound: unknown order, wallet, or withdrawal request
//   - Conflict: lost assignment races, duplicate pending withdrawals
//   - InsufficientFunds: withdrawal exceeding the ledger balance
//   - PreconditionFailed: wrong phase for a transition (idempotent replays of an
//     already applied transition succeed instead of returning this)
//   - DownstreamDegraded: routing-provider failures, absorbed by fallbacks and
//     never surfaced to API callers
package errs
