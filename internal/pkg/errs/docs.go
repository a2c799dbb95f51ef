// Package errs provides the error types shared by the marketplace core.
//
// Two families live here:
//   - value errors raised while constructing domain objects and commands
//     (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError) plus
//     lookup and persistence errors (ObjectNotFoundError, StaleObjectError);
//   - lifecycle errors raised by delivery transitions, dispatch and payment
//     reconciliation (InvalidStateError, CourierUnavailableError,
//     AlreadyTerminalError, NotificationDeliveryError, ReconciliationError).
//
// Every type pairs with a sentinel and its Unwrap method returns that
// sentinel, so callers classify errors with errors.Is and inspect details
// with errors.As:
//
//	var stateErr *errs.InvalidStateError
//	if errors.As(err, &stateErr) {
//	    log.Warn("rejected", "operation", stateErr.Operation, "state", stateErr.Current)
//	}
//	if errors.Is(err, errs.ErrAlreadyTerminal) { ... }
package errs
