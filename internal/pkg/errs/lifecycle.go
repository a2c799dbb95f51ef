package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState         = errors.New("invalid state")
	ErrCourierUnavailable   = errors.New("courier unavailable")
	ErrAlreadyTerminal      = errors.New("already terminal")
	ErrNotificationDelivery = errors.New("notification delivery failed")
	ErrReconciliation       = errors.New("reconciliation failed")
)

// InvalidStateError is returned when an operation is attempted from a lifecycle
// state that does not allow it.
type InvalidStateError struct {
	Operation string
	Current   string
	Reason    string
}

func NewInvalidStateError(operation, current string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Current: current}
}

func NewInvalidStateErrorWithReason(operation, current, reason string) *InvalidStateError {
	return &InvalidStateError{Operation: operation, Current: current, Reason: reason}
}

func (e *InvalidStateError) Error() string {
	msg := fmt.Sprintf("%s: cannot %s from %s", ErrInvalidState, e.Operation, e.Current)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// CourierUnavailableError is returned when the assignment target is not eligible.
type CourierUnavailableError struct {
	CourierID string
	Reason    string
}

func NewCourierUnavailableError(courierID, reason string) *CourierUnavailableError {
	return &CourierUnavailableError{CourierID: courierID, Reason: reason}
}

func (e *CourierUnavailableError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", ErrCourierUnavailable, e.CourierID, e.Reason)
}

func (e *CourierUnavailableError) Unwrap() error {
	return ErrCourierUnavailable
}

type AlreadyTerminalError struct {
	Operation string
	Current   string
}

func NewAlreadyTerminalError(operation, current string) *AlreadyTerminalError {
	return &AlreadyTerminalError{Operation: operation, Current: current}
}

func (e *AlreadyTerminalError) Error() string {
	return fmt.Sprintf("%s: cannot %s, delivery is %s", ErrAlreadyTerminal, e.Operation, e.Current)
}

func (e *AlreadyTerminalError) Unwrap() error {
	return ErrAlreadyTerminal
}

// NotificationDeliveryError describes a failed push to a single recipient.
// It is logged, never propagated out of a dispatch cascade.
type NotificationDeliveryError struct {
	RecipientID string
	Cause       error
}

func NewNotificationDeliveryError(recipientID string, cause error) *NotificationDeliveryError {
	return &NotificationDeliveryError{RecipientID: recipientID, Cause: cause}
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("%s: recipient %s (cause: %v)", ErrNotificationDelivery, e.RecipientID, e.Cause)
}

func (e *NotificationDeliveryError) Unwrap() error {
	return ErrNotificationDelivery
}

// ReconciliationError describes a failure while expiring a single payment during a sweep.
type ReconciliationError struct {
	PaymentID string
	Cause     error
}

func NewReconciliationError(paymentID string, cause error) *ReconciliationError {
	return &ReconciliationError{PaymentID: paymentID, Cause: cause}
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("%s: payment %s (cause: %v)", ErrReconciliation, e.PaymentID, e.Cause)
}

func (e *ReconciliationError) Unwrap() error {
	return ErrReconciliation
}
