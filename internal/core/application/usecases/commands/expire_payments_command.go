package commands

import (
	"errors"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrExpirePaymentsCommandIsNotConstructed = errors.New(
	"ExpirePaymentsCommand must be created via NewExpirePaymentsCommand constructor",
)

// ExpirePaymentsCommand runs one reconciliation sweep over payments whose
// expiry deadline is at or before Now.
type ExpirePaymentsCommand struct { //nolint:recvcheck //using for validation
	now time.Time

	guard guard.ConstructorGuard
}

func NewExpirePaymentsCommand(now time.Time) (ExpirePaymentsCommand, error) {
	if now.IsZero() {
		return ExpirePaymentsCommand{}, errs.NewValueIsRequiredError("now")
	}

	return ExpirePaymentsCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ExpirePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePaymentsCommandIsNotConstructed)
}

func (c ExpirePaymentsCommand) Now() time.Time { return c.now }
