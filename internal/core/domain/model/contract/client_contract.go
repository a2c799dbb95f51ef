// Package contract models the service agreements between clients and organizations.
package contract

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrClientContractIsNotConstructed = errors.New("ClientContract must be created via NewClientContract")

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusSuspended, StatusCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("contractStatus", fmt.Errorf("%q is not a valid contract status", string(s)))
	}
}

// ClientContract links a client to the organization serving it. A client has at
// most one primary active contract, which scopes the first dispatch tier; the
// other active contracts scope the second.
type ClientContract struct {
	id             kernel.UUID
	clientID       kernel.UUID
	organizationID kernel.UUID
	primary        bool
	status         Status
	guard          guard.ConstructorGuard
}

func NewClientContract(id, clientID, organizationID kernel.UUID, primary bool, status Status) (*ClientContract, error) {
	if err := errors.Join(
		id.Validate(),
		clientID.Validate(),
		organizationID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &ClientContract{
		id:             id,
		clientID:       clientID,
		organizationID: organizationID,
		primary:        primary,
		status:         status,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c *ClientContract) Validate() error {
	if c == nil {
		return ErrClientContractIsNotConstructed
	}
	return c.guard.Validate(ErrClientContractIsNotConstructed)
}

func (c *ClientContract) ID() kernel.UUID             { return c.id }
func (c *ClientContract) ClientID() kernel.UUID       { return c.clientID }
func (c *ClientContract) OrganizationID() kernel.UUID { return c.organizationID }
func (c *ClientContract) IsPrimary() bool             { return c.primary }
func (c *ClientContract) Status() Status              { return c.status }

func (c *ClientContract) IsActive() bool {
	return c.status == StatusActive
}

// OrganizationIDs collects the distinct organizations of the given contracts.
func OrganizationIDs(contracts []*ClientContract) []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(contracts))
	out := make([]kernel.UUID, 0, len(contracts))
	for _, c := range contracts {
		if _, ok := seen[c.organizationID]; ok {
			continue
		}
		seen[c.organizationID] = struct{}{}
		out = append(out, c.organizationID)
	}
	return out
}
