package courier

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrNameIsRequired          = errs.NewValueIsRequiredError("name")
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	ErrEmploymentLinkNotFound  = errors.New("employment link not found")
)

// Courier is the availability side of a courier profile: dispatch status, last
// known location, organization links and delivery counters.
type Courier struct {
	id                 kernel.UUID
	name               string
	availability       Availability
	location           kernel.Location
	pushToken          string
	employments        []*EmploymentLink
	deliveriesCount    int
	cancellationsCount int
	version            int64
	guard              guard.ConstructorGuard
}

func NewCourier(id kernel.UUID, name string, location kernel.Location, availability Availability) (*Courier, error) {
	return RestoreCourier(id, name, location, availability, "", nil, 0, 0, 0)
}

func RestoreCourier(
	id kernel.UUID,
	name string,
	location kernel.Location,
	availability Availability,
	pushToken string,
	employments []*EmploymentLink,
	deliveriesCount, cancellationsCount int,
	version int64,
) (*Courier, error) {
	c := &Courier{
		pushToken: strings.TrimSpace(pushToken),
		version:   version,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
		c.setAvailability(availability),
		c.setEmployments(employments),
		c.setCounters(deliveriesCount, cancellationsCount),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

func (c *Courier) ID() kernel.UUID            { return c.id }
func (c *Courier) Name() string               { return c.name }
func (c *Courier) Availability() Availability { return c.availability }
func (c *Courier) Location() kernel.Location  { return c.location }
func (c *Courier) PushToken() string          { return c.pushToken }
func (c *Courier) DeliveriesCount() int       { return c.deliveriesCount }
func (c *Courier) CancellationsCount() int    { return c.cancellationsCount }

// Version is the persisted revision the courier was loaded at. Repositories
// compare it on write.
func (c *Courier) Version() int64 { return c.version }

func (c *Courier) Employments() []*EmploymentLink {
	out := make([]*EmploymentLink, len(c.employments))
	copy(out, c.employments)
	return out
}

func (c *Courier) IsAvailable() bool {
	return c.availability == Available
}

// CanAccept returns CourierUnavailableError unless the courier may take an assignment.
func (c *Courier) CanAccept() error {
	if !c.availability.CanTakeAssignment() {
		return errs.NewCourierUnavailableError(c.id.String(), c.availability.String())
	}
	return nil
}

func (c *Courier) HasActiveEmployment() bool {
	for _, link := range c.employments {
		if link.IsActive() {
			return true
		}
	}
	return false
}

func (c *Courier) IsActiveEmployeeOf(organizationID kernel.UUID) bool {
	for _, link := range c.employments {
		if link.IsActive() && link.OrganizationID().IsEqual(organizationID) {
			return true
		}
	}
	return false
}

// LinkToOrganization adds an active employment link, or reactivates an existing one.
func (c *Courier) LinkToOrganization(organizationID kernel.UUID, now time.Time) error {
	if err := organizationID.Validate(); err != nil {
		return err
	}
	for _, link := range c.employments {
		if link.OrganizationID().IsEqual(organizationID) {
			link.Activate()
			return nil
		}
	}

	link, err := NewEmploymentLink(kernel.NewUUID(), organizationID, now)
	if err != nil {
		return err
	}
	c.employments = append(c.employments, link)
	return nil
}

func (c *Courier) UnlinkFromOrganization(organizationID kernel.UUID) error {
	for _, link := range c.employments {
		if link.OrganizationID().IsEqual(organizationID) {
			link.Deactivate()
			return nil
		}
	}
	return errs.NewObjectNotFoundErrorWithCause("organizationID", organizationID, ErrEmploymentLinkNotFound)
}

func (c *Courier) ChangeAvailability(availability Availability) error {
	return c.setAvailability(availability)
}

func (c *Courier) MoveTo(location kernel.Location) error {
	return c.setLocation(location)
}

// ChangePushToken replaces the device token used for delivery invitations.
// An empty token unsubscribes the courier from push.
func (c *Courier) ChangePushToken(token string) {
	c.pushToken = strings.TrimSpace(token)
}

func (c *Courier) RecordAcceptedDelivery() {
	c.deliveriesCount++
}

func (c *Courier) RecordCancellation() {
	c.cancellationsCount++
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	c.name = strings.TrimSpace(name)
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *Courier) setAvailability(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	c.availability = availability
	return nil
}

func (c *Courier) setEmployments(links []*EmploymentLink) error {
	for _, link := range links {
		if err := link.Validate(); err != nil {
			return err
		}
	}
	c.employments = append([]*EmploymentLink(nil), links...)
	return nil
}

func (c *Courier) setCounters(deliveries, cancellations int) error {
	if deliveries < 0 {
		return errs.NewValueIsOutOfRangeError("deliveriesCount", deliveries, 0, "+inf")
	}
	if cancellations < 0 {
		return errs.NewValueIsOutOfRangeError("cancellationsCount", cancellations, 0, "+inf")
	}
	c.deliveriesCount = deliveries
	c.cancellationsCount = cancellations
	return nil
}
