package courier

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrEmploymentLinkIsNotConstructed = errors.New("EmploymentLink must be created via NewEmploymentLink")

// EmploymentLink ties a courier to an organization. Only active links make the
// courier eligible for that organization's dispatch tiers.
type EmploymentLink struct {
	id             kernel.UUID
	organizationID kernel.UUID
	linkedAt       time.Time
	active         bool
	guard          guard.ConstructorGuard
}

func NewEmploymentLink(id, organizationID kernel.UUID, linkedAt time.Time) (*EmploymentLink, error) {
	return RestoreEmploymentLink(id, organizationID, linkedAt, true)
}

func RestoreEmploymentLink(id, organizationID kernel.UUID, linkedAt time.Time, active bool) (*EmploymentLink, error) {
	link := &EmploymentLink{
		linkedAt: linkedAt.UTC(),
		active:   active,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(id.Validate(), organizationID.Validate()); err != nil {
		return nil, err
	}
	link.id = id
	link.organizationID = organizationID

	return link, nil
}

func (l *EmploymentLink) Validate() error {
	if l == nil {
		return ErrEmploymentLinkIsNotConstructed
	}
	return l.guard.Validate(ErrEmploymentLinkIsNotConstructed)
}

func (l *EmploymentLink) ID() kernel.UUID             { return l.id }
func (l *EmploymentLink) OrganizationID() kernel.UUID { return l.organizationID }
func (l *EmploymentLink) LinkedAt() time.Time         { return l.linkedAt }
func (l *EmploymentLink) IsActive() bool              { return l.active }

func (l *EmploymentLink) Deactivate() {
	l.active = false
}

func (l *EmploymentLink) Activate() {
	l.active = true
}
