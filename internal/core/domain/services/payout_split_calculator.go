package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// Percentage is expressed in basis points: 100% == FullPercentage.
type Percentage int64

const FullPercentage Percentage = 10000

var ErrSplitConfigIsNotConstructed = errors.New("SplitConfig must be created via NewSplitConfig")

// PercentageFromFloat converts a percentage in [0, 100] to basis points,
// rounding to the nearest hundredth of a percent.
func PercentageFromFloat(pct float64) (Percentage, error) {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return 0, errs.NewValueIsOutOfRangeError("percentage", pct, 0, 100)
	}
	return Percentage(math.Round(pct * 100)), nil
}

func (p Percentage) Float() float64 {
	return float64(p) / 100
}

// Of returns the share of amount, truncated toward zero. amount must be non-negative.
func (p Percentage) Of(amount int64) int64 {
	full := int64(FullPercentage)
	return (amount/full)*int64(p) + (amount%full)*int64(p)/full
}

// SplitConfig holds the configured organizer and platform percentages.
// The courier receives the remainder.
type SplitConfig struct {
	organizer Percentage
	platform  Percentage
	guard     guard.ConstructorGuard
}

func NewSplitConfig(organizerPct, platformPct float64) (SplitConfig, error) {
	organizer, orgErr := PercentageFromFloat(organizerPct)
	platform, platErr := PercentageFromFloat(platformPct)
	if err := errors.Join(orgErr, platErr); err != nil {
		return SplitConfig{}, err
	}
	if organizer+platform > FullPercentage {
		return SplitConfig{}, errs.NewValueIsInvalidErrorWithCause("splitConfig",
			fmt.Errorf("organizer %.2f%% + platform %.2f%% exceeds 100%%", organizerPct, platformPct))
	}

	return SplitConfig{organizer: organizer, platform: platform, guard: guard.NewConstructorGuard()}, nil
}

func (c SplitConfig) Validate() error {
	return c.guard.Validate(ErrSplitConfigIsNotConstructed)
}

func (c SplitConfig) Organizer() Percentage { return c.organizer }
func (c SplitConfig) Platform() Percentage  { return c.platform }

// Split is the division of one amount among courier, organizer and platform.
type Split struct {
	Courier      int64
	Organizer    int64
	Platform     int64
	CourierPct   Percentage
	OrganizerPct Percentage
	PlatformPct  Percentage
}

func (s Split) Total() int64 {
	return s.Courier + s.Organizer + s.Platform
}

// SplitRecipients are the payout identities at the payment processor.
type SplitRecipients struct {
	CourierID   string
	OrganizerID string
	PlatformID  string
}

// SplitInstruction is one line of a split order sent to the payment processor.
type SplitInstruction struct {
	RecipientID         string
	Percentage          Percentage
	Liable              bool
	ChargeProcessingFee bool
	ChargeRemainderFee  bool
}

// PayoutSplitCalculator divides payments among participants.
//
//	cfg, _ := services.NewSplitConfig(5, 10)
//	split, _ := services.NewPayoutSplitCalculator().ComputeSplit(1000, cfg, false)
//	// split.Courier == 850, split.Organizer == 0, split.Platform == 150
type PayoutSplitCalculator struct{}

func NewPayoutSplitCalculator() PayoutSplitCalculator {
	return PayoutSplitCalculator{}
}

// HasValidOrganizer reports whether an organizer payout identity is usable.
func (c PayoutSplitCalculator) HasValidOrganizer(organizerRecipientID string) bool {
	return strings.TrimSpace(organizerRecipientID) != ""
}

// ComputeSplit splits amount (minor units). Without an organizer, the organizer
// percentage goes to the platform. Each share is truncated toward zero, so the
// shares never sum to more than amount.
func (c PayoutSplitCalculator) ComputeSplit(amount int64, cfg SplitConfig, hasOrganizer bool) (Split, error) {
	if err := cfg.Validate(); err != nil {
		return Split{}, err
	}
	if amount < 0 {
		return Split{}, errs.NewValueIsOutOfRangeError("amount", amount, 0, int64(math.MaxInt64))
	}

	organizerPct := cfg.organizer
	platformPct := cfg.platform
	courierPct := FullPercentage - organizerPct - platformPct

	if !hasOrganizer {
		platformPct += organizerPct
		organizerPct = 0
	}

	return Split{
		Courier:      courierPct.Of(amount),
		Organizer:    organizerPct.Of(amount),
		Platform:     platformPct.Of(amount),
		CourierPct:   courierPct,
		OrganizerPct: organizerPct,
		PlatformPct:  platformPct,
	}, nil
}

// SplitInstructions renders a split as processor instructions. The platform is
// liable and absorbs processing fees; zero-percentage lines are omitted.
func (c PayoutSplitCalculator) SplitInstructions(split Split, recipients SplitRecipients) []SplitInstruction {
	instructions := make([]SplitInstruction, 0, 3)

	if split.CourierPct > 0 {
		instructions = append(instructions, SplitInstruction{
			RecipientID: recipients.CourierID,
			Percentage:  split.CourierPct,
		})
	}
	if split.OrganizerPct > 0 && c.HasValidOrganizer(recipients.OrganizerID) {
		instructions = append(instructions, SplitInstruction{
			RecipientID: recipients.OrganizerID,
			Percentage:  split.OrganizerPct,
		})
	}
	if split.PlatformPct > 0 {
		instructions = append(instructions, SplitInstruction{
			RecipientID:         recipients.PlatformID,
			Percentage:          split.PlatformPct,
			Liable:              true,
			ChargeProcessingFee: true,
			ChargeRemainderFee:  true,
		})
	}

	return instructions
}

// DeliveryShare is the split of one delivery inside a consolidated payment.
type DeliveryShare struct {
	Amount     int64
	Split      Split
	Recipients SplitRecipients
}

// ConsolidatedInstructions merges the splits of several deliveries paid by one
// order. Each recipient gets the amount-weighted average of its percentages,
// truncated; the platform line takes the remainder so the lines always sum to
// FullPercentage. A single share yields the same lines as SplitInstructions.
func (c PayoutSplitCalculator) ConsolidatedInstructions(shares []DeliveryShare) []SplitInstruction {
	var (
		total      int64
		platformID string
		order      []string
	)
	weighted := make(map[string]int64)
	add := func(recipientID string, pct Percentage, amount int64) {
		if pct <= 0 || amount <= 0 {
			return
		}
		if _, seen := weighted[recipientID]; !seen {
			order = append(order, recipientID)
		}
		weighted[recipientID] += int64(pct) * amount
	}

	for _, share := range shares {
		if share.Amount <= 0 {
			continue
		}
		total += share.Amount
		platformID = share.Recipients.PlatformID
		add(share.Recipients.CourierID, share.Split.CourierPct, share.Amount)
		if c.HasValidOrganizer(share.Recipients.OrganizerID) {
			add(share.Recipients.OrganizerID, share.Split.OrganizerPct, share.Amount)
		}
	}
	if total == 0 {
		return nil
	}

	instructions := make([]SplitInstruction, 0, len(order)+1)
	remaining := FullPercentage
	for _, recipientID := range order {
		pct := Percentage(weighted[recipientID] / total)
		if pct == 0 {
			continue
		}
		remaining -= pct
		instructions = append(instructions, SplitInstruction{
			RecipientID: recipientID,
			Percentage:  pct,
		})
	}
	if remaining > 0 {
		instructions = append(instructions, SplitInstruction{
			RecipientID:         platformID,
			Percentage:          remaining,
			Liable:              true,
			ChargeProcessingFee: true,
			ChargeRemainderFee:  true,
		})
	}

	return instructions
}
