package payment_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC)

func newPixPayment(t *testing.T, category payment.PayerCategory, ttl time.Duration) *payment.Payment {
	t.Helper()
	expires := now.Add(ttl)
	p, err := payment.NewPayment(kernel.NewUUID(), 2500, kernel.NewUUID(), category,
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}, &expires, now)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	p := newPixPayment(t, payment.PayerCustomer, 5*time.Minute)

	assert.Equal(t, payment.StatusPending, p.Status())
	assert.Len(t, p.DeliveryIDs(), 2)
	assert.True(t, p.IsEndCustomer())
	require.NoError(t, p.Validate())
}

func TestNewPayment_Validation(t *testing.T) {
	dup := kernel.NewUUID()

	tests := []struct {
		name        string
		amount      int64
		category    payment.PayerCategory
		deliveryIDs []kernel.UUID
		wantErr     error
	}{
		{"zero amount", 0, payment.PayerCustomer, []kernel.UUID{kernel.NewUUID()}, errs.ErrValueIsInvalid},
		{"no deliveries", 100, payment.PayerCustomer, nil, errs.ErrValueIsRequired},
		{"duplicate delivery", 100, payment.PayerCustomer, []kernel.UUID{dup, dup}, errs.ErrValueIsInvalid},
		{"unknown payer", 100, payment.PayerCategory("BANK"), []kernel.UUID{kernel.NewUUID()}, errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := payment.NewPayment(kernel.NewUUID(), tt.amount, kernel.NewUUID(), tt.category, tt.deliveryIDs, nil, now)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPayment_IsDue(t *testing.T) {
	p := newPixPayment(t, payment.PayerCustomer, 5*time.Minute)

	assert.False(t, p.IsDue(now.Add(4*time.Minute)))
	assert.True(t, p.IsDue(now.Add(5*time.Minute)))
	assert.True(t, p.IsDue(now.Add(time.Hour)))

	require.NoError(t, p.Complete())
	assert.False(t, p.IsDue(now.Add(time.Hour)))

	noDeadline, err := payment.NewPayment(kernel.NewUUID(), 100, kernel.NewUUID(), payment.PayerClient,
		[]kernel.UUID{kernel.NewUUID()}, nil, now)
	require.NoError(t, err)
	assert.False(t, noDeadline.IsDue(now.Add(24*time.Hour)))
}

func TestPayment_TransitionsOnlyFromPending(t *testing.T) {
	p := newPixPayment(t, payment.PayerCustomer, time.Minute)

	require.NoError(t, p.Expire())
	assert.Equal(t, payment.StatusExpired, p.Status())

	require.ErrorIs(t, p.Complete(), errs.ErrInvalidState)
	require.ErrorIs(t, p.Expire(), errs.ErrInvalidState)
	require.ErrorIs(t, p.Fail(), errs.ErrInvalidState)
	require.ErrorIs(t, p.Cancel(), errs.ErrInvalidState)
}

func TestPayment_AttachOrderRef(t *testing.T) {
	p := newPixPayment(t, payment.PayerCustomer, time.Minute)

	require.ErrorIs(t, p.AttachOrderRef(" "), errs.ErrValueIsRequired)
	require.NoError(t, p.AttachOrderRef("ORD_123"))
	assert.Equal(t, "ORD_123", p.ProviderOrderRef())
}

func TestPayment_DeliveryIDs_ReturnsCopy(t *testing.T) {
	p := newPixPayment(t, payment.PayerCustomer, time.Minute)
	ids := p.DeliveryIDs()
	ids[0] = kernel.UUID{}

	require.NoError(t, p.DeliveryIDs()[0].Validate())
}
