package paymentgw_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/adapters/out/paymentgw"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func splitOrder() ports.SplitOrderRequest {
	return ports.SplitOrderRequest{
		ReferenceID: "payment-1",
		Payer:       ports.PayerInfo{ID: "customer-1", Category: "CUSTOMER"},
		Items: []ports.LineItem{
			{Code: "delivery-1", Description: "Delivery Rua A -> Rua B", Amount: 2500, Quantity: 1},
		},
		Splits: []services.SplitInstruction{
			{RecipientID: "courier-rcp", Percentage: 8500},
			{RecipientID: "platform-rcp", Percentage: 1500, Liable: true, ChargeProcessingFee: true, ChargeRemainderFee: true},
		},
		ExpiresIn: 5 * time.Minute,
	}
}

func TestClient_CreateSplitOrder_Success(t *testing.T) {
	var received map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "payment-1", r.Header.Get("Idempotency-Key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"or_123"}`))
	}))
	defer server.Close()

	client, err := paymentgw.NewClient(paymentgw.Config{
		BaseURL: server.URL + "/v1/",
		APIKey:  "secret",
		Timeout: time.Second,
	}, discardLogger())
	require.NoError(t, err)

	ref, err := client.CreateSplitOrder(t.Context(), splitOrder())

	require.NoError(t, err)
	assert.Equal(t, "or_123", ref)
	assert.Equal(t, "pix", received["paymentMethod"])
	assert.InDelta(t, 300.0, received["expiresInSeconds"], 0)

	splits := received["splits"].([]any)
	require.Len(t, splits, 2)
	platform := splits[1].(map[string]any)
	assert.Equal(t, "platform-rcp", platform["recipientId"])
	assert.InDelta(t, 15.0, platform["percentage"], 0)
	assert.Equal(t, true, platform["liable"])
}

func TestClient_CreateSplitOrder_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid recipient"}`))
	}))
	defer server.Close()

	client, err := paymentgw.NewClient(paymentgw.Config{BaseURL: server.URL, Timeout: time.Second}, discardLogger())
	require.NoError(t, err)

	_, err = client.CreateSplitOrder(t.Context(), splitOrder())

	require.ErrorIs(t, err, paymentgw.ErrGatewayRejected)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid recipient")
}

func TestClient_CreateSplitOrder_MissingOrderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := paymentgw.NewClient(paymentgw.Config{BaseURL: server.URL, Timeout: time.Second}, discardLogger())
	require.NoError(t, err)

	_, err = client.CreateSplitOrder(t.Context(), splitOrder())

	require.ErrorIs(t, err, paymentgw.ErrMissingOrderID)
}

func TestClient_CreateSplitOrder_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client, err := paymentgw.NewClient(paymentgw.Config{BaseURL: server.URL, Timeout: 20 * time.Millisecond}, discardLogger())
	require.NoError(t, err)

	_, err = client.CreateSplitOrder(t.Context(), splitOrder())

	require.Error(t, err)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := paymentgw.NewClient(paymentgw.Config{}, discardLogger())

	require.ErrorIs(t, err, paymentgw.ErrBaseURLIsRequired)
}
