// Package paymentgw is the HTTP client of the payment gateway that creates PIX
// split orders.
package paymentgw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"marketplace/internal/core/ports"
)

const (
	ordersPath     = "/orders"
	apiKeyHeader   = "X-Api-Key"
	maxErrorDetail = 512
)

var (
	_ ports.PaymentProcessor = (*Client)(nil)

	ErrGatewayRejected   = errors.New("payment gateway rejected the request")
	ErrMissingOrderID    = errors.New("payment gateway returned no order id")
	ErrBaseURLIsRequired = errors.New("payment gateway base URL is required")
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrBaseURLIsRequired
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &LoggingRoundTripper{
				Proxied: http.DefaultTransport,
				Logger:  logger.With("component", "payment_gateway_client"),
			},
		},
	}, nil
}

type payerDTO struct {
	ID       string `json:"id"`
	Category string `json:"category"`
}

type itemDTO struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Quantity    int    `json:"quantity"`
}

type splitDTO struct {
	RecipientID         string  `json:"recipientId"`
	Percentage          float64 `json:"percentage"`
	Liable              bool    `json:"liable"`
	ChargeProcessingFee bool    `json:"chargeProcessingFee"`
	ChargeRemainderFee  bool    `json:"chargeRemainderFee"`
}

type createOrderRequest struct {
	ReferenceID      string     `json:"referenceId"`
	Payer            payerDTO   `json:"payer"`
	Items            []itemDTO  `json:"items"`
	Splits           []splitDTO `json:"splits"`
	PaymentMethod    string     `json:"paymentMethod"`
	ExpiresInSeconds int64      `json:"expiresInSeconds"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateSplitOrder posts a PIX order with its split rules and returns the gateway order id.
func (c *Client) CreateSplitOrder(ctx context.Context, request ports.SplitOrderRequest) (string, error) {
	payload := createOrderRequest{
		ReferenceID:      request.ReferenceID,
		Payer:            payerDTO{ID: request.Payer.ID, Category: request.Payer.Category},
		Items:            make([]itemDTO, 0, len(request.Items)),
		Splits:           make([]splitDTO, 0, len(request.Splits)),
		PaymentMethod:    "pix",
		ExpiresInSeconds: int64(request.ExpiresIn / time.Second),
	}
	for _, item := range request.Items {
		payload.Items = append(payload.Items, itemDTO(item))
	}
	for _, split := range request.Splits {
		payload.Splits = append(payload.Splits, splitDTO{
			RecipientID:         split.RecipientID,
			Percentage:          split.Percentage.Float(),
			Liable:              split.Liable,
			ChargeProcessingFee: split.ChargeProcessingFee,
			ChargeRemainderFee:  split.ChargeRemainderFee,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode split order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ordersPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build split order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", request.ReferenceID)
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create split order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorDetail))
		return "", fmt.Errorf("%w: status %d: %s", ErrGatewayRejected, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var decoded createOrderResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode split order response: %w", err)
	}
	if decoded.ID == "" {
		return "", ErrMissingOrderID
	}
	return decoded.ID, nil
}
