// Package rabbitmq publishes push notifications to a RabbitMQ topic exchange.
// A separate push worker consumes them and talks to Expo / Web Push.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"marketplace/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange   = "notifications"
	pushRoutingPrefix = "push."
	genericPushType   = "generic"
)

var (
	_ ports.NotificationGateway = (*PushGateway)(nil)

	ErrPushTokenIsRequired = errors.New("push token is required")
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type pushMessage struct {
	RecipientID string            `json:"recipientId"`
	PushToken   string            `json:"pushToken"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	SentAt      time.Time         `json:"sentAt"`
}

type PushGateway struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       channel
	exchange string
}

// Dial connects to RabbitMQ and declares the durable topic exchange.
func Dial(url, exchange string) (*PushGateway, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	gateway := NewPushGateway(ch, exchange)
	gateway.conn = conn
	return gateway, nil
}

// NewPushGateway wraps an already opened channel whose exchange is declared.
func NewPushGateway(ch channel, exchange string) *PushGateway {
	return &PushGateway{ch: ch, exchange: exchange}
}

// Send publishes one notification. The routing key is "push.<type>", taken from
// the "type" entry of the payload.
func (g *PushGateway) Send(ctx context.Context, n ports.Notification) error {
	if n.PushToken == "" {
		return ErrPushTokenIsRequired
	}

	body, err := json.Marshal(pushMessage{
		RecipientID: n.RecipientID,
		PushToken:   n.PushToken,
		Title:       n.Title,
		Body:        n.Body,
		Data:        n.Data,
		SentAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode push message: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	err = g.ch.PublishWithContext(ctx, g.exchange, routingKey(n), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish push message: %w", err)
	}
	return nil
}

func (g *PushGateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	var err error
	if g.ch != nil {
		err = g.ch.Close()
	}
	if g.conn != nil {
		err = errors.Join(err, g.conn.Close())
	}
	return err
}

func routingKey(n ports.Notification) string {
	if kind := n.Data["type"]; kind != "" {
		return pushRoutingPrefix + kind
	}
	return pushRoutingPrefix + genericPushType
}
