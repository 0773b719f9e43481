// Package amqp implements a target connector that republishes entries as
// persistent JSON messages on a RabbitMQ exchange.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp091 "github.com/rabbitmq/amqp091-go"

	"soposyncd/internal/domain"
)

const (
	defaultExchange   = "soposyncd"
	defaultRoutingKey = "entries"
	defaultQueue      = "soposyncd_entries"
)

type Connector struct {
	name       string
	conn       *amqp091.Connection
	channel    *amqp091.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

func New(logger *slog.Logger) *Connector {
	return &Connector{logger: logger}
}

func (c *Connector) Configure(name string, options map[string]string) error {
	c.name = name
	c.logger = c.logger.With("connector", name)

	url, ok := options["url"]
	if !ok || url == "" {
		return fmt.Errorf("connector %q lacks url: %w", name, domain.ErrConfiguration)
	}

	c.exchange = stringOption(options, "exchange", defaultExchange)
	c.routingKey = stringOption(options, "routing_key", defaultRoutingKey)
	queue := stringOption(options, "queue", defaultQueue)

	conn, err := amqp091.Dial(url)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w: %v", domain.ErrConnector, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w: %v", domain.ErrConnector, err)
	}

	err = ch.ExchangeDeclare(
		c.exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w: %v", domain.ErrConnector, err)
	}

	q, err := ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare queue: %w: %v", domain.ErrConnector, err)
	}

	err = ch.QueueBind(
		q.Name,
		c.routingKey,
		c.exchange,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("bind queue: %w: %v", domain.ErrConnector, err)
	}

	c.logger.Info("connected to rabbitmq",
		"exchange", c.exchange,
		"queue", q.Name,
		"routing_key", c.routingKey,
	)

	c.conn = conn
	c.channel = ch

	return nil
}

func stringOption(options map[string]string, key, fallback string) string {
	if v, ok := options[key]; ok && v != "" {
		return v
	}
	return fallback
}

// EntryMessage is the wire format published per entry.
type EntryMessage struct {
	Entry     domain.Entry `json:"entry"`
	Timestamp time.Time    `json:"timestamp"`
}

// Entries is not supported; the exchange is write-only from here.
func (c *Connector) Entries(ctx context.Context, after time.Time) ([]domain.Entry, error) {
	return nil, fmt.Errorf("connector %q cannot act as a source: %w", c.name, domain.ErrConnector)
}

func (c *Connector) Push(ctx context.Context, entry domain.Entry) error {
	msg := EntryMessage{
		Entry:     entry,
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entry %s: %w: %v", entry.UniqueID, domain.ErrConnector, err)
	}

	err = c.channel.PublishWithContext(
		ctx,
		c.exchange,
		c.routingKey,
		false,
		false,
		amqp091.Publishing{
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish entry %s: %w: %v", entry.UniqueID, domain.ErrConnector, err)
	}

	c.logger.Debug("published entry", "entry_id", entry.UniqueID)

	return nil
}

func (c *Connector) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
