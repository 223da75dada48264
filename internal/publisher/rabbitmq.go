// Package publisher announces record changes on a RabbitMQ exchange.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/logging"
)

const (
	ActionCreate  = "create"
	ActionReplace = "replace"
)

type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     zerolog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger zerolog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareTopology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger = logging.Named(logger, "rabbitmq")
	logger.Info().
		Str("exchange", cfg.Exchange).
		Str("queue", cfg.QueueName).
		Str("routing_key", cfg.RoutingKey).
		Msg("connected to rabbitmq")

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

func declareTopology(ch *amqp.Channel, cfg Config) error {
	err := ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// RecordMessage is the body of every published event.
type RecordMessage struct {
	Action    string        `json:"action"`
	RunID     string        `json:"runId"`
	UID       int64         `json:"uid"`
	Record    domain.Record `json:"record"`
	Timestamp time.Time     `json:"timestamp"`
}

func newRecordMessage(event *domain.RecordEvent, now time.Time) RecordMessage {
	action := ActionCreate
	if event.Replaced {
		action = ActionReplace
	}
	return RecordMessage{
		Action:    action,
		RunID:     event.RunID,
		UID:       event.IdentityID,
		Record:    event.Record,
		Timestamp: now.UTC(),
	}
}

func (r *RabbitMQ) Publish(ctx context.Context, event *domain.RecordEvent) error {
	if event == nil {
		return errors.New("publish: nil event")
	}

	now := time.Now()
	msg := newRecordMessage(event, now)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode:  amqp.Persistent,
			ContentType:   "application/json",
			CorrelationId: event.RunID,
			Type:          msg.Action,
			Body:          body,
			Timestamp:     now,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	r.logger.Debug().
		Int64("uid", event.IdentityID).
		Int64("aid", event.Record.ID).
		Str("action", msg.Action).
		Msg("published record")

	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
