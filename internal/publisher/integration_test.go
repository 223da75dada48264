//go:build integration

package publisher

import (
	"context"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"replay_fetcher/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) config(name string) Config {
	return Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-" + name,
		RoutingKey: "test-routing-key-" + name,
		QueueName:  "test-queue-" + name,
	}
}

func testEvent(replaced bool) *domain.RecordEvent {
	return &domain.RecordEvent{
		RunID:      "run-1",
		IdentityID: 1400350754,
		Replaced:   replaced,
		Record: domain.Record{
			Upload: domain.Upload{
				ID:              123,
				AltID:           "BV1ab411c7de",
				DurationSeconds: 7200,
				PublishTime:     1704067200000,
				Title:           "【机皇录播】2024-01-01 艾尔登法环",
			},
			LiveTime: 1704038400000,
			Games:    []string{"艾尔登法环"},
			Streamer: "机皇",
		},
	}
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	pub, err := NewRabbitMQ(s.config("conn"), zerolog.Nop())
	s.NoError(err)
	s.NotNil(pub)

	s.NoError(pub.Close())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishCreate() {
	cfg := s.config("create")
	pub, err := NewRabbitMQ(cfg, zerolog.Nop())
	s.Require().NoError(err)
	defer pub.Close()

	s.Require().NoError(pub.Publish(s.ctx, testEvent(false)))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received RecordMessage
	s.Require().NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(ActionCreate, received.Action)
	s.Equal(int64(1400350754), received.UID)
	s.Equal(int64(123), received.Record.ID)
	s.Equal([]string{"艾尔登法环"}, received.Record.Games)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishReplace() {
	cfg := s.config("replace")
	pub, err := NewRabbitMQ(cfg, zerolog.Nop())
	s.Require().NoError(err)
	defer pub.Close()

	s.Require().NoError(pub.Publish(s.ctx, testEvent(true)))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received RecordMessage
	s.Require().NoError(json.Unmarshal(msg.Body, &received))
	s.Equal(ActionReplace, received.Action)
	s.Equal(ActionReplace, msg.Type)
	s.Equal("run-1", msg.CorrelationId)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_MessagePersistence() {
	cfg := s.config("persist")
	pub, err := NewRabbitMQ(cfg, zerolog.Nop())
	s.Require().NoError(err)
	defer pub.Close()

	s.Require().NoError(pub.Publish(s.ctx, testEvent(false)))

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal("application/json", msg.ContentType)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
