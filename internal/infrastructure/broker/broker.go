package broker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"stockplus/internal/config"
	market "stockplus/internal/domain/entity/market"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// TickSink absorbs decoded ticks.
type TickSink interface {
	Absorb(t market.Tick) bool
}

// Consumer subscribes to the RabbitMQ ticks fanout exchange and forwards
// every tick into the sink.
type Consumer struct {
	cfg    config.RabbitMQConfig
	sink   TickSink
	logger *logrus.Entry

	conn    *amqp.Connection
	channel *amqp.Channel
	wg      sync.WaitGroup
}

// NewConsumer prepares a consumer for the given configuration.
func NewConsumer(cfg config.RabbitMQConfig, sink TickSink, logger *logrus.Logger) (*Consumer, error) {
	if cfg.URL == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	if cfg.TicksExchange == "" {
		return nil, errors.New("rabbitmq ticks exchange is required")
	}
	return &Consumer{
		cfg:    cfg,
		sink:   sink,
		logger: logger.WithField("component", "tick_consumer"),
	}, nil
}

// Start establishes the AMQP connection and begins consuming the exchange.
func (c *Consumer) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	c.conn = conn

	if err := c.startStream(ctx, c.cfg.TicksExchange); err != nil {
		c.Close()
		return err
	}

	c.logger.WithField("exchange", c.cfg.TicksExchange).Info("rabbitmq consumer started")
	return nil
}

// Close stops consumption and releases resources.
func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.wg.Wait()
}

func (c *Consumer) startStream(ctx context.Context, exchange string) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "fanout", true, false, false, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	queue, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(queue.Name, "", exchange, false, nil); err != nil {
		ch.Close()
		return fmt.Errorf("bind queue %s to %s: %w", queue.Name, exchange, err)
	}
	prefetch := c.cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		return fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := ch.Consume(queue.Name, "", false, true, false, false, nil)
	if err != nil {
		ch.Close()
		return fmt.Errorf("start consume: %w", err)
	}
	c.channel = ch
	c.wg.Add(1)
	go c.consumeLoop(ctx, deliveries)
	return nil
}

func (c *Consumer) consumeLoop(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer c.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			// Ticks are superseded by the next one, so bad payloads are
			// acked and dropped rather than requeued.
			if _, err := c.handle(delivery.Body); err != nil {
				c.logger.WithError(err).Debug("dropped tick message")
			}
			if err := delivery.Ack(false); err != nil {
				c.logger.WithError(err).Warn("failed to ack delivery")
			}
		}
	}
}

// handle decodes a delivery body and absorbs its ticks.
func (c *Consumer) handle(body []byte) (int, error) {
	ticks, err := DecodeMessage(body)
	if err != nil {
		return 0, err
	}
	absorbed := 0
	for _, t := range ticks {
		if c.sink.Absorb(t) {
			absorbed++
		}
	}
	return absorbed, nil
}
