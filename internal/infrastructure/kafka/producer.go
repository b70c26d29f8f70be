package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
)

const (
	eventTypeHeader    = "event_type"
	orderPlacedType    = "order.placed"
	defaultBaseBackoff = 200 * time.Millisecond
	defaultMaxBackoff  = 5 * time.Second
)

// messageWriter - часть kafka.Writer, которой пользуется продюсер.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события оформленных заказов.
type Producer struct {
	writer      messageWriter
	logger      logger.Logger
	cfg         *cfg.KafkaCfg
	baseBackoff time.Duration
	maxBackoff  time.Duration
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	const op = "kafka.NewProducer"

	if len(cfg.Brokers) == 0 {
		return nil, e.Wrap(op, e.ErrIncorrectEnvVariable)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}

	return newProducer(writer, logger, cfg), nil
}

func newProducer(writer messageWriter, logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	return &Producer{
		writer:      writer,
		logger:      logger,
		cfg:         cfg,
		baseBackoff: defaultBaseBackoff,
		maxBackoff:  defaultMaxBackoff,
	}
}

// PublishOrderPlaced отправляет событие с ключом order_id.
// Временные сбои брокера повторяются с экспоненциальной задержкой.
func (p *Producer) PublishOrderPlaced(ctx context.Context, event *usecase.OrderPlacedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(orderPlacedType)},
		},
	}

	attempts := max(p.cfg.MaxRetries, 0) + 1
	for attempt := 0; attempt < attempts; attempt++ {
		err = p.writer.WriteMessages(ctx, msg)
		if err == nil {
			p.logger.Debugf("Order event published, order_id: %s, attempt: %d", event.OrderID, attempt+1)
			return nil
		}

		if !isRetryableError(err) || attempt == attempts-1 {
			break
		}

		backoff := jitter.ExponentialBackoff(p.baseBackoff, p.maxBackoff, attempt, jitter.DefaultJitter)
		p.logger.Warnf("Temporary kafka failure, order_id: %s, retry in %s: %v", event.OrderID, backoff, err)

		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return e.Wrap(whereami.WhereAmI(), ctx.Err())
		}
	}

	return e.Wrap(whereami.WhereAmI(), fmt.Errorf("publish order %s: %w", event.OrderID, err))
}

func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial(p.cfg.NetworkMode, p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     p.cfg.Partitions,
			ReplicationFactor: p.cfg.ReplicationFactor,
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close(_ context.Context) error {
	return p.writer.Close()
}
