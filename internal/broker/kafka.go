package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"casemail/internal/config"
	"casemail/internal/constants"
	"casemail/internal/logger"
	"casemail/pkg/metrics"
	"casemail/pkg/models"
	"casemail/pkg/tracing"
)

type KafkaProducer struct {
	writer *kafka.Writer
	logger logger.Logger
}

func NewKafkaProducer(cfg config.BrokerConfig, log logger.Logger) *KafkaProducer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: constants.KafkaBatchTimeout,
		WriteTimeout: constants.KafkaWriteTimeout,
		Async:        false,
	}
	return &KafkaProducer{writer: w, logger: log}
}

func (p *KafkaProducer) Publish(ctx context.Context, topic string, event models.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	headers := []kafka.Header{}
	headers = tracing.InjectTraceContext(ctx, headers)

	start := time.Now()
	err = p.writer.WriteMessages(ctx,
		kafka.Message{
			Topic:   topic,
			Key:     []byte(event.ID),
			Value:   body,
			Headers: headers,
			Time:    time.Now(),
		},
	)
	metrics.ObserveKafkaWriteDuration("ingestion-service", topic, time.Since(start))

	if err != nil {
		return fmt.Errorf("failed to write kafka message: %w", err)
	}

	metrics.IncKafkaMessagesWritten("ingestion-service", topic)
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

// NopProducer is used when the broker is disabled in config.
type NopProducer struct{}

func (NopProducer) Publish(ctx context.Context, topic string, event models.Event) error { return nil }
func (NopProducer) Close() error                                                        { return nil }

// NewProducer returns a kafka producer, or a no-op one when the broker is
// disabled.
func NewProducer(cfg config.BrokerConfig, log logger.Logger) Producer {
	if !cfg.Enabled {
		return NopProducer{}
	}
	return NewKafkaProducer(cfg, log)
}
