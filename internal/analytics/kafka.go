package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the subset of *kgo.Client used by KafkaSink.
type Producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Close()
}

// KafkaSink produces events as JSON records keyed by chain.
type KafkaSink struct {
	producer Producer
	topic    string
	logger   *slog.Logger
	metrics  *Metrics
}

func NewKafkaSink(producer Producer, topic string, logger *slog.Logger, m *Metrics) *KafkaSink {
	return &KafkaSink{producer: producer, topic: topic, logger: logger, metrics: m}
}

// NewKafkaClient connects a franz-go client that produces to topic by default.
func NewKafkaClient(brokers []string, topic string) (*kgo.Client, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}
	cl, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ClientID("accessexplorer"),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return cl, nil
}

// EnsureTopic creates topic when it does not exist yet.
func EnsureTopic(ctx context.Context, cl *kgo.Client, topic string, partitions int32, replication int16) error {
	resp, err := kadm.NewClient(cl).CreateTopic(ctx, partitions, replication, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, resp.Err)
	}
	return nil
}

// Write produces e asynchronously. Delivery failures surface in the log.
func (s *KafkaSink) Write(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	rec := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(e.Chain),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "event", Value: []byte(e.Name)},
		},
	}
	s.producer.Produce(context.WithoutCancel(ctx), rec, func(r *kgo.Record, err error) {
		if err != nil {
			s.metrics.incFailed(e.Name)
			s.logger.Warn("analytics record not delivered",
				"request_id", e.RequestID,
				"topic", r.Topic,
				"error", err,
			)
		}
	})
	return nil
}

// Close flushes buffered records and closes the producer.
func (s *KafkaSink) Close(ctx context.Context) error {
	err := s.producer.Flush(ctx)
	s.producer.Close()
	return err
}
