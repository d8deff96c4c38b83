package events

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

const produceTimeout = 5 * time.Second

// Kafka produces events to a single topic, keyed by order id.
type Kafka struct {
	client *kgo.Client
	topic  string
}

func NewKafka(brokers []string, topic string) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Kafka{client: client, topic: topic}, nil
}

func (k *Kafka) PublishOrderCreated(ctx context.Context, e OrderCreated) error {
	value, err := e.Encode()
	if err != nil {
		return err
	}
	return k.ProduceMessage(ctx, []byte(e.OrderID), value)
}

func (k *Kafka) ProduceMessage(ctx context.Context, key, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, produceTimeout)
	defer cancel()

	rec := &kgo.Record{Topic: k.topic, Key: key, Value: value}
	if err := k.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", k.topic, err)
	}
	return nil
}

func (k *Kafka) Close() { k.client.Close() }
