package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"riskgate/internal/validation/ports"
)

// DefaultTopic carries the verdict audit trail.
const DefaultTopic = "riskgate.verdicts"

// kafkaProducer is the slice of kgo.Client the publisher uses, split out so
// tests can substitute a fake producer.
type kafkaProducer interface {
	ProduceSync(ctx context.Context, records ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher emits verdict events to a Kafka topic, keyed by account id
// so one account's trail stays ordered within a partition.
type KafkaPublisher struct {
	producer kafkaProducer
	client   *kgo.Client
	topic    string
}

// NewKafkaPublisher connects to the brokers and ensures the topic exists.
func NewKafkaPublisher(ctx context.Context, brokers []string, topic string) (*KafkaPublisher, error) {
	if topic == "" {
		topic = DefaultTopic
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("connect kafka: %w", err)
	}

	if err := ensureTopic(ctx, client, topic); err != nil {
		client.Close()
		return nil, err
	}

	return &KafkaPublisher{producer: client, client: client, topic: topic}, nil
}

// ensureTopic creates the audit topic if the cluster does not have it yet.
func ensureTopic(ctx context.Context, client *kgo.Client, topic string) error {
	adm := kadm.NewClient(client)

	topics, err := adm.ListTopics(ctx, topic)
	if err != nil {
		return fmt.Errorf("list topics: %w", err)
	}
	if topics.Has(topic) {
		return nil
	}

	if _, err := adm.CreateTopic(ctx, -1, -1, nil, topic); err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	return nil
}

// PublishVerdict produces the event synchronously. The engine treats audit
// publishing as fail-open, so a broker outage is logged upstream rather than
// changing the verdict.
func (p *KafkaPublisher) PublishVerdict(ctx context.Context, verdict ports.VerdictEvent) error {
	event := fromVerdict(verdict)
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.AccountID),
		Value: payload,
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying client.
func (p *KafkaPublisher) Close() {
	if p.client != nil {
		p.client.Close()
	}
}
