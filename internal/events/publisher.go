// Package events publishes recorded classification events to Kafka for
// downstream consumers. The publisher is optional: the service runs fully
// without a broker configured.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/moodlens/moodlens/internal/models"
)

const MOOD_EVENTS_TOPIC = "moodlens.mood-events"

type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaPublisher(broker string) (*KafkaPublisher, error) {
	slog.Info("[KafkaPublisher] Initializing producer...", slog.String("broker", broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  broker,
		"enable.idempotence": true,
		"acks":               "all",
	})
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}

	slog.Info("[KafkaPublisher] Producer initialized successfully")
	return &KafkaPublisher{producer: p, topic: MOOD_EVENTS_TOPIC}, nil
}

// PublishMoodEvent emits one recorded history entry, keyed by its id, and
// waits for the delivery report.
func (k *KafkaPublisher) PublishMoodEvent(ctx context.Context, entry models.HistoryEntry) error {
	jsonData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshalling mood event: %w", err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &k.topic, Partition: kafka.PartitionAny},
		Key:            []byte(strconv.FormatInt(entry.ID, 10)),
		Value:          jsonData,
	}

	if err := k.producer.Produce(msg, deliveryChan); err != nil {
		return fmt.Errorf("producing mood event: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-deliveryChan:
		m, ok := e.(*kafka.Message)
		if !ok {
			return fmt.Errorf("unexpected delivery event %T", e)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("delivering mood event: %w", m.TopicPartition.Error)
		}
	}

	slog.Info("[KafkaPublisher] Published mood event",
		slog.Int64("entry_id", entry.ID),
		slog.String("mood", string(entry.Mood)))

	return nil
}

func (k *KafkaPublisher) Close() {
	slog.Info("[KafkaPublisher] Flushing producer before shutdown...")
	if remaining := k.producer.Flush(5000); remaining > 0 {
		slog.Warn("[KafkaPublisher] Not all events were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	k.producer.Close()
}
