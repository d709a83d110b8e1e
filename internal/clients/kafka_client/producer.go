package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/tubemood/internal/models"
)

// AnalysisEvent is the message published for every finished analysis.
type AnalysisEvent struct {
	VideoID    string                 `json:"video_id"`
	AnalyzedAt int64                  `json:"analyzed_at"`
	Summary    models.MoodSummary     `json:"summary"`
	Records    []models.CommentRecord `json:"records"`
}

func NewAnalysisEvent(result *models.AnalysisResult) AnalysisEvent {
	return AnalysisEvent{
		VideoID:    result.VideoID,
		AnalyzedAt: result.AnalyzedAt.Unix(),
		Summary:    result.Summary(),
		Records:    result.Records,
	}
}

type ResultPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewResultPublisher(cfg KafkaConfig) (*ResultPublisher, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...", slog.String("broker", cfg.Broker))

	configMap := kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
	}
	for k, v := range cfg.Overrides {
		configMap[k] = v
	}

	p, err := kafka.NewProducer(&configMap)
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	go logDeliveryReports(p.Events())

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &ResultPublisher{producer: p, topic: cfg.Topic}, nil
}

func logDeliveryReports(events chan kafka.Event) {
	for e := range events {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				slog.Warn("[KafkaClient] Delivery failed",
					slog.String("key", string(ev.Key)),
					slog.String("error", ev.TopicPartition.Error.Error()))
			}
		case kafka.Error:
			slog.Warn("[KafkaClient] Producer error", slog.String("error", ev.Error()))
		}
	}
}

func (rp *ResultPublisher) Name() string { return "kafka" }

func (rp *ResultPublisher) Store(ctx context.Context, result *models.AnalysisResult) error {
	return rp.PublishAnalysis(result)
}

// PublishAnalysis sends one analysis to the results topic keyed by video ID.
func (rp *ResultPublisher) PublishAnalysis(result *models.AnalysisResult) error {
	jsonData, err := json.Marshal(NewAnalysisEvent(result))
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal analysis: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &rp.topic, Partition: kafka.PartitionAny},
		Key:            []byte(result.VideoID),
		Value:          jsonData,
	}

	for i := 0; i < MAX_RETRIES; i++ {
		err = rp.producer.Produce(msg, nil)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		if i < MAX_RETRIES-1 {
			rp.producer.Flush(int(RETRY_FLUSH_TIMEOUT.Milliseconds()))
		}
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce analysis after %d attempts: %w", MAX_RETRIES, err)
	}

	slog.Info("[KafkaClient] Published analysis to Kafka",
		slog.String("topic", rp.topic),
		slog.String("video_id", result.VideoID))
	return nil
}

func (rp *ResultPublisher) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if remaining := rp.producer.Flush(int(FLUSH_TIMEOUT.Milliseconds())); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	rp.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}
