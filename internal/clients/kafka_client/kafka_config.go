package kafka_client

import "github.com/confluentinc/confluent-kafka-go/kafka"

type KafkaConfig struct {
	Broker string
	Topic  string

	// Overrides is merged over the producer defaults.
	Overrides kafka.ConfigMap
}

func NewKafkaConfig(broker, topic string) KafkaConfig {
	if topic == "" {
		topic = KAFKA_TOPIC_SENTIMENT_RESULTS
	}
	return KafkaConfig{Broker: broker, Topic: topic}
}
