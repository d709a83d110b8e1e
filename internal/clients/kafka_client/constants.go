package kafka_client

import "time"

const (
	KAFKA_TOPIC_SENTIMENT_RESULTS = "sentiment-results" // one message per finished analysis
)

const (
	MAX_RETRIES         = 3
	FLUSH_TIMEOUT       = 5 * time.Second
	RETRY_FLUSH_TIMEOUT = 100 * time.Millisecond // drain the local queue between Produce attempts
)
