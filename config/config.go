package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var ErrMissingAPIKey = errors.New("YOUTUBE_API_KEY is not set")

const (
	DefaultHTTPAddr    = ":8501"
	DefaultVideoID     = "yRWdchy43zY"
	DefaultAWSRegion   = "us-west-2"
	DefaultResultTopic = "sentiment-results"
)

// Settings is everything the dashboard reads from the environment. The
// DynamoDB, Kafka and Valkey sections are optional and stay disabled while
// their address is empty.
type Settings struct {
	YouTubeAPIKey  string
	HTTPAddr       string `validate:"required"`
	DefaultVideoID string `validate:"required,max=64,printascii"`
	LogLevel       string `validate:"oneof=debug info warn error"`

	ResultsTable string
	AWSEndpoint  string `validate:"omitempty,url"`
	AWSRegion    string `validate:"required_with=ResultsTable"`

	KafkaBroker string
	KafkaTopic  string `validate:"required_with=KafkaBroker"`

	ValkeyAddress  string `validate:"omitempty,hostname_port"`
	ValkeyPassword string
	ValkeyTLS      bool
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("http_addr", DefaultHTTPAddr)
	v.SetDefault("default_video_id", DefaultVideoID)
	v.SetDefault("log_level", "info")
	v.SetDefault("aws_region", DefaultAWSRegion)
	v.SetDefault("kafka_topic_sentiment_results", DefaultResultTopic)
	v.SetDefault("valkey_tls", false)
	return v
}

// Load reads Settings from the process environment. Call LoadEnv first to
// pull in the .env file for the current APP_ENV.
func Load() (*Settings, error) {
	v := newViper()

	s := &Settings{
		YouTubeAPIKey:  strings.TrimSpace(v.GetString("youtube_api_key")),
		HTTPAddr:       v.GetString("http_addr"),
		DefaultVideoID: v.GetString("default_video_id"),
		LogLevel:       strings.ToLower(v.GetString("log_level")),
		ResultsTable:   v.GetString("results_table"),
		AWSEndpoint:    v.GetString("aws_endpoint"),
		AWSRegion:      v.GetString("aws_region"),
		KafkaBroker:    v.GetString("kafka_broker"),
		KafkaTopic:     v.GetString("kafka_topic_sentiment_results"),
		ValkeyAddress:  v.GetString("valkey_init_address"),
		ValkeyPassword: v.GetString("valkey_password"),
		ValkeyTLS:      v.GetBool("valkey_tls"),
	}

	if s.YouTubeAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("[Config] invalid settings: %w", err)
	}

	return s, nil
}

func (s *Settings) ArchiveEnabled() bool { return s.ResultsTable != "" }

func (s *Settings) KafkaEnabled() bool { return s.KafkaBroker != "" }

func (s *Settings) HistoryEnabled() bool { return s.ValkeyAddress != "" }
