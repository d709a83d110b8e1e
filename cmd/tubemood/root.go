package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spacesedan/tubemood/config"
	"github.com/spacesedan/tubemood/internal/analysis"
	"github.com/spacesedan/tubemood/internal/clients"
	"github.com/spacesedan/tubemood/internal/clients/kafka_client"
	"github.com/spacesedan/tubemood/internal/db"
	"github.com/spacesedan/tubemood/internal/logging"
	"github.com/spf13/cobra"
)

type app struct {
	settings *config.Settings
	analyzer *analysis.Analyzer
	history  *clients.ValkeyClient
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newRootCmd() *cobra.Command {
	var settings *config.Settings

	root := &cobra.Command{
		Use:           "tubemood",
		Short:         "Sentiment dashboard for YouTube comments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.InitLogger(logging.DEFAULT_LEVEL)
			config.LoadEnv(config.AppEnv())

			s, err := config.Load()
			if err != nil {
				if errors.Is(err, config.ErrMissingAPIKey) {
					slog.Error("🚨 API Key not found! Set YOUTUBE_API_KEY in config/envs/.env." + config.AppEnv() + " or the environment.")
				}
				return err
			}

			logging.InitLogger(s.LogLevel)
			settings = s
			return nil
		},
	}

	root.AddCommand(newServeCmd(func() *config.Settings { return settings }))
	root.AddCommand(newAnalyzeCmd(func() *config.Settings { return settings }))
	return root
}

// newApp wires the YouTube client and every configured result sink.
// Optional sinks that fail to start are logged and skipped.
func newApp(ctx context.Context, s *config.Settings) (*app, error) {
	yc, err := clients.NewYouTubeClient(ctx, s.YouTubeAPIKey)
	if err != nil {
		return nil, fmt.Errorf("[Main] %w", err)
	}

	a := &app{settings: s}
	var sinks []analysis.ResultSink

	if s.ArchiveEnabled() {
		dynamo, err := clients.NewDynamoDBClient(ctx, s.AWSRegion, s.AWSEndpoint)
		if err != nil {
			slog.Warn("[Main] DynamoDB archive disabled", slog.String("error", err.Error()))
		} else {
			sinks = append(sinks, db.NewResultArchive(dynamo, s.ResultsTable))
		}
	}

	if s.KafkaEnabled() {
		publisher, err := kafka_client.NewResultPublisher(kafka_client.NewKafkaConfig(s.KafkaBroker, s.KafkaTopic))
		if err != nil {
			slog.Warn("[Main] Kafka publishing disabled", slog.String("error", err.Error()))
		} else {
			sinks = append(sinks, publisher)
			a.closers = append(a.closers, publisher.Close)
		}
	}

	if s.HistoryEnabled() {
		history, err := clients.NewValkeyClient(ctx, clients.ValkeyOptions{
			Address:  s.ValkeyAddress,
			Password: s.ValkeyPassword,
			TLS:      s.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[Main] Valkey history disabled", slog.String("error", err.Error()))
		} else {
			sinks = append(sinks, history)
			a.history = history
			a.closers = append(a.closers, history.Close)
		}
	}

	a.analyzer = analysis.NewAnalyzer(yc, sinks...)
	return a, nil
}
