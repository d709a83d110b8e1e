package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/tubemood/internal/metrics"
	"github.com/spacesedan/tubemood/internal/models"
	"golang.org/x/sync/errgroup"
)

const sinkTimeout = 10 * time.Second

// ResultSink receives every successful analysis. Implemented by the
// DynamoDB archive, the Kafka publisher and the Valkey history.
type ResultSink interface {
	Name() string
	Store(ctx context.Context, result *models.AnalysisResult) error
}

// storeResult hands the result to every sink in parallel. Failures are
// logged and counted, never returned: the user sees the analysis either way.
func (a *Analyzer) storeResult(ctx context.Context, result *models.AnalysisResult) {
	if len(a.sinks) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
	defer cancel()

	var g errgroup.Group
	for _, sink := range a.sinks {
		g.Go(func() error {
			if err := sink.Store(ctx, result); err != nil {
				metrics.SinkFailuresTotal.WithLabelValues(sink.Name()).Inc()
				slog.Warn("[Analysis] Result sink failed",
					slog.String("sink", sink.Name()),
					slog.String("video_id", result.VideoID),
					slog.String("error", err.Error()))
			}
			return nil
		})
	}
	_ = g.Wait()
}
