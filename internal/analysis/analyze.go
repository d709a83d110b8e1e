package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spacesedan/tubemood/internal/metrics"
	"github.com/spacesedan/tubemood/internal/models"
	"github.com/spacesedan/tubemood/internal/sentiment"
)

// ErrNoData covers every failed analysis: bad or unknown video ID, network
// failure, malformed response, or a video without comments.
var ErrNoData = errors.New("no comments found or invalid video id")

type CommentFetcher interface {
	CommentThreads(ctx context.Context, videoID string) ([]models.CommentThread, error)
}

type Analyzer struct {
	fetcher  CommentFetcher
	sinks    []ResultSink
	validate *validator.Validate
	now      func() time.Time
}

func NewAnalyzer(fetcher CommentFetcher, sinks ...ResultSink) *Analyzer {
	return &Analyzer{
		fetcher:  fetcher,
		sinks:    sinks,
		validate: validator.New(),
		now:      time.Now,
	}
}

// FetchAndScore runs one analysis for videoID. On failure it returns an
// empty, non-nil result together with an error wrapping ErrNoData.
func (a *Analyzer) FetchAndScore(ctx context.Context, videoID string) (*models.AnalysisResult, error) {
	videoID = strings.TrimSpace(videoID)
	result := &models.AnalysisResult{VideoID: videoID, Records: []models.CommentRecord{}}

	if err := a.validate.Var(videoID, "required,max=64,printascii"); err != nil {
		slog.Warn("[Analysis] Rejected video ID", slog.String("video_id", videoID))
		return a.noData(result, fmt.Errorf("invalid video id %q", videoID))
	}

	start := time.Now()
	threads, err := a.fetcher.CommentThreads(ctx, videoID)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Error("[Analysis] Failed to fetch comments",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		return a.noData(result, err)
	}

	if len(threads) == 0 {
		slog.Warn("[Analysis] Video has no comments", slog.String("video_id", videoID))
		return a.noData(result, fmt.Errorf("video %q returned no comments", videoID))
	}

	result.Records = ScoreThreads(threads)
	result.AnalyzedAt = a.now()

	summary := result.Summary()
	metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	for _, mc := range result.Distribution() {
		metrics.CommentsScoredTotal.WithLabelValues(string(mc.Mood)).Add(float64(mc.Count))
	}

	slog.Info("[Analysis] Scored comments",
		slog.String("video_id", videoID),
		slog.Int("total", summary.Total),
		slog.Int("positive", summary.Positive),
		slog.Int("negative", summary.Negative),
		slog.Int("neutral", summary.Neutral),
		slog.Duration("elapsed", time.Since(start)))

	a.storeResult(ctx, result)

	return result, nil
}

func (a *Analyzer) noData(result *models.AnalysisResult, cause error) (*models.AnalysisResult, error) {
	metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeNoData).Inc()
	return result, fmt.Errorf("[Analysis] %w: %w", ErrNoData, cause)
}

// ScoreThreads scores and classifies each comment, keeping API order.
func ScoreThreads(threads []models.CommentThread) []models.CommentRecord {
	records := make([]models.CommentRecord, 0, len(threads))
	for _, thread := range threads {
		score, mood := sentiment.Analyze(thread.TextDisplay)
		records = append(records, models.CommentRecord{
			Author:  thread.Author,
			Comment: thread.TextDisplay,
			Score:   score,
			Mood:    mood,
		})
	}
	return records
}
