package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/tubemood/internal/models"
	"github.com/valkey-io/valkey-go"
)

const (
	VALKEY_RECENT_VIDEOS_KEY = "youtube:recent_videos"
	RECENT_VIDEOS_LIMIT      = 10
	RECENT_VIDEOS_TTL        = 24 * time.Hour
)

type ValkeyOptions struct {
	Address  string
	Password string
	TLS      bool
}

// ValkeyClient keeps the list of recently analyzed video IDs shown under the
// dashboard form. Results themselves are never stored here.
type ValkeyClient struct {
	Client valkey.Client
}

func NewValkeyClient(ctx context.Context, vo ValkeyOptions) (*ValkeyClient, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{vo.Address},
		Password:         vo.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if vo.TLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", vo.Address))
	return &ValkeyClient{Client: client}, nil
}

func (vc *ValkeyClient) Close() {
	vc.Client.Close()
}

func (vc *ValkeyClient) Name() string { return "valkey" }

func (vc *ValkeyClient) Store(ctx context.Context, result *models.AnalysisResult) error {
	return vc.MarkAnalyzed(ctx, result.VideoID)
}

// MarkAnalyzed moves videoID to the front of the recent list, trimming it
// to RECENT_VIDEOS_LIMIT entries.
func (vc *ValkeyClient) MarkAnalyzed(ctx context.Context, videoID string) error {
	responses := vc.DoMultiWithRetry(ctx, func() []valkey.Completed {
		return recentVideoCommands(vc.Client, videoID)
	}, MAX_RETRIES)
	for _, res := range responses {
		if err := res.Error(); err != nil {
			return fmt.Errorf("[ValkeyClient] failed to record video: %w", err)
		}
	}

	slog.Debug("[ValkeyClient] Recorded analyzed video", slog.String("video_id", videoID))
	return nil
}

func recentVideoCommands(c valkey.Client, videoID string) []valkey.Completed {
	return []valkey.Completed{
		c.B().Lrem().Key(VALKEY_RECENT_VIDEOS_KEY).Count(0).Element(videoID).Build(),
		c.B().Lpush().Key(VALKEY_RECENT_VIDEOS_KEY).Element(videoID).Build(),
		c.B().Ltrim().Key(VALKEY_RECENT_VIDEOS_KEY).Start(0).Stop(RECENT_VIDEOS_LIMIT - 1).Build(),
		c.B().Expire().Key(VALKEY_RECENT_VIDEOS_KEY).Seconds(int64(RECENT_VIDEOS_TTL.Seconds())).Build(),
	}
}

func (vc *ValkeyClient) RecentVideos(ctx context.Context) ([]string, error) {
	res := vc.DoWithRetry(ctx, func() valkey.Completed {
		return vc.Client.B().Lrange().Key(VALKEY_RECENT_VIDEOS_KEY).Start(0).Stop(RECENT_VIDEOS_LIMIT - 1).Build()
	}, MAX_RETRIES)

	ids, err := res.AsStrSlice()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("[ValkeyClient] failed to read recent videos: %w", err)
	}
	return ids, nil
}

// DoMultiWithRetry retries connection errors only. Commands are rebuilt for
// every attempt since valkey recycles them once sent.
func (vc *ValkeyClient) DoMultiWithRetry(ctx context.Context, build func() []valkey.Completed, retries int) []valkey.ValkeyResult {
	var results []valkey.ValkeyResult

	for i := 0; i < retries; i++ {
		results = vc.Client.DoMulti(ctx, build()...)
		hasErr := false
		for _, r := range results {
			if r.Error() != nil {
				hasErr = true
				slog.Warn("[ValkeyClient] Do Multi failed",
					slog.Int("attempt", i+1),
					slog.String("error", r.Error().Error()))
				break
			}
		}
		if !hasErr || !isConnectionError(firstError(results)) {
			break
		}
		time.Sleep(RETRY_BACKOFF)
	}

	return results
}

func (vc *ValkeyClient) DoWithRetry(ctx context.Context, build func() valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.Client.Do(ctx, build())
		if result.Error() == nil || !isConnectionError(result.Error()) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(RETRY_BACKOFF)
	}

	return result
}

func firstError(results []valkey.ValkeyResult) error {
	for _, r := range results {
		if err := r.Error(); err != nil {
			return err
		}
	}
	return nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
