package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/tubemood/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

var ErrMissingAPIKey = errors.New("[YouTubeClient] API key is missing")

type YouTubeClient struct {
	Service *youtube.Service
}

// NewYouTubeClient builds a Data API v3 client authenticated with a static
// API key. Extra options are appended after the key, tests use them to
// point the client at a local server.
func NewYouTubeClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeClient, error) {
	if apiKey == "" {
		slog.Error("[YouTubeClient] API key is missing")
		return nil, ErrMissingAPIKey
	}

	clientOpts := append([]option.ClientOption{
		option.WithAPIKey(apiKey),
		option.WithUserAgent(USER_AGENT),
	}, opts...)

	svc, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("[YouTubeClient] failed to create service: %w", err)
	}

	slog.Info("[YouTubeClient] YouTube client initialized")
	return &YouTubeClient{Service: svc}, nil
}

// CommentThreads fetches the first page (at most COMMENT_PAGE_SIZE) of
// top-level comment threads for a video. Replies are not requested.
func (yc *YouTubeClient) CommentThreads(ctx context.Context, videoID string) ([]models.CommentThread, error) {
	slog.Info("[YouTubeClient] Fetching comment threads", slog.String("video_id", videoID))
	start := time.Now()

	resp, err := yc.Service.CommentThreads.
		List([]string{COMMENT_THREAD_PART}).
		VideoId(videoID).
		MaxResults(COMMENT_PAGE_SIZE).
		Context(ctx).
		Do()
	if err != nil {
		slog.Warn("[YouTubeClient] Comment thread request failed",
			slog.String("video_id", videoID),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("[YouTubeClient] failed to list comment threads: %w", err)
	}

	threads := make([]models.CommentThread, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Snippet == nil || item.Snippet.TopLevelComment == nil ||
			item.Snippet.TopLevelComment.Snippet == nil {
			var threadID string
			if item != nil {
				threadID = item.Id
			}
			slog.Warn("[YouTubeClient] Comment thread without top-level snippet",
				slog.String("video_id", videoID),
				slog.String("thread_id", threadID))
			return nil, fmt.Errorf("[YouTubeClient] malformed comment thread %q", threadID)
		}
		comment := item.Snippet.TopLevelComment

		threads = append(threads, models.CommentThread{
			CommentID:   comment.Id,
			Author:      comment.Snippet.AuthorDisplayName,
			TextDisplay: comment.Snippet.TextDisplay,
			LikeCount:   comment.Snippet.LikeCount,
			PublishedAt: comment.Snippet.PublishedAt,
		})
	}

	slog.Info("[YouTubeClient] Fetched comment threads",
		slog.String("video_id", videoID),
		slog.Int("count", len(threads)),
		slog.Duration("elapsed", time.Since(start)))

	return threads, nil
}
