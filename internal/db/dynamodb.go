package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/tubemood/internal/models"
)

const (
	maxBatchSize  = 25
	maxBatchRetry = 3
	itemTTL       = 24 * time.Hour
)

// BatchWriter is the part of the DynamoDB client the archive uses.
type BatchWriter interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// archivedComment is one scored comment as stored in the results table.
type archivedComment struct {
	ContentID      string  `dynamodbav:"content_id"`
	VideoID        string  `dynamodbav:"video_id"`
	Author         string  `dynamodbav:"author,omitempty"`
	Text           string  `dynamodbav:"text,omitempty"`
	SentimentScore float64 `dynamodbav:"sentiment_score"`
	SentimentLabel string  `dynamodbav:"sentiment_label"`
	CreatedAt      int64   `dynamodbav:"created_at"`
	TTL            int64   `dynamodbav:"ttl"`
}

// ResultArchive writes analysis results to a DynamoDB table, one item per
// comment, expiring after a day.
type ResultArchive struct {
	client  BatchWriter
	table   string
	backoff time.Duration
}

func NewResultArchive(client BatchWriter, table string) *ResultArchive {
	return &ResultArchive{client: client, table: table, backoff: 500 * time.Millisecond}
}

func (ra *ResultArchive) Name() string { return "dynamodb" }

func (ra *ResultArchive) Store(ctx context.Context, result *models.AnalysisResult) error {
	return ra.BatchInsertAnalysis(ctx, result)
}

func RecordToDynamoDBItem(videoID string, index int, record models.CommentRecord, analyzedAt time.Time) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(archivedComment{
		ContentID:      fmt.Sprintf("%s#%03d", videoID, index),
		VideoID:        videoID,
		Author:         record.Author,
		Text:           record.Comment,
		SentimentScore: record.Score,
		SentimentLabel: string(record.Mood),
		CreatedAt:      analyzedAt.Unix(),
		TTL:            analyzedAt.Add(itemTTL).Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to marshal comment record: %w", err)
	}
	return item, nil
}

func (ra *ResultArchive) BatchInsertAnalysis(ctx context.Context, result *models.AnalysisResult) error {
	if result.Empty() {
		return nil
	}

	analyzedAt := result.AnalyzedAt
	if analyzedAt.IsZero() {
		analyzedAt = time.Now()
	}

	for i := 0; i < len(result.Records); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		end := i + maxBatchSize
		if end > len(result.Records) {
			end = len(result.Records)
		}

		writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
		for j, record := range result.Records[i:end] {
			item, err := RecordToDynamoDBItem(result.VideoID, i+j, record, analyzedAt)
			if err != nil {
				return err
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		if err := ra.writeBatch(ctx, writeRequests); err != nil {
			return err
		}
	}

	slog.Info("[DynamoDB] Successfully stored sentiment results",
		slog.String("video_id", result.VideoID),
		slog.Int("count", len(result.Records)))
	return nil
}

func (ra *ResultArchive) writeBatch(ctx context.Context, writeRequests []types.WriteRequest) error {
	out, err := ra.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{
			ra.table: writeRequests,
		},
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to batch write sentiment results: %w", err)
	}

	retryCount := 0
	backoff := ra.backoff
	for len(out.UnprocessedItems) > 0 && retryCount < maxBatchRetry {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled while retrying unprocessed items",
				slog.Int("remaining", len(out.UnprocessedItems[ra.table])))
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2

		slog.Warn("[DynamoDB] Retrying unprocessed sentiment items...",
			slog.Int("attempt", retryCount+1),
			slog.Int("remaining", len(out.UnprocessedItems[ra.table])))

		out, err = ra.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: out.UnprocessedItems,
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Retry error %w", err)
		}
		retryCount++
	}

	if len(out.UnprocessedItems) > 0 {
		slog.Error("[DynamoDB] Some sentiment items failed after retries",
			slog.Int("remaining", len(out.UnprocessedItems[ra.table])))
		return fmt.Errorf("[DynamoDB] %d items unprocessed after retries", len(out.UnprocessedItems[ra.table]))
	}
	return nil
}
