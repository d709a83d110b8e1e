package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/tubemood/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBatchWriter struct {
	calls       []*dynamodb.BatchWriteItemInput
	unprocessed int // calls that hand back their items as unprocessed
	err         error
	onCall      func()
}

func (f *fakeBatchWriter) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.calls = append(f.calls, params)
	if f.onCall != nil {
		f.onCall()
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.unprocessed > 0 {
		f.unprocessed--
		return &dynamodb.BatchWriteItemOutput{UnprocessedItems: params.RequestItems}, nil
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func resultWithRecords(n int) *models.AnalysisResult {
	r := &models.AnalysisResult{
		VideoID:    "yRWdchy43zY",
		AnalyzedAt: time.Unix(1700000000, 0),
	}
	for i := 0; i < n; i++ {
		r.Records = append(r.Records, models.CommentRecord{
			Author:  fmt.Sprintf("@user%d", i),
			Comment: "nice",
			Score:   0.42,
			Mood:    models.MoodPositive,
		})
	}
	return r
}

func newTestArchive(w BatchWriter) *ResultArchive {
	ra := NewResultArchive(w, "CommentSentiment")
	ra.backoff = time.Millisecond
	return ra
}

func TestRecordToDynamoDBItem(t *testing.T) {
	at := time.Unix(1700000000, 0)
	item, err := RecordToDynamoDBItem("vid", 7, models.CommentRecord{
		Author:  "@alice",
		Comment: "great",
		Score:   0.5,
		Mood:    models.MoodPositive,
	}, at)
	require.NoError(t, err)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "vid#007"}, item["content_id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "vid"}, item["video_id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "@alice"}, item["author"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "Positive"}, item["sentiment_label"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1700000000"}, item["created_at"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1700086400"}, item["ttl"])
	assert.Contains(t, item, "sentiment_score")
}

func TestBatchInsertAnalysisChunks(t *testing.T) {
	w := &fakeBatchWriter{}
	ra := newTestArchive(w)

	require.NoError(t, ra.Store(context.Background(), resultWithRecords(50)))

	require.Len(t, w.calls, 2)
	assert.Len(t, w.calls[0].RequestItems["CommentSentiment"], 25)
	assert.Len(t, w.calls[1].RequestItems["CommentSentiment"], 25)
}

func TestBatchInsertAnalysisEmpty(t *testing.T) {
	w := &fakeBatchWriter{}
	ra := newTestArchive(w)

	require.NoError(t, ra.Store(context.Background(), &models.AnalysisResult{VideoID: "vid"}))
	assert.Empty(t, w.calls)
}

func TestBatchInsertAnalysisRetriesUnprocessed(t *testing.T) {
	w := &fakeBatchWriter{unprocessed: 2}
	ra := newTestArchive(w)

	require.NoError(t, ra.Store(context.Background(), resultWithRecords(3)))
	assert.Len(t, w.calls, 3)
}

func TestBatchInsertAnalysisGivesUp(t *testing.T) {
	w := &fakeBatchWriter{unprocessed: 10}
	ra := newTestArchive(w)

	err := ra.Store(context.Background(), resultWithRecords(3))
	require.Error(t, err)
	assert.Len(t, w.calls, 1+maxBatchRetry)
}

func TestBatchInsertAnalysisStopsRetryingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &fakeBatchWriter{unprocessed: 10, onCall: cancel}
	ra := NewResultArchive(w, "CommentSentiment")
	ra.backoff = time.Hour

	start := time.Now()
	err := ra.Store(ctx, resultWithRecords(3))
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Len(t, w.calls, 1)
}

func TestBatchInsertAnalysisWriteError(t *testing.T) {
	boom := errors.New("throttled")
	ra := newTestArchive(&fakeBatchWriter{err: boom})

	err := ra.Store(context.Background(), resultWithRecords(1))
	require.ErrorIs(t, err, boom)
}
