package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spacesedan/tubemood/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoData = errors.New("no comments found or invalid video id")

type stubAnalyzer struct {
	result *models.AnalysisResult
	err    error
	calls  []string
}

func (s *stubAnalyzer) FetchAndScore(ctx context.Context, videoID string) (*models.AnalysisResult, error) {
	s.calls = append(s.calls, videoID)
	if s.err != nil {
		return &models.AnalysisResult{VideoID: videoID}, s.err
	}
	return s.result, nil
}

type stubRecent struct {
	ids []string
	err error
}

func (s stubRecent) RecentVideos(ctx context.Context) ([]string, error) {
	return s.ids, s.err
}

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		VideoID: "yRWdchy43zY",
		Records: []models.CommentRecord{
			{Author: "@fan", Comment: "love it<br>so much", Score: 0.8, Mood: models.MoodPositive},
			{Author: "@critic", Comment: "awful", Score: -0.6, Mood: models.MoodNegative},
			{Author: "@bystander", Comment: "<script>alert(1)</script>", Score: 0, Mood: models.MoodNeutral},
		},
	}
}

func serve(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestIndex(t *testing.T) {
	a := &stubAnalyzer{}
	s := NewServer(a, "yRWdchy43zY", stubRecent{ids: []string{"abc123", "def456"}})

	rec := serve(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "YouTube Sentiment Analyzer")
	assert.Contains(t, body, `value="yRWdchy43zY"`)
	assert.Contains(t, body, "Analyze Comments ✨")
	assert.Contains(t, body, `href="/analyze?video_id=abc123"`)
	assert.NotContains(t, body, "Sentiment Distribution")
	assert.Empty(t, a.calls)
}

func TestIndexWithoutHistory(t *testing.T) {
	s := NewServer(&stubAnalyzer{}, "yRWdchy43zY", stubRecent{err: errors.New("valkey down")})

	rec := serve(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Recent:")
}

func TestAnalyze(t *testing.T) {
	a := &stubAnalyzer{result: sampleResult()}
	s := NewServer(a, "yRWdchy43zY", nil)

	rec := serve(t, s, "/analyze?video_id=yRWdchy43zY")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"yRWdchy43zY"}, a.calls)

	body := rec.Body.String()
	assert.Contains(t, body, `<div class="value" id="metric-total">3</div>`)
	assert.Contains(t, body, `<div class="value" id="metric-positive">1</div>`)
	assert.Contains(t, body, `<div class="value" id="metric-negative">1</div>`)
	assert.Contains(t, body, "Sentiment Distribution")
	assert.Contains(t, body, "Comment Insights")
	assert.Contains(t, body, "<td>@fan</td><td>love it so much</td><td>Positive 😊</td>")
	assert.Contains(t, body, "Negative 😡")
	assert.Contains(t, body, "Neutral 😐")
	assert.NotContains(t, body, "<script>alert(1)")
	assert.NotContains(t, body, noDataWarning)
}

func TestAnalyzeShowsCommentTextUnaltered(t *testing.T) {
	result := &models.AnalysisResult{
		VideoID: "yRWdchy43zY",
		Records: []models.CommentRecord{
			{Author: "@first", Comment: "#1 fan of this channel", Score: 0.3, Mood: models.MoodPositive},
			{Author: "@dev", Comment: "my_var_name_here is great", Score: 0.6, Mood: models.MoodPositive},
			{Author: "@rater", Comment: "rated 5*5*5 stars", Score: 0, Mood: models.MoodNeutral},
			{Author: "@early", Comment: "1. first comment!", Score: 0, Mood: models.MoodNeutral},
		},
	}
	s := NewServer(&stubAnalyzer{result: result}, "yRWdchy43zY", nil)

	rec := serve(t, s, "/analyze?video_id=yRWdchy43zY")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<td>@first</td><td>#1 fan of this channel</td>")
	assert.Contains(t, body, "<td>@dev</td><td>my_var_name_here is great</td>")
	assert.Contains(t, body, "<td>@rater</td><td>rated 5*5*5 stars</td>")
	assert.Contains(t, body, "<td>@early</td><td>1. first comment!</td>")
}

func TestAnalyzeNoData(t *testing.T) {
	a := &stubAnalyzer{err: fmt.Errorf("[Analysis] %w: videoNotFound", errNoData)}
	s := NewServer(a, "yRWdchy43zY", nil)

	rec := serve(t, s, "/analyze?video_id=nope")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, noDataWarning)
	assert.Contains(t, body, "Error fetching data:")
	assert.Contains(t, body, `value="nope"`)
	assert.NotContains(t, body, "Sentiment Distribution")
}

func TestAnalyzeEmptyResultWithoutError(t *testing.T) {
	a := &stubAnalyzer{result: &models.AnalysisResult{VideoID: "quiet"}}
	s := NewServer(a, "yRWdchy43zY", nil)

	body := serve(t, s, "/analyze?video_id=quiet").Body.String()
	assert.Contains(t, body, noDataWarning)
	assert.NotContains(t, body, "Error fetching data:")
}

func TestAPIAnalyze(t *testing.T) {
	s := NewServer(&stubAnalyzer{result: sampleResult()}, "yRWdchy43zY", nil)

	rec := serve(t, s, "/api/analyze?video_id=yRWdchy43zY")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "yRWdchy43zY", resp.VideoID)
	assert.Equal(t, models.MoodSummary{Total: 3, Positive: 1, Negative: 1, Neutral: 1}, resp.Summary)
	assert.Len(t, resp.Distribution, 3)
	assert.Len(t, resp.Records, 3)
}

func TestAPIAnalyzeNoData(t *testing.T) {
	s := NewServer(&stubAnalyzer{err: errNoData}, "yRWdchy43zY", nil)

	rec := serve(t, s, "/api/analyze?video_id=nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, noDataWarning, resp.Error)
	assert.Equal(t, errNoData.Error(), resp.Detail)
}

func TestHealthAndMetrics(t *testing.T) {
	s := NewServer(&stubAnalyzer{}, "yRWdchy43zY", nil)

	rec := serve(t, s, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tubemood_http_requests_total")
}

func TestBars(t *testing.T) {
	got := bars([]models.MoodCount{
		{Mood: models.MoodPositive, Count: 4},
		{Mood: models.MoodNeutral, Count: 2},
		{Mood: models.MoodNegative, Count: 1},
	})

	assert.Equal(t, []bar{
		{Label: "Positive 😊", Count: 4, Percent: 100},
		{Label: "Neutral 😐", Count: 2, Percent: 50},
		{Label: "Negative 😡", Count: 1, Percent: 25},
	}, got)
	assert.Empty(t, bars(nil))
}
