package dashboard

import (
	"fmt"

	"github.com/spacesedan/tubemood/internal/models"
	"github.com/spacesedan/tubemood/internal/sentiment"
)

const (
	pageTitle     = "YouTube Sentiment Analyzer"
	noDataWarning = "No comments found or Invalid Video ID. Please try again."
)

type bar struct {
	Label   string
	Count   int
	Percent int // height relative to the tallest bar
}

type row struct {
	User    string
	Comment string
	Mood    string
}

type pageData struct {
	Title   string
	VideoID string
	Recent  []string

	Analyzed     bool
	ErrorMessage string
	Warning      string

	Summary models.MoodSummary
	Bars    []bar
	Rows    []row
}

func newPage(videoID string) *pageData {
	return &pageData{Title: pageTitle, VideoID: videoID}
}

// applyResult fills the metrics, chart and table, or the warning when the
// analysis produced nothing.
func (p *pageData) applyResult(result *models.AnalysisResult, err error) {
	p.Analyzed = true

	if err != nil {
		p.ErrorMessage = fmt.Sprintf("Error fetching data: %v. Please check the Video ID.", err)
	}
	if err != nil || result.Empty() {
		p.Warning = noDataWarning
		return
	}

	p.Summary = result.Summary()
	p.Bars = bars(result.Distribution())

	p.Rows = make([]row, 0, len(result.Records))
	for _, rec := range result.Records {
		p.Rows = append(p.Rows, row{User: rec.Author, Comment: sentiment.PlainText(rec.Comment), Mood: rec.Mood.Display()})
	}
}

func bars(counts []models.MoodCount) []bar {
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c.Count)
	}

	out := make([]bar, 0, len(counts))
	for _, c := range counts {
		out = append(out, bar{
			Label:   c.Mood.Display(),
			Count:   c.Count,
			Percent: c.Count * 100 / maxCount,
		})
	}
	return out
}
