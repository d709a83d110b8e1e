package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resultWithMoods(moods ...Mood) *AnalysisResult {
	r := &AnalysisResult{VideoID: "abc"}
	for _, m := range moods {
		r.Records = append(r.Records, CommentRecord{Author: "a", Comment: "c", Mood: m})
	}
	return r
}

func TestSummary(t *testing.T) {
	r := resultWithMoods(MoodPositive, MoodNegative, MoodNeutral)

	s := r.Summary()
	assert.Equal(t, MoodSummary{Total: 3, Positive: 1, Negative: 1, Neutral: 1}, s)
}

func TestSummaryCountInvariant(t *testing.T) {
	cases := [][]Mood{
		nil,
		{MoodPositive},
		{MoodNeutral, MoodNeutral},
		{MoodNegative, MoodPositive, MoodPositive, MoodNeutral, MoodNegative},
	}

	for _, moods := range cases {
		s := resultWithMoods(moods...).Summary()
		assert.Equal(t, len(moods), s.Total)
		assert.Equal(t, s.Total, s.Positive+s.Negative+s.Neutral)
	}
}

func TestSummaryNilResult(t *testing.T) {
	var r *AnalysisResult
	assert.Equal(t, MoodSummary{}, r.Summary())
	assert.True(t, r.Empty())
	assert.Empty(t, r.Distribution())
}

func TestDistribution(t *testing.T) {
	r := resultWithMoods(MoodNeutral, MoodNegative, MoodNegative, MoodNeutral, MoodNegative)

	assert.Equal(t, []MoodCount{
		{Mood: MoodNegative, Count: 3},
		{Mood: MoodNeutral, Count: 2},
	}, r.Distribution())
}

func TestDistributionTiesKeepMoodOrder(t *testing.T) {
	r := resultWithMoods(MoodNeutral, MoodNegative, MoodPositive)

	assert.Equal(t, []MoodCount{
		{Mood: MoodPositive, Count: 1},
		{Mood: MoodNegative, Count: 1},
		{Mood: MoodNeutral, Count: 1},
	}, r.Distribution())
}

func TestMoodDisplay(t *testing.T) {
	assert.Equal(t, "Positive 😊", MoodPositive.Display())
	assert.Equal(t, "Negative 😡", MoodNegative.Display())
	assert.Equal(t, "Neutral 😐", MoodNeutral.Display())
}
