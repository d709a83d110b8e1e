package models

import (
	"sort"
	"time"
)

type Mood string

const (
	MoodPositive Mood = "Positive"
	MoodNegative Mood = "Negative"
	MoodNeutral  Mood = "Neutral"
)

// Moods lists every mood in display order.
var Moods = []Mood{MoodPositive, MoodNegative, MoodNeutral}

func (m Mood) Emoji() string {
	switch m {
	case MoodPositive:
		return "😊"
	case MoodNegative:
		return "😡"
	default:
		return "😐"
	}
}

// Display is the label shown in the dashboard table, e.g. "Positive 😊".
func (m Mood) Display() string {
	return string(m) + " " + m.Emoji()
}

type CommentRecord struct {
	Author  string  `json:"author"`
	Comment string  `json:"comment"`
	Score   float64 `json:"score"`
	Mood    Mood    `json:"mood"`
}

// AnalysisResult is the outcome of one analysis run. It is never shared
// between runs.
type AnalysisResult struct {
	VideoID    string          `json:"video_id"`
	Records    []CommentRecord `json:"records"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}

type MoodSummary struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

type MoodCount struct {
	Mood  Mood `json:"mood"`
	Count int  `json:"count"`
}

func (r *AnalysisResult) Empty() bool {
	return r == nil || len(r.Records) == 0
}

func (r *AnalysisResult) Summary() MoodSummary {
	var s MoodSummary
	if r == nil {
		return s
	}

	for _, rec := range r.Records {
		switch rec.Mood {
		case MoodPositive:
			s.Positive++
		case MoodNegative:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	s.Total = s.Positive + s.Negative + s.Neutral
	return s
}

// Distribution returns the non-zero mood counts, largest first. Ties keep
// the order of Moods.
func (r *AnalysisResult) Distribution() []MoodCount {
	s := r.Summary()
	counts := []MoodCount{
		{Mood: MoodPositive, Count: s.Positive},
		{Mood: MoodNegative, Count: s.Negative},
		{Mood: MoodNeutral, Count: s.Neutral},
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	out := counts[:0]
	for _, c := range counts {
		if c.Count > 0 {
			out = append(out, c)
		}
	}
	return out
}
