package sentiment

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/tubemood/internal/models"
)

// Mood thresholds on the polarity score. Both bounds are exclusive.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

var (
	analyzer = govader.NewSentimentIntensityAnalyzer()

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)

	// no smartypants: quotes must reach the lexicon unchanged
	htmlRenderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.HTMLFlagsNone,
	})
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	input = urlPattern.ReplaceAllString(input, "")

	return strings.Join(strings.Fields(input), " ")
}

// PlainText is the comment as a reader sees it. YouTube's textDisplay is
// HTML: tags are stripped, entities decoded and <br> becomes a space. The
// text itself is left alone, markdown-looking or not.
func PlainText(input string) string {
	return htmlText(input)
}

// ScoringText reduces a comment to the words VADER should see. On top of
// PlainText, light markdown-style markup is rendered away and links are
// dropped.
func ScoringText(input string) string {
	rendered := blackfriday.Run([]byte(htmlText(input)),
		blackfriday.WithNoExtensions(),
		blackfriday.WithRenderer(htmlRenderer))

	return RemoveLinks(htmlText(string(rendered)))
}

func htmlText(input string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return strings.Join(strings.Fields(input), " ")
	}
	doc.Find("br").ReplaceWithHtml(" ")

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Score returns the VADER compound polarity of the comment text.
func Score(text string) float64 {
	return analyzer.PolarityScores(ScoringText(text)).Compound
}

// Classify buckets a polarity score. NaN lands in Neutral.
func Classify(score float64) models.Mood {
	if score > PositiveThreshold {
		return models.MoodPositive
	} else if score < NegativeThreshold {
		return models.MoodNegative
	}
	return models.MoodNeutral
}

func Analyze(text string) (float64, models.Mood) {
	score := Score(text)
	return score, Classify(score)
}
