package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spacesedan/tubemood/config"
	"github.com/spacesedan/tubemood/internal/models"
	"github.com/spacesedan/tubemood/internal/sentiment"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(settings func() *config.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <video-id>",
		Short: "Analyze one video and print the results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), settings())
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.analyzer.FetchAndScore(cmd.Context(), args[0])
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error fetching data: %v. Please check the Video ID.\n", err)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}
}

func printResult(w io.Writer, result *models.AnalysisResult) error {
	if result.Empty() {
		_, err := fmt.Fprintln(w, "No comments found or Invalid Video ID. Please try again.")
		return err
	}

	s := result.Summary()
	fmt.Fprintf(w, "Total Comments: %d  Positive: %d  Negative: %d  Neutral: %d\n\n",
		s.Total, s.Positive, s.Negative, s.Neutral)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "USER\tMOOD\tSCORE\tCOMMENT")
	for _, rec := range result.Records {
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%s\n", rec.Author, rec.Mood.Display(), rec.Score, truncate(sentiment.PlainText(rec.Comment), 80))
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
