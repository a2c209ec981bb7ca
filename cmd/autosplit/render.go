package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"autosplit/internal/analysis"
	"autosplit/internal/chapters"
	"autosplit/internal/episodeplan"
	"autosplit/internal/grouping"
)

var printer = message.NewPrinter(language.English)

func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

func renderAudioReport(out io.Writer, report analysis.AudioReport) {
	printer.Fprintf(out, "Chapters: %d (%d skipped as too short), fingerprinted: %d\n",
		len(report.Chapters), len(report.Skipped), report.Samples)

	if report.MatchCount == 0 {
		fmt.Fprintln(out, "\nNo matching samples found.")
		fmt.Fprintln(out, "Try a looser threshold, e.g. --similarity 0.01 for 99%.")
		return
	}
	printer.Fprintf(out, "\nFound %d matching pairs\n", report.MatchCount)

	if !report.IntroFound {
		fmt.Fprintln(out, "No clear intro sequence found with high similarity.")
		fmt.Fprintln(out, "Top individual matches:")
		fmt.Fprintln(out, renderMatches(report))
		return
	}

	heading := "Intro sequence"
	if report.Provisional {
		heading = "Possible intro sequence (below the strict similarity preset)"
	}
	fmt.Fprintf(out, "\n%s\n", heading)
	fmt.Fprintf(out, "Average similarity: %.3f%%\n", report.Intro.Key)
	fmt.Fprintf(out, "Chapters: %s\n", grouping.JoinChapters(report.Intro.Chapters))

	rows := make([][]string, 0, report.Intro.Size())
	for _, ch := range report.Intro.Chapters {
		start, ok := report.IntroStart(ch)
		if !ok {
			continue
		}
		rows = append(rows, []string{
			strconv.Itoa(ch),
			chapters.FormatTimestamp(start),
			fmt.Sprintf("%.1fs", start),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Chapter", "Start", "Seconds"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	))
	if report.Provisional {
		fmt.Fprintln(out, "Not enough chapters at the strict preset to propose a split.")
		fmt.Fprintln(out, "Top individual matches:")
		fmt.Fprintln(out, renderMatches(report))
	}
}

func renderMatches(report analysis.AudioReport) string {
	rows := make([][]string, 0, len(report.TopMatches))
	for i, m := range report.TopMatches {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.3f%%", m.Similarity),
			fmt.Sprintf("#%d at %s", m.A.Chapter, chapters.FormatTimestamp(m.A.Start)),
			fmt.Sprintf("#%d at %s", m.B.Chapter, chapters.FormatTimestamp(m.B.Start)),
		})
	}
	return renderTable(
		[]string{"#", "Similarity", "Chapter", "Chapter"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft},
	)
}

func renderLengthReport(out io.Writer, report analysis.LengthReport) {
	printer.Fprintf(out, "Chapters: %d, tolerance: %.1fs\n", len(report.Chapters), report.Tolerance)
	if len(report.Groups) == 0 {
		fmt.Fprintln(out, "\nNo repeating chapter-length pattern found.")
		fmt.Fprintln(out, "Try a wider --tolerance or the audio path.")
		return
	}
	rows := make([][]string, 0, len(report.Groups))
	for _, g := range report.Groups {
		rows = append(rows, []string{
			fmt.Sprintf("%.0fs", g.Key),
			strconv.Itoa(g.Size()),
			grouping.JoinChapters(g.Chapters),
			fmt.Sprintf("%d or %d", g.Size(), g.Size()+1),
		})
	}
	fmt.Fprintln(out, tableSpec{
		Title:   "Repeating chapter lengths",
		Headers: []string{"Length", "Count", "Chapters", "Episodes"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignRight, alignRight, alignLeft, alignRight},
	}.render())
}

func renderPlan(out io.Writer, plan *episodeplan.Plan) {
	if plan == nil {
		return
	}
	fmt.Fprintf(out, "\nEpisode start chapters (%s reading):\n", titleCase(string(plan.Style)))
	if plan.Reason != "" {
		fmt.Fprintf(out, "Logic: %s\n", plan.Reason)
	}
	parts := make([]string, len(plan.Starts))
	for i, s := range plan.Starts {
		parts[i] = strconv.Itoa(s)
		if plan.IsInferred(s) {
			parts[i] += " (inferred)"
		}
	}
	fmt.Fprintf(out, "Chapters: %s\n", strings.Join(parts, ", "))
}
