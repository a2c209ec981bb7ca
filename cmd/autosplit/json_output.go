package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"autosplit/internal/analysis"
	"autosplit/internal/chapters"
	"autosplit/internal/episodeplan"
	"autosplit/internal/grouping"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type planJSON struct {
	Starts    []int  `json:"starts"`
	Inferred  []int  `json:"inferred,omitempty"`
	Style     string `json:"style"`
	Reason    string `json:"reason"`
	Selected  bool   `json:"selected"`
	Truncated bool   `json:"truncated"`
	Command   string `json:"command"`
}

type groupJSON struct {
	Chapters []int   `json:"chapters"`
	Key      float64 `json:"key"`
	Source   string  `json:"source"`
}

type matchJSON struct {
	ChapterA   int     `json:"chapter_a"`
	StartA     float64 `json:"start_a"`
	ChapterB   int     `json:"chapter_b"`
	StartB     float64 `json:"start_b"`
	Distance   float64 `json:"distance"`
	Similarity float64 `json:"similarity"`
}

type audioJSON struct {
	RunID       string      `json:"run_id"`
	Source      string      `json:"source"`
	Chapters    int         `json:"chapters"`
	Skipped     []int       `json:"skipped_chapters,omitempty"`
	Samples     int         `json:"samples"`
	Threshold   float64     `json:"distance_threshold"`
	MatchCount  int         `json:"match_count"`
	TopMatches  []matchJSON `json:"top_matches"`
	Intro       *groupJSON  `json:"intro,omitempty"`
	Provisional bool        `json:"provisional,omitempty"`
	Plan        *planJSON   `json:"plan,omitempty"`
}

type lengthJSON struct {
	RunID     string      `json:"run_id"`
	Source    string      `json:"source"`
	Chapters  int         `json:"chapters"`
	Tolerance float64     `json:"tolerance_seconds"`
	Groups    []groupJSON `json:"groups"`
	Plan      *planJSON   `json:"plan,omitempty"`
}

func toGroupJSON(g grouping.Group) groupJSON {
	return groupJSON{Chapters: g.Chapters, Key: g.Key, Source: string(g.Source)}
}

func toPlanJSON(plan *episodeplan.Plan, command string) *planJSON {
	if plan == nil {
		return nil
	}
	return &planJSON{
		Starts:    plan.Starts,
		Inferred:  plan.Inferred,
		Style:     string(plan.Style),
		Reason:    plan.Reason,
		Selected:  plan.Selected,
		Truncated: plan.Truncated,
		Command:   command,
	}
}

func chapterIndices(list []chapters.Chapter) []int {
	out := make([]int, 0, len(list))
	for _, ch := range list {
		out = append(out, ch.Index)
	}
	return out
}

func audioPayload(report analysis.AudioReport, command string) audioJSON {
	payload := audioJSON{
		RunID:       report.RunID,
		Source:      report.Source,
		Chapters:    len(report.Chapters),
		Skipped:     chapterIndices(report.Skipped),
		Samples:     report.Samples,
		Threshold:   report.Threshold,
		MatchCount:  report.MatchCount,
		TopMatches:  make([]matchJSON, 0, len(report.TopMatches)),
		Provisional: report.Provisional,
		Plan:        toPlanJSON(report.Plan, command),
	}
	for _, m := range report.TopMatches {
		payload.TopMatches = append(payload.TopMatches, matchJSON{
			ChapterA:   m.A.Chapter,
			StartA:     m.A.Start,
			ChapterB:   m.B.Chapter,
			StartB:     m.B.Start,
			Distance:   m.Distance,
			Similarity: m.Similarity,
		})
	}
	if report.IntroFound {
		g := toGroupJSON(report.Intro)
		payload.Intro = &g
	}
	return payload
}

func lengthPayload(report analysis.LengthReport, command string) lengthJSON {
	payload := lengthJSON{
		RunID:     report.RunID,
		Source:    report.Source,
		Chapters:  len(report.Chapters),
		Tolerance: report.Tolerance,
		Groups:    make([]groupJSON, 0, len(report.Groups)),
		Plan:      toPlanJSON(report.Plan, command),
	}
	for _, g := range report.Groups {
		payload.Groups = append(payload.Groups, toGroupJSON(g))
	}
	return payload
}
