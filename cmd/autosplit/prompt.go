package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"autosplit/internal/episodeplan"
	"autosplit/internal/grouping"
)

var errInputClosed = errors.New("input closed before an answer was given")

// prompter asks line-oriented questions on a terminal.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return line, nil
			}
			fmt.Fprintln(p.out)
			return "", errInputClosed
		}
		return "", fmt.Errorf("read answer: %w", err)
	}
	return line, nil
}

// confirm accepts y or yes; anything else declines.
func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question + " (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// choose asks for a number between 1 and n, re-prompting on invalid input.
// It returns the zero-based index, or quit when the user enters q.
func (p *prompter) choose(question string, n int) (int, bool, error) {
	for {
		answer, err := p.ask(fmt.Sprintf("%s (1-%d) or q to quit: ", question, n))
		if err != nil {
			return 0, false, err
		}
		if strings.EqualFold(answer, "q") {
			return 0, true, nil
		}
		if v, err := strconv.Atoi(answer); err == nil && v >= 1 && v <= n {
			return v - 1, false, nil
		}
		fmt.Fprintf(p.out, "Invalid choice. Please enter 1-%d or q.\n", n)
	}
}

// positiveInt asks for a positive integer, re-prompting on invalid input.
func (p *prompter) positiveInt(question string) (int, bool, error) {
	for {
		answer, err := p.ask(question + " (number / q to quit): ")
		if err != nil {
			return 0, false, err
		}
		if strings.EqualFold(answer, "q") {
			return 0, true, nil
		}
		v, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a valid number.")
			continue
		}
		if v <= 0 {
			fmt.Fprintln(p.out, "Please enter a positive integer.")
			continue
		}
		return v, false, nil
	}
}

type splitAction int

const (
	splitRun splitAction = iota + 1
	splitPrint
	splitSkip
)

func (p *prompter) splitAction() (splitAction, error) {
	fmt.Fprintln(p.out, "Options:")
	fmt.Fprintln(p.out, "  1. Run the command now")
	fmt.Fprintln(p.out, "  2. Print the command")
	fmt.Fprintln(p.out, "  3. Skip")
	for {
		answer, err := p.ask("Enter choice (1-3): ")
		if err != nil {
			return splitSkip, err
		}
		switch answer {
		case "1":
			return splitRun, nil
		case "2":
			return splitPrint, nil
		case "3":
			return splitSkip, nil
		}
		fmt.Fprintln(p.out, "Invalid choice. Please enter 1, 2, or 3.")
	}
}

// terminalDecider lets the operator pick a group when several could fit.
type terminalDecider struct {
	prompt *prompter
}

func (d terminalDecider) Decide(_ context.Context, req episodeplan.DecisionRequest) (episodeplan.Selection, error) {
	out := d.prompt.out
	fmt.Fprintf(out, "\nRepeating chapter groups (expecting %d episodes):\n", req.Expected)
	fmt.Fprintln(out, renderCandidates(req))
	index, quit, err := d.prompt.choose("Select ending-marker group", len(req.Candidates))
	if err != nil {
		return episodeplan.Selection{}, err
	}
	return episodeplan.Selection{Index: index, Quit: quit}, nil
}

func renderCandidates(req episodeplan.DecisionRequest) string {
	rows := make([][]string, 0, len(req.Candidates))
	for i, c := range req.Candidates {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			c.Group.Describe(),
			grouping.JoinChapters(c.Group.Chapters),
			fmt.Sprintf("%d or %d", c.OutroEpisodes, c.IntroEpisodes),
			candidateNote(c, req.Expected),
		})
	}
	return renderTable(
		[]string{"#", "Group", "Chapters", "Episodes", "Fit"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func candidateNote(c episodeplan.Candidate, expected int) string {
	switch {
	case c.ExactOutro(expected):
		return "matches as outro"
	case c.ExactIntro(expected):
		return "matches as intro"
	default:
		diff := c.OutroEpisodes - expected
		if c.Closest(expected) == episodeplan.StyleIntro {
			diff = c.IntroEpisodes - expected
		}
		return fmt.Sprintf("%+d episodes", diff)
	}
}
