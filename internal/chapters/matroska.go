package chapters

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type matroskaChapters struct {
	Editions []matroskaEdition `xml:"EditionEntry"`
}

type matroskaEdition struct {
	Default int            `xml:"EditionFlagDefault"`
	Atoms   []matroskaAtom `xml:"ChapterAtom"`
}

type matroskaAtom struct {
	TimeStart string            `xml:"ChapterTimeStart"`
	Displays  []matroskaDisplay `xml:"ChapterDisplay"`
	Atoms     []matroskaAtom    `xml:"ChapterAtom"`
}

type matroskaDisplay struct {
	String string `xml:"ChapterString"`
}

// ParseMatroskaXML reads the chapter XML written by `mkvextract chapters`
// and returns the ChapterAtoms of one edition in document order, nested
// atoms included. The edition flagged default wins, otherwise the first
// edition that has chapters.
func ParseMatroskaXML(r io.Reader) ([]Marker, error) {
	var doc matroskaChapters
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, ErrNoChapters
		}
		return nil, fmt.Errorf("parse chapter xml: %w", err)
	}
	var markers []Marker
	var walk func(atoms []matroskaAtom) error
	walk = func(atoms []matroskaAtom) error {
		for _, atom := range atoms {
			start, err := ParseTimestamp(atom.TimeStart)
			if err != nil {
				return fmt.Errorf("chapter %d: %w", len(markers)+1, err)
			}
			label := strings.TrimSpace(atom.TimeStart)
			for _, display := range atom.Displays {
				if s := strings.TrimSpace(display.String); s != "" {
					label = s
					break
				}
			}
			markers = append(markers, Marker{Start: start, Label: label})
			if err := walk(atom.Atoms); err != nil {
				return err
			}
		}
		return nil
	}
	edition, ok := pickEdition(doc.Editions)
	if !ok {
		return nil, ErrNoChapters
	}
	if err := walk(edition.Atoms); err != nil {
		return nil, err
	}
	return markers, nil
}

func pickEdition(editions []matroskaEdition) (matroskaEdition, bool) {
	for _, edition := range editions {
		if edition.Default == 1 && len(edition.Atoms) > 0 {
			return edition, true
		}
	}
	for _, edition := range editions {
		if len(edition.Atoms) > 0 {
			return edition, true
		}
	}
	return matroskaEdition{}, false
}

// ParseTimestamp parses HH:MM:SS(.fraction) timestamps; a comma decimal
// separator is accepted.
func ParseTimestamp(value string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	parts := strings.Split(cleaned, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	var total float64
	for i, part := range parts {
		n, err := strconv.ParseFloat(part, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		switch i {
		case 0:
			total += n * 3600
		case 1:
			total += n * 60
		default:
			total += n
		}
	}
	return total, nil
}
