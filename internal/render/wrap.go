package render

import (
	"strings"

	"golang.org/x/text/width"
)

// RuneCells is the number of glyph cells r occupies: two for East Asian
// wide and fullwidth runes, one otherwise.
func RuneCells(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// TextCells is the cell width of s.
func TextCells(s string) int {
	n := 0
	for _, r := range s {
		n += RuneCells(r)
	}
	return n
}

// Wrap breaks s into lines of at most maxCells cells, on spaces where it
// can and inside words only when a single word is too long.
func Wrap(s string, maxCells int) []string {
	if maxCells < 1 {
		maxCells = 1
	}
	var lines []string
	var line strings.Builder
	lineCells := 0
	flush := func() {
		if lineCells > 0 {
			lines = append(lines, line.String())
		}
		line.Reset()
		lineCells = 0
	}

	for _, word := range strings.Fields(s) {
		wc := TextCells(word)
		if lineCells > 0 && lineCells+1+wc <= maxCells {
			line.WriteByte(' ')
			line.WriteString(word)
			lineCells += 1 + wc
			continue
		}
		flush()
		if wc <= maxCells {
			line.WriteString(word)
			lineCells = wc
			continue
		}
		for _, r := range word {
			rc := RuneCells(r)
			if lineCells+rc > maxCells {
				flush()
			}
			line.WriteRune(r)
			lineCells += rc
		}
	}
	flush()
	return lines
}
