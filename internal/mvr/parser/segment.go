// Package parser extracts structured driver facts from raw MVR text.
// Every extractor degrades to a documented default instead of failing:
// garbled OCR output is the common case here, not the exception.
package parser

import (
	"regexp"
	"strings"
)

// minPrimaryLines is the threshold below which the segmenter assumes
// the text arrived flattened (single-run OCR output) and appends a
// secondary re-split.
const minPrimaryLines = 10

// secondarySplit breaks flattened text after runs of spaces that follow
// a capital letter or a colon, the seams left by PDF text extraction.
var secondarySplit = regexp.MustCompile(`([A-Z]|:)\s{2,}`)

// Segment turns raw document text into an ordered sequence of trimmed
// lines. When the primary newline split yields fewer than ten lines,
// segments from the secondary split are appended to the primary list,
// not substituted for it, so downstream consumers see both views.
// Always returns at least one line.
func Segment(raw string) []string {
	primary := splitTrimmed(raw, "\n")

	if len(primary) < minPrimaryLines {
		primary = append(primary, resegment(raw)...)
	}

	if len(primary) == 0 {
		return []string{strings.TrimSpace(raw)}
	}
	return primary
}

func splitTrimmed(raw, sep string) []string {
	var lines []string
	for _, l := range strings.Split(raw, sep) {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// resegment splits on the secondary pattern, keeping the capital letter
// or colon that anchored each seam with its preceding segment.
func resegment(raw string) []string {
	var segs []string
	last := 0
	for _, loc := range secondarySplit.FindAllStringSubmatchIndex(raw, -1) {
		// loc[3] is the end of the anchor group; cut after it
		seg := strings.TrimSpace(raw[last:loc[3]])
		if seg != "" {
			segs = append(segs, seg)
		}
		last = loc[1]
	}
	if tail := strings.TrimSpace(raw[last:]); tail != "" {
		segs = append(segs, tail)
	}
	return segs
}
