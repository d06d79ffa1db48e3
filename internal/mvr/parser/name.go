package parser

import (
	"regexp"
	"strings"
)

// boilerplateTerms disqualify a line from being treated as a bare name.
// They cover state names and the administrative vocabulary that MVR
// headers are built from.
var boilerplateTerms = []string{
	"california", "texas", "arizona",
	"department", "motor", "vehicle", "license",
	"record", "report", "state", "driving",
}

// nameStopPatterns mark where a value after a "Name:" label ends and
// the next field begins.
var nameStopPatterns = []string{
	"reference:", "dob:", "address:", "license:", "phone:", "email:",
	"search id", "date ordered", "date completed", "results",
	"motor vehicle", "california", "texas", "arizona",
	"*", "document(s)", "the following", "search type",
}

// addressTerms exclude mailing-address fragments from the label-adjacent
// name strategy.
var addressTerms = []string{
	"street", "suite", "avenue", "blvd", "drive", " ave ", " st ", " rd ",
}

var (
	nameSearchedSameLine = regexp.MustCompile(`(?i)name searched\s+(.+?)(?:\s{2,}|$)`)
	allCapsLine          = regexp.MustCompile(`^([A-Z][A-Z]+\s+[A-Z][A-Z]+(?:\s+[A-Z][A-Z]+)?)$`)
	nameLabelValue       = regexp.MustCompile(`(?i)(?:driver\s+)?name:\s*(.+)`)
	mixedCaseLine        = regexp.MustCompile(`^([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)$`)
	lastFirstLine        = regexp.MustCompile(`^([A-Z]+,\s*[A-Z]+(?:\s+[A-Z]+)?)$`)
	embeddedAllCaps      = regexp.MustCompile(`\b([A-Z][A-Z]+\s+[A-Z][A-Z]+(?:\s+[A-Z][A-Z]+)?)\b`)
	adjacentMixedCase    = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	directNameLine       = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3})$`)
	broadName            = regexp.MustCompile(`([A-Z][a-z]{2,}\s+[A-Z][a-z]{2,}(?:\s+[A-Z][a-z]{2,})?)`)
	multiSpace           = regexp.MustCompile(`\s{2,}`)
	trailingNonLetter    = regexp.MustCompile(`[^a-zA-Z\s]+$`)

	// full-text fallbacks, tried only after every line strategy failed.
	// Case insensitivity covers the label only: the captured value must
	// be capitalized, or the match would swallow lowercase field text
	// following the name.
	fullTextNameSearched = regexp.MustCompile(`(?i:name searched)\s+([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+){1,3})`)
	fullTextNameLabel    = regexp.MustCompile(`(?i:name:)\s*([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+){1,3})`)
	fullTextLastFirst    = regexp.MustCompile(`\b([A-Z]{2,}),\s+([A-Z]{2,}(?:\s+[A-Z]{2,})?)\b`)
)

// nameStrategy is one heuristic over the line sequence. Strategies run
// in fixed priority order and the first non-empty result wins.
type nameStrategy func(lines []string, fullText string) string

var nameStrategies = []nameStrategy{
	nameFromNameSearched,
	nameFromAllCapsLine,
	nameFromLabel,
	nameFromMixedCaseLine,
	nameFromLastFirst,
	nameFromEmbeddedCaps,
	nameNearNameWord,
	nameFromDirectLine,
	nameFromBroadScan,
	nameFromFullText,
}

// ExtractName runs the strategy cascade and returns the first hit, or
// an empty string when nothing matched. It never fails.
func ExtractName(lines []string, fullText string) string {
	for _, strat := range nameStrategies {
		if name := strat(lines, fullText); name != "" {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

func containsBoilerplate(lower string) bool {
	for _, term := range boilerplateTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func wordCountOK(name string) bool {
	n := len(strings.Fields(name))
	return n >= 2 && n <= 4
}

// nameFromNameSearched handles the "Name Searched" label, value on the
// same line or on the next one.
func nameFromNameSearched(lines []string, _ string) string {
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "name searched") {
			continue
		}

		if m := nameSearchedSameLine.FindStringSubmatch(line); m != nil {
			candidate := strings.TrimSpace(m[1])
			words := strings.Fields(candidate)
			if len(words) >= 2 && len(words) <= 4 && allWordsShort(words, 20) {
				return candidate
			}
		}

		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			words := strings.Fields(next)
			if len(next) > 2 && len(words) >= 2 && len(words) <= 4 {
				if len(words) > 4 {
					words = words[:4]
				}
				return strings.Join(words, " ")
			}
		}
	}
	return ""
}

func allWordsShort(words []string, max int) bool {
	for _, w := range words {
		if len(w) < 1 || len(w) > max {
			return false
		}
	}
	return true
}

// nameFromAllCapsLine matches a bare "JOHN DOE" style line early in the
// document.
func nameFromAllCapsLine(lines []string, _ string) string {
	for i, line := range lines {
		if i >= 50 {
			break
		}
		m := allCapsLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		words := strings.Fields(m[1])
		if len(words) < 2 || len(words) > 4 || !allWordsMinLen(words, 2) {
			continue
		}
		if containsBoilerplate(strings.ToLower(line)) {
			continue
		}
		return m[1]
	}
	return ""
}

func allWordsMinLen(words []string, min int) bool {
	for _, w := range words {
		if len(w) < min {
			return false
		}
	}
	return true
}

// nameFromLabel handles "Name:" and "Driver Name:" with a stop-pattern
// scan, falling back to the following line.
func nameFromLabel(lines []string, _ string) string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "driver name:") && !strings.Contains(lower, "name:") {
			continue
		}

		if m := nameLabelValue.FindStringSubmatch(line); m != nil {
			candidate := trimAtStopPattern(strings.TrimSpace(m[1]))
			if parts := multiSpace.Split(candidate, -1); len(parts) > 1 {
				candidate = strings.TrimSpace(parts[0])
			}
			candidate = strings.TrimSpace(trailingNonLetter.ReplaceAllString(candidate, ""))
			if len(candidate) >= 3 && len(candidate) <= 50 && wordCountOK(candidate) {
				return candidate
			}
			continue
		}

		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if len(next) <= 2 {
				continue
			}
			if idx := strings.Index(strings.ToLower(next), "dob:"); idx != -1 {
				next = strings.TrimSpace(next[:idx])
			}
			next = strings.TrimSpace(trailingNonLetter.ReplaceAllString(next, ""))
			if next != "" && len(strings.Fields(next)) >= 2 {
				return next
			}
		}
	}
	return ""
}

func trimAtStopPattern(s string) string {
	lower := strings.ToLower(s)
	cut := len(s)
	for _, pat := range nameStopPatterns {
		if idx := strings.Index(lower, pat); idx != -1 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(s[:cut])
}

// nameFromMixedCaseLine matches a bare "John Doe" style line
func nameFromMixedCaseLine(lines []string, _ string) string {
	for i, line := range lines {
		if i >= 30 {
			break
		}
		m := mixedCaseLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		words := strings.Fields(m[1])
		if len(words) < 2 || len(words) > 4 || !allWordsMinLen(words, 2) {
			continue
		}
		if containsBoilerplate(strings.ToLower(line)) {
			continue
		}
		return m[1]
	}
	return ""
}

// nameFromLastFirst handles "DOE, JOHN [M]" lines, rearranging to
// "JOHN [M] DOE".
func nameFromLastFirst(lines []string, _ string) string {
	for i, line := range lines {
		if i >= 30 {
			break
		}
		m := lastFirstLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		flat := strings.Replace(m[1], ",", "", 1)
		words := strings.Fields(flat)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		return strings.Join(words[1:], " ") + " " + words[0]
	}
	return ""
}

// nameFromEmbeddedCaps finds an all-caps run inside a longer line
func nameFromEmbeddedCaps(lines []string, _ string) string {
	for i, line := range lines {
		if i >= 20 {
			break
		}
		m := embeddedAllCaps.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		words := strings.Fields(m[1])
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		ok := true
		for _, w := range words {
			if len(w) < 2 || len(w) > 15 {
				ok = false
				break
			}
		}
		if !ok || containsBoilerplate(strings.ToLower(m[1])) {
			continue
		}
		return m[1]
	}
	return ""
}

// nameNearNameWord picks a capitalized run off any line mentioning
// "name", skipping the labeled layouts already covered above and
// anything that smells like a mailing address.
func nameNearNameWord(lines []string, _ string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "name") ||
			strings.Contains(lower, "driver name:") ||
			strings.Contains(lower, "name searched") {
			continue
		}
		if containsAddressTerm(lower) {
			continue
		}
		m := adjacentMixedCase.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if idx := strings.Index(strings.ToLower(candidate), "dob:"); idx != -1 {
			candidate = strings.TrimSpace(candidate[:idx])
		}
		candidate = strings.TrimSpace(trailingNonLetter.ReplaceAllString(candidate, ""))
		if candidate != "" && wordCountOK(candidate) {
			return candidate
		}
	}
	return ""
}

func containsAddressTerm(lower string) bool {
	for _, term := range addressTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// nameFromDirectLine is the aggressive single-line fallback
func nameFromDirectLine(lines []string, _ string) string {
	extra := []string{"date", "address", "dob:"}
	for i, line := range lines {
		if i >= 30 {
			break
		}
		m := directNameLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		lower := strings.ToLower(line)
		if containsBoilerplate(lower) || containsAny(lower, extra) {
			continue
		}
		if wordCountOK(m[1]) {
			return m[1]
		}
	}
	return ""
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// nameFromBroadScan matches a capitalized pair anywhere in the first
// lines of the document.
func nameFromBroadScan(lines []string, _ string) string {
	for i, line := range lines {
		if i >= 15 {
			break
		}
		m := broadName.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if containsBoilerplate(strings.ToLower(line)) {
			continue
		}
		if wordCountOK(m[1]) {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// nameFromFullText runs regexes over the unsegmented text. Last resort
// for documents whose line structure was destroyed in extraction.
func nameFromFullText(_ []string, fullText string) string {
	if m := fullTextNameSearched.FindStringSubmatch(fullText); m != nil {
		return m[1]
	}
	if m := fullTextNameLabel.FindStringSubmatch(fullText); m != nil {
		candidate := trimAtStopPattern(m[1])
		if wordCountOK(candidate) {
			return candidate
		}
	}
	if m := fullTextLastFirst.FindStringSubmatch(fullText); m != nil {
		return m[2] + " " + m[1]
	}
	return ""
}
