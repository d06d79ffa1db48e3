package parser

import (
	"regexp"
	"strings"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/jurisdiction"
)

// violationSectionHeaders open the violations section. Shared across
// states, with condensed variants some states print.
var violationSectionHeaders = []string{
	"violations", "convictions", "violations/convictions",
	"violation history", "moving violations", "traffic violations",
	"conviction record", "traffic convictions", "violation record",
	"violationsconvictions", "violations/convictionsfailures",
	"moving violation convictions", "driver record", "driving record",
}

// sectionExitHeaders close the violations section
var sectionExitHeaders = []string{
	"suspensions", "license and permit", "miscellaneous",
}

// cleanRecordIndicators mark explicit no-activity lines. They count as
// zero entries, never as a parse failure.
var cleanRecordIndicators = []string{
	"*** none to report ***", "none to report", "no violations",
	"no accidents", "clean record",
}

// tableBoilerplate excludes column headers and layout rows from the
// delimited-table sub-parser.
var tableBoilerplate = []string{
	"description", "location", "ticket", "plate", "at fault",
}

// offenseCodes are AAMVA record-type and violation codes recognized by
// the generic sub-parser.
var offenseCodes = []string{
	"ABS", "CONV", "FTA", "SUSP", "CDL", "V", "C", "M",
	"S14", "S15", "S16", "S21", "S92", "S93", "S94", "S95",
	"M34", "M40", "M41", "M42", "M70", "M71", "M72",
	"E01", "E34", "E50", "E70", "B91", "D02", "D16",
}

// violationKeywords flag an offense description in free text
var violationKeywords = []string{
	"speed", "speeding", "excessive speed", "speed limit",
	"fail to stop", "failure to", "driving", "vehicle", "traffic",
	"dui", "dwi", "owi", "drunk driving", "driving under influence",
	"license", "registration", "insurance", "equipment",
	"reckless", "careless", "following", "lane", "signal", "turn",
	"parking", "stop sign", "red light", "yield", "unsafe", "improper",
	"violation", "convicted", "guilty", "citation", "ticket", "fine",
	"mph", "exceed", "aggressive", "distracted",
	"seatbelt", "restraint", "cellular", "phone", "texting",
	"following too closely", "unsafe lane change", "ran red light",
}

// delimitedCodePrefix matches the leading code column of a tabular row
var delimitedCodePrefix = regexp.MustCompile(`(?i)^(ABS|CONV|FTA|SUSP|ARS|TRC)\b`)

// ticketNumber matches ticket-shaped alphanumeric tokens
var ticketNumber = regexp.MustCompile(`[A-Z]\d+[A-Z]*\d+[A-Z]*`)

var offenseCodeRegexes = buildCodeRegexes(offenseCodes)

func buildCodeRegexes(codes []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(codes))
	for _, code := range codes {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(code)+`\b`))
	}
	return res
}

// columnarLookahead bounds how far past a record-type token the
// columnar sub-parser searches for a confirming date.
const columnarLookahead = 10

// Counts holds the violation and accident totals for one document
type Counts struct {
	Violations int
	Accidents  int
}

// CountIncidents walks the line sequence with a two-state section
// machine and tallies violations and accidents. The violations section
// opens on a known header and closes on a suspensions or license-and-
// permit header. Inside the section, lines are judged by the sub-parser
// the jurisdiction profile selects. Accident phrasing is also detected
// outside the section, where some states report crashes.
func CountIncidents(lines []string, profile *jurisdiction.Profile) Counts {
	var c Counts
	inSection := false

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if !inSection {
			if isSectionHeader(lower, profile) {
				inSection = true
				continue
			}
		} else if isSectionExit(lower) {
			inSection = false
			continue
		}

		// Crash reports outside the violations section still count
		if strings.Contains(lower, "accident") && containsAny(lower, []string{
			"at fault", "collision", "property damage", "injury",
		}) {
			c.Accidents++
			continue
		}

		if !inSection {
			continue
		}

		if isCleanIndicator(lower) || isTableHeader(lower) {
			continue
		}

		switch profile.Format {
		case jurisdiction.FormatColumnar:
			v, a := countColumnar(lines, i, profile)
			c.Violations += v
			c.Accidents += a
		case jurisdiction.FormatDelimitedTable:
			c.Violations += countDelimited(line, lower)
		default:
			c.Violations += countGeneric(line, lower)
		}

		if strings.Contains(lower, "accident") || strings.Contains(lower, "collision") ||
			strings.Contains(lower, "crash") ||
			(strings.Contains(lower, "at fault") && strings.Contains(lower, "yes")) {
			c.Accidents++
		}
	}

	return c
}

func isSectionHeader(lower string, profile *jurisdiction.Profile) bool {
	for _, h := range profile.SectionHeaders {
		if strings.Contains(lower, strings.ToLower(h)) {
			return true
		}
	}
	for _, h := range violationSectionHeaders {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

func isSectionExit(lower string) bool {
	return containsAny(lower, sectionExitHeaders)
}

func isCleanIndicator(lower string) bool {
	return containsAny(lower, cleanRecordIndicators)
}

// isTableHeader drops the "TYPE VIOL CONV" style column-header row
func isTableHeader(lower string) bool {
	return strings.Contains(lower, "type") &&
		strings.Contains(lower, "viol") &&
		strings.Contains(lower, "conv")
}

// countColumnar handles the one-token-per-line layout. A lone record
// token opens a record; a date within the lookahead window confirms it.
// Another record token before any date means the first was a stray
// header, so the lookahead stops early.
func countColumnar(lines []string, i int, profile *jurisdiction.Profile) (violations, accidents int) {
	token := strings.TrimSpace(lines[i])
	if !isRecordToken(token, profile) {
		return 0, 0
	}

	limit := i + 1 + columnarLookahead
	if limit > len(lines) {
		limit = len(lines)
	}
	for j := i + 1; j < limit; j++ {
		next := strings.TrimSpace(lines[j])
		if isRecordToken(next, profile) {
			return 0, 0
		}
		if hasStandardDate(next) {
			switch token {
			case "VIOL":
				return 1, 0
			case "ACCD":
				return 0, 1
			}
			return 0, 0
		}
	}
	return 0, 0
}

func isRecordToken(line string, profile *jurisdiction.Profile) bool {
	tokens := profile.RecordTokens
	if len(tokens) == 0 {
		tokens = []string{"VIOL", "ACCD", "CONV", "SUSP"}
	}
	for _, t := range tokens {
		if line == t {
			return true
		}
	}
	return false
}

// countDelimited judges one tabular row: a recognized code prefix or
// offense keyword plus an embedded date, minus boilerplate rows.
func countDelimited(line, lower string) int {
	if len(line) < 10 || strings.HasPrefix(line, "-") {
		return 0
	}
	if containsAny(lower, tableBoilerplate) {
		return 0
	}
	if !hasStandardDate(line) {
		return 0
	}
	if delimitedCodePrefix.MatchString(line) || hasViolationKeyword(lower) {
		return 1
	}
	return 0
}

// countGeneric is the fallback for states without a dedicated layout:
// a date plus any offense signal counts as one violation.
func countGeneric(line, lower string) int {
	if !hasStandardDate(line) {
		return 0
	}
	if hasOffenseCode(line) || hasViolationKeyword(lower) || ticketNumber.MatchString(line) {
		return 1
	}
	return 0
}

func hasOffenseCode(line string) bool {
	for _, re := range offenseCodeRegexes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func hasViolationKeyword(lower string) bool {
	return containsAny(lower, violationKeywords)
}
