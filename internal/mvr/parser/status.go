package parser

import (
	"regexp"
	"strings"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/jurisdiction"
)

// statusVocabulary is the closed set of license status words shared by
// every state. A profile's StatusFormats extend it with whatever the
// state's reports print. Anything outside the combined set near a
// status label is discarded, not guessed at.
var statusVocabulary = []string{"VALID", "ACTIVE", "SUSPENDED", "REVOKED", "CANCELLED", "EXPIRED"}

var (
	statusSameLine    = regexp.MustCompile(`(?i)status[:\s]+([a-zA-Z]+)`)
	explanationLabel  = regexp.MustCompile(`(?i)(?:license\s+)?status\s+explanation:\s*(.+)`)
	fullTextStatus    = regexp.MustCompile(`(?i)status:\s*([A-Z]{4,})`)
	nonInformativeExp = regexp.MustCompile(`^(MANDATORY|VOLUNTARY|ACTIVE|INACTIVE)$`)
)

// ExtractStatus finds the normalized license status and an optional
// explanation, accepting the status words of the given profile. Scans
// status-labeled lines first (same line, then next line), then
// standalone status words anchored by a "status:" label in the previous
// three lines, then a full-text regex. Returns "Not specified" and nil
// when nothing matches.
func ExtractStatus(lines []string, fullText string, profile *jurisdiction.Profile) (string, *string) {
	vocab := statusWords(profile)

	raw := rawStatus(lines, vocab)
	if raw == "" {
		if m := fullTextStatus.FindStringSubmatch(fullText); m != nil && vocab[strings.ToUpper(m[1])] {
			raw = strings.ToUpper(m[1])
		}
	}

	explanation := extractExplanation(lines)
	return normalizeStatus(raw), explanation
}

// statusWords merges the shared vocabulary with the profile's own
// status formats
func statusWords(profile *jurisdiction.Profile) map[string]bool {
	vocab := make(map[string]bool, len(statusVocabulary))
	for _, w := range statusVocabulary {
		vocab[w] = true
	}
	if profile != nil {
		for _, w := range profile.StatusFormats {
			vocab[strings.ToUpper(w)] = true
		}
	}
	return vocab
}

func rawStatus(lines []string, vocab map[string]bool) string {
	for i, line := range lines {
		lower := strings.ToLower(line)

		if strings.Contains(lower, "status:") || strings.Contains(lower, "license status") {
			if m := statusSameLine.FindStringSubmatch(line); m != nil && vocab[strings.ToUpper(m[1])] {
				return strings.ToUpper(m[1])
			}
			if i+1 < len(lines) {
				next := strings.TrimSpace(lines[i+1])
				if isStandaloneStatus(next, vocab) {
					return strings.ToUpper(next)
				}
			}
			continue
		}

		// A standalone status word counts only when a status label
		// appeared within the previous three lines.
		if isStandaloneStatus(line, vocab) {
			for j := max(0, i-3); j < i; j++ {
				if strings.Contains(strings.ToLower(lines[j]), "status:") {
					return strings.ToUpper(line)
				}
			}
		}
	}
	return ""
}

// isStandaloneStatus reports whether the line is exactly one word from
// the status vocabulary
func isStandaloneStatus(line string, vocab map[string]bool) bool {
	fields := strings.Fields(line)
	return len(fields) == 1 && vocab[strings.ToUpper(fields[0])]
}

// normalizeStatus folds the raw vocabulary into the reported form.
// ACTIVE and VALID both read as Valid.
func normalizeStatus(raw string) string {
	switch raw {
	case "ACTIVE", "VALID":
		return domain.LicenseStatusValid
	case "SUSPENDED":
		return domain.LicenseStatusSuspended
	case "REVOKED":
		return domain.LicenseStatusRevoked
	case "CANCELLED":
		return domain.LicenseStatusCancelled
	case "EXPIRED":
		return domain.LicenseStatusExpired
	case "":
		return domain.LicenseStatusNotSpecified
	default:
		return raw
	}
}

// extractExplanation finds a "license status explanation:" value on the
// labeled line or the one after it and collapses the free text to a
// status word. DMV qualifier terms like MANDATORY carry no information
// and are dropped.
func extractExplanation(lines []string) *string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "status explanation:") {
			// Abbreviated suspension markers appear without the label
			if strings.Contains(lower, "mandatory susp") || strings.Contains(lower, "susp/revk") {
				if strings.Contains(lower, "susp") {
					s := domain.LicenseStatusSuspended
					return &s
				}
			}
			continue
		}

		if m := explanationLabel.FindStringSubmatch(line); m != nil && strings.TrimSpace(m[1]) != "" {
			return collapseExplanation(strings.TrimSpace(m[1]))
		}
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if len(next) > 2 {
				return collapseExplanation(next)
			}
		}
	}
	return nil
}

func collapseExplanation(explanation string) *string {
	lower := strings.ToLower(explanation)
	var collapsed string
	switch {
	case strings.Contains(lower, "susp"):
		collapsed = domain.LicenseStatusSuspended
	case strings.Contains(lower, "revk"), strings.Contains(lower, "revoked"):
		collapsed = domain.LicenseStatusRevoked
	case strings.Contains(lower, "valid"):
		collapsed = domain.LicenseStatusValid
	case strings.Contains(lower, "expired"):
		collapsed = domain.LicenseStatusExpired
	case strings.Contains(lower, "cancelled"):
		collapsed = domain.LicenseStatusCancelled
	default:
		first := strings.ToUpper(strings.Fields(explanation)[0])
		if nonInformativeExp.MatchString(first) {
			return nil
		}
		collapsed = first
	}
	return &collapsed
}
