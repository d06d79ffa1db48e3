package parser

import (
	"regexp"
	"sync"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/jurisdiction"
)

// genericConvictions are the severe-offense markers checked for every
// jurisdiction. Order matters: results preserve this scan order.
var genericConvictions = []string{
	"DUI", "DWI", "OWI", "OUI", "reckless driving", "vehicular assault",
	"homicide", "hit and run", "leaving the scene", "driving while suspended",
	"open container", "BAC", "blood alcohol", "driving with bac",
	"driving under influence", "excessive blood", "refuse breath",
	"refuse chemical", "implied consent",
}

var (
	convictionRegexMu sync.Mutex
	convictionRegexes = map[string]*regexp.Regexp{}
)

// convictionRegex returns a cached word-boundary matcher for a marker.
// Word boundaries keep a bare statute number like "3802" from matching
// inside an unrelated longer number.
func convictionRegex(marker string) *regexp.Regexp {
	convictionRegexMu.Lock()
	defer convictionRegexMu.Unlock()
	if re, ok := convictionRegexes[marker]; ok {
		return re
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(marker) + `\b`)
	convictionRegexes[marker] = re
	return re
}

// ScanConvictions tests the generic marker list and the jurisdiction's
// statute codes against the full text. Matches are case-insensitive and
// the result preserves the order of the source lists, not the order of
// appearance in the document.
func ScanConvictions(text string, profile *jurisdiction.Profile) []string {
	var found []string
	for _, marker := range genericConvictions {
		if convictionRegex(marker).MatchString(text) {
			found = append(found, marker)
		}
	}
	for _, code := range profile.SpecialCodes {
		if convictionRegex(code).MatchString(text) {
			found = append(found, code)
		}
	}
	return found
}
