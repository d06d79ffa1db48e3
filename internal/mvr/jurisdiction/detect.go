package jurisdiction

import (
	"regexp"
	"strings"
	"sync"
)

// priorityStates are matched by full name before the abbreviation scan.
// They are the states with dedicated layouts or offense-code tables,
// and their two-letter codes are the ones most likely to appear inside
// unrelated text.
var priorityStates = []string{"ARIZONA", "CALIFORNIA", "WISCONSIN", "TEXAS", "FLORIDA"}

var (
	codeRegexMu sync.Mutex
	codeRegexes = map[string]*regexp.Regexp{}
)

// codeRegex returns a cached case-insensitive word-boundary matcher for
// a state code, also accepting the "state of <code>" phrasing.
func codeRegex(code string) *regexp.Regexp {
	codeRegexMu.Lock()
	defer codeRegexMu.Unlock()
	if re, ok := codeRegexes[code]; ok {
		return re
	}
	lower := strings.ToLower(code)
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(lower) + `\b|state of ` + regexp.QuoteMeta(lower))
	codeRegexes[code] = re
	return re
}

// Detect picks the jurisdiction profile for a document. The five
// priority states are checked by full name first, then every remaining
// state is tried by code with word boundaries. First match wins.
// Detection never fails: an unmatched document gets the Generic profile.
func Detect(text string) *Profile {
	lower := strings.ToLower(text)

	for _, id := range priorityStates {
		if strings.Contains(lower, strings.ToLower(id)) {
			return ByID(id)
		}
	}

	for _, p := range profiles {
		if isPriority(p.ID) {
			continue
		}
		for _, code := range p.Codes {
			if codeRegex(code).MatchString(lower) {
				return p
			}
		}
	}

	return Generic
}

func isPriority(id string) bool {
	for _, p := range priorityStates {
		if p == id {
			return true
		}
	}
	return false
}
