package parser

import "regexp"

// dateStandard covers the MM/DD/YYYY and MM-DD-YYYY families, including
// two-digit years. Every state report confirms its record rows with
// this layout; looser layouts (compact digit runs, spelled-out months)
// false-positive on ticket and statute numbers and are not used.
var dateStandard = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-](\d{4}|\d{2})`)

// hasStandardDate reports whether the line contains a slash or dash
// formatted date. This is the confirmation signal for record rows.
func hasStandardDate(line string) bool {
	return dateStandard.MatchString(line)
}
