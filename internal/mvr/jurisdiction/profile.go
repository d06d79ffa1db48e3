// Package jurisdiction holds per-state MVR format profiles and the
// detector that picks one for a document. Profiles are static data;
// adding a state means adding a table entry, not new parsing code.
package jurisdiction

// FormatKind selects which record-layout sub-parser the counter uses
type FormatKind int

const (
	// FormatGeneric covers states without a dedicated layout: records
	// are single lines carrying a date plus an offense indicator.
	FormatGeneric FormatKind = iota
	// FormatDelimitedTable covers tabular reports whose rows start with
	// a short alphabetic code and embed a date (California style).
	FormatDelimitedTable
	// FormatColumnar covers reports that render one record-type token
	// per line with the detail on following lines (Wisconsin style).
	FormatColumnar
)

// GenericID is the profile ID used when no state matches
const GenericID = "GENERIC"

// Profile describes how one issuing authority formats its MVR
type Profile struct {
	// ID is the canonical state identifier, e.g. "ARIZONA"
	ID string
	// Codes are the abbreviations and names that identify the state in text
	Codes []string
	// SectionHeaders are state-specific violations section headers, if any
	SectionHeaders []string
	// StatusFormats is the license status vocabulary the state prints
	StatusFormats []string
	// SpecialCodes are statute numbers for severe offenses (DUI class)
	SpecialCodes []string
	// Format selects the record-layout sub-parser
	Format FormatKind
	// RecordTokens are the record-type column values for columnar formats
	RecordTokens []string
}

// Columnar reports whether the profile uses the one-token-per-line layout
func (p *Profile) Columnar() bool {
	return p.Format == FormatColumnar
}

// Generic is the fallback profile used when no state is detected
var Generic = &Profile{
	ID:            GenericID,
	StatusFormats: []string{"VALID", "SUSPENDED", "REVOKED"},
	Format:        FormatGeneric,
}
