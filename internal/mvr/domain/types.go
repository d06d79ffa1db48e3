// Package domain defines the core types for MVR evaluation.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DriverType distinguishes essential from non-essential drivers.
// Essential drivers operate under stricter eligibility rules.
type DriverType string

const (
	DriverTypeEssential    DriverType = "essential"
	DriverTypeNonEssential DriverType = "non-essential"
)

// IsValid reports whether the driver type is one of the known values
func (t DriverType) IsValid() bool {
	return t == DriverTypeEssential || t == DriverTypeNonEssential
}

// Classification buckets a driving record by incident counts.
// Ordering matters: each level is strictly worse than the one before it.
type Classification string

const (
	ClassificationClear        Classification = "Clear"
	ClassificationAcceptable   Classification = "Acceptable"
	ClassificationProbationary Classification = "Probationary"
	ClassificationUnacceptable Classification = "Unacceptable"
)

// classificationRank maps each classification to its severity ordinal
var classificationRank = map[Classification]int{
	ClassificationClear:        0,
	ClassificationAcceptable:   1,
	ClassificationProbationary: 2,
	ClassificationUnacceptable: 3,
}

// Rank returns the severity ordinal of the classification.
// Unknown values rank below Clear.
func (c Classification) Rank() int {
	if r, ok := classificationRank[c]; ok {
		return r
	}
	return -1
}

// AtLeast reports whether c is at least as severe as other
func (c Classification) AtLeast(other Classification) bool {
	return c.Rank() >= other.Rank()
}

// License status values recognized by the status extractor.
// Anything outside this vocabulary is discarded rather than guessed at.
const (
	LicenseStatusValid        = "Valid"
	LicenseStatusSuspended    = "Suspended"
	LicenseStatusRevoked      = "Revoked"
	LicenseStatusCancelled    = "Cancelled"
	LicenseStatusExpired      = "Expired"
	LicenseStatusNotSpecified = "Not specified"
)

// VerdictDisqualified is the final verdict when any rule fired; a
// passing record's verdict is its classification string instead.
const VerdictDisqualified = "Disqualified"

// ParsedFields holds everything the parser extracted from raw MVR text
type ParsedFields struct {
	DriverName               string
	Jurisdiction             string
	LicenseStatus            string
	LicenseStatusExplanation *string
	ViolationCount           int
	AccidentCount            int
	MajorConvictions         []string
}

// EvaluationInput carries a single evaluation request into the service
type EvaluationInput struct {
	RawText     string
	DriverType  DriverType
	DateOfBirth string // YYYY-MM-DD, optional
	ManualName  string // overrides extracted name when set
}

// EvaluationRecord is one row of the evaluation log. It captures the
// parsed fields, the policy outcome, and the policy version that
// produced it so past decisions stay auditable after threshold changes.
type EvaluationRecord struct {
	ID                       uuid.UUID      `db:"id" json:"id"`
	EvaluatedAt              time.Time      `db:"evaluated_at" json:"evaluatedAt"`
	DriverName               string         `db:"driver_name" json:"driverName"`
	DriverType               DriverType     `db:"driver_type" json:"driverType"`
	Age                      *int           `db:"age" json:"age"`
	Jurisdiction             string         `db:"jurisdiction" json:"jurisdiction"`
	Classification           Classification `db:"classification" json:"classification"`
	ViolationCount           int            `db:"violation_count" json:"violations"`
	AccidentCount            int            `db:"accident_count" json:"accidents"`
	LicenseStatus            string         `db:"license_status" json:"licenseStatus"`
	LicenseStatusExplanation *string        `db:"license_status_explanation" json:"licenseStatusExplanation"`
	MajorConvictions         []string       `db:"-" json:"majorConvictions"`
	FinalVerdict             string         `db:"final_verdict" json:"finalVerdict"`
	DisqualificationReasons  []string       `db:"-" json:"disqualificationReasons"`
	PolicyVersion            string         `db:"policy_version" json:"policy"`
}

// Disqualified reports whether the record carries any disqualification reasons
func (r *EvaluationRecord) Disqualified() bool {
	return len(r.DisqualificationReasons) > 0
}
