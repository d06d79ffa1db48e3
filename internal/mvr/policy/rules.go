package policy

import (
	"fmt"
	"strings"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/pkg/config"
)

// Engine evaluates the disqualification rules. Thresholds come from
// configuration so policy revisions do not require code changes.
type Engine struct {
	version            string
	essentialMinAge    int
	nonEssentialMinAge int
	incidentCap        int
}

// NewEngine creates an Engine from the policy configuration
func NewEngine(cfg config.PolicyConfig) *Engine {
	return &Engine{
		version:            cfg.Version,
		essentialMinAge:    cfg.EssentialMinAge,
		nonEssentialMinAge: cfg.NonEssentialMinAge,
		incidentCap:        cfg.EssentialIncidentCap,
	}
}

// Version returns the policy version string stamped on every record
func (e *Engine) Version() string {
	return e.version
}

// Decision is the outcome of the rule evaluation
type Decision struct {
	Verdict string
	Reasons []string
}

// Evaluate runs every applicable rule and collects a reason per
// violated rule. No rule short-circuits another. The verdict is
// Disqualified exactly when at least one reason accumulated; otherwise
// it is the classification itself. A nil age fails the age rules.
func (e *Engine) Evaluate(fields domain.ParsedFields, classification domain.Classification, driverType domain.DriverType, age *int) Decision {
	var reasons []string

	if fields.LicenseStatus == domain.LicenseStatusSuspended ||
		fields.LicenseStatus == domain.LicenseStatusRevoked ||
		fields.LicenseStatus == domain.LicenseStatusCancelled {
		reason := fmt.Sprintf("License Status: %s", fields.LicenseStatus)
		if fields.LicenseStatusExplanation != nil {
			reason = fmt.Sprintf("%s (%s)", reason, *fields.LicenseStatusExplanation)
		}
		reasons = append(reasons, reason)
	}

	switch driverType {
	case domain.DriverTypeEssential:
		reasons = append(reasons, e.essentialReasons(fields, classification, age)...)
	default:
		reasons = append(reasons, e.nonEssentialReasons(fields, classification, age)...)
	}

	if len(reasons) > 0 {
		return Decision{Verdict: domain.VerdictDisqualified, Reasons: reasons}
	}
	return Decision{Verdict: string(classification)}
}

func (e *Engine) essentialReasons(fields domain.ParsedFields, classification domain.Classification, age *int) []string {
	var reasons []string

	if age == nil || *age < e.essentialMinAge {
		reasons = append(reasons, fmt.Sprintf("Under %d years old (Essential Driver requirement)", e.essentialMinAge))
	}

	if len(fields.MajorConvictions) > 0 {
		reasons = append(reasons, fmt.Sprintf("Major conviction found: %s (5-year lookback for Essential)",
			strings.Join(fields.MajorConvictions, ", ")))
	}

	if classification.AtLeast(domain.ClassificationProbationary) {
		reasons = append(reasons, fmt.Sprintf("Classification: %s (Essential drivers require Clear/Acceptable)", classification))
	}

	total := fields.ViolationCount + fields.AccidentCount
	if total >= e.incidentCap {
		reasons = append(reasons, fmt.Sprintf("%d violations/accidents in past 3 years (Essential limit: %d)",
			total, e.incidentCap-1))
	}

	return reasons
}

func (e *Engine) nonEssentialReasons(fields domain.ParsedFields, classification domain.Classification, age *int) []string {
	var reasons []string

	if age == nil || *age < e.nonEssentialMinAge {
		reasons = append(reasons, fmt.Sprintf("Under %d years old (Non-Essential Driver requirement)", e.nonEssentialMinAge))
	}

	if len(fields.MajorConvictions) > 0 {
		reasons = append(reasons, fmt.Sprintf("Major conviction found: %s (3-year lookback for Non-Essential)",
			strings.Join(fields.MajorConvictions, ", ")))
	}

	if classification.AtLeast(domain.ClassificationUnacceptable) {
		reasons = append(reasons, fmt.Sprintf("Classification: %s (Non-Essential allows up to Probationary)", classification))
	}

	return reasons
}
