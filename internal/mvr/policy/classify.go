// Package policy implements the driver eligibility standards: the
// violation/accident severity matrix and the per-driver-type
// disqualification rules.
package policy

import "github.com/fleetgate/fleetgate-backend/internal/mvr/domain"

// incidentCeiling is the combined count at which a record is
// Unacceptable regardless of the matrix.
const incidentCeiling = 4

// classificationMatrix maps violations (rows) and accidents (columns)
// in the 0..3 range to a severity level.
var classificationMatrix = [4][4]domain.Classification{
	{domain.ClassificationClear, domain.ClassificationAcceptable, domain.ClassificationProbationary, domain.ClassificationUnacceptable},
	{domain.ClassificationAcceptable, domain.ClassificationAcceptable, domain.ClassificationProbationary, domain.ClassificationUnacceptable},
	{domain.ClassificationAcceptable, domain.ClassificationProbationary, domain.ClassificationUnacceptable, domain.ClassificationUnacceptable},
	{domain.ClassificationProbationary, domain.ClassificationUnacceptable, domain.ClassificationUnacceptable, domain.ClassificationUnacceptable},
}

// Classify maps incident counts to a severity level. Four or more of
// either kind, or four combined, is Unacceptable before the matrix is
// consulted. Classification depends on counts alone, never on driver
// type, age, or license status.
func Classify(violations, accidents int) domain.Classification {
	if violations >= incidentCeiling || accidents >= incidentCeiling ||
		violations+accidents >= incidentCeiling {
		return domain.ClassificationUnacceptable
	}
	if violations < 0 || accidents < 0 {
		return domain.ClassificationUnacceptable
	}
	return classificationMatrix[violations][accidents]
}
