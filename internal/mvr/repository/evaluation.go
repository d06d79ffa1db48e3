// Package repository persists the append-only evaluation log
package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/pkg/database"
	"github.com/fleetgate/fleetgate-backend/pkg/errors"

	"github.com/google/uuid"
)

// listSeparator joins multi-valued fields into their stored form
const listSeparator = "; "

// evaluationRow is the flat storage shape of an EvaluationRecord.
// Multi-valued fields are stored joined so the table mirrors the
// exported log exactly.
type evaluationRow struct {
	ID                       uuid.UUID  `db:"id"`
	EvaluatedAt              time.Time  `db:"evaluated_at"`
	DriverName               string     `db:"driver_name"`
	DriverType               string     `db:"driver_type"`
	Age                      *int       `db:"age"`
	Jurisdiction             string     `db:"jurisdiction"`
	Classification           string     `db:"classification"`
	ViolationCount           int        `db:"violation_count"`
	AccidentCount            int        `db:"accident_count"`
	LicenseStatus            string     `db:"license_status"`
	LicenseStatusExplanation *string    `db:"license_status_explanation"`
	MajorConvictions         string     `db:"major_convictions"`
	FinalVerdict             string     `db:"final_verdict"`
	DisqualificationReasons  string     `db:"disqualification_reasons"`
	PolicyVersion            string     `db:"policy_version"`
}

func toRow(rec *domain.EvaluationRecord) evaluationRow {
	return evaluationRow{
		ID:                       rec.ID,
		EvaluatedAt:              rec.EvaluatedAt,
		DriverName:               rec.DriverName,
		DriverType:               string(rec.DriverType),
		Age:                      rec.Age,
		Jurisdiction:             rec.Jurisdiction,
		Classification:           string(rec.Classification),
		ViolationCount:           rec.ViolationCount,
		AccidentCount:            rec.AccidentCount,
		LicenseStatus:            rec.LicenseStatus,
		LicenseStatusExplanation: rec.LicenseStatusExplanation,
		MajorConvictions:         strings.Join(rec.MajorConvictions, listSeparator),
		FinalVerdict:             rec.FinalVerdict,
		DisqualificationReasons:  strings.Join(rec.DisqualificationReasons, listSeparator),
		PolicyVersion:            rec.PolicyVersion,
	}
}

func (r evaluationRow) toRecord() *domain.EvaluationRecord {
	return &domain.EvaluationRecord{
		ID:                       r.ID,
		EvaluatedAt:              r.EvaluatedAt,
		DriverName:               r.DriverName,
		DriverType:               domain.DriverType(r.DriverType),
		Age:                      r.Age,
		Jurisdiction:             r.Jurisdiction,
		Classification:           domain.Classification(r.Classification),
		ViolationCount:           r.ViolationCount,
		AccidentCount:            r.AccidentCount,
		LicenseStatus:            r.LicenseStatus,
		LicenseStatusExplanation: r.LicenseStatusExplanation,
		MajorConvictions:         splitList(r.MajorConvictions),
		FinalVerdict:             r.FinalVerdict,
		DisqualificationReasons:  splitList(r.DisqualificationReasons),
		PolicyVersion:            r.PolicyVersion,
	}
}

func splitList(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, listSeparator)
}

// EvaluationRepository handles evaluation log persistence
type EvaluationRepository struct {
	db *database.DB
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *database.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// Append stores one evaluation record. The log is append-only: records
// are never updated or deleted.
func (r *EvaluationRepository) Append(ctx context.Context, rec *domain.EvaluationRecord) error {
	row := toRow(rec)
	query := `
		INSERT INTO mvr_evaluations (
			id, evaluated_at, driver_name, driver_type, age, jurisdiction,
			classification, violation_count, accident_count,
			license_status, license_status_explanation, major_convictions,
			final_verdict, disqualification_reasons, policy_version
		) VALUES (
			:id, :evaluated_at, :driver_name, :driver_type, :age, :jurisdiction,
			:classification, :violation_count, :accident_count,
			:license_status, :license_status_explanation, :major_convictions,
			:final_verdict, :disqualification_reasons, :policy_version
		)
	`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return mapDBError(err)
	}
	return nil
}

// List returns evaluation records ordered oldest first, matching the
// order they were appended in.
func (r *EvaluationRepository) List(ctx context.Context) ([]*domain.EvaluationRecord, error) {
	query := `
		SELECT id, evaluated_at, driver_name, driver_type, age, jurisdiction,
		       classification, violation_count, accident_count,
		       license_status, license_status_explanation, major_convictions,
		       final_verdict, disqualification_reasons, policy_version
		FROM mvr_evaluations
		ORDER BY evaluated_at ASC
	`
	var rows []evaluationRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, mapDBError(err)
	}

	records := make([]*domain.EvaluationRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// GetByID returns a single evaluation record
func (r *EvaluationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.EvaluationRecord, error) {
	query := `
		SELECT id, evaluated_at, driver_name, driver_type, age, jurisdiction,
		       classification, violation_count, accident_count,
		       license_status, license_status_explanation, major_convictions,
		       final_verdict, disqualification_reasons, policy_version
		FROM mvr_evaluations
		WHERE id = $1
	`
	var row evaluationRow
	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("evaluation record")
	}
	if err != nil {
		return nil, mapDBError(err)
	}
	return row.toRecord(), nil
}

// mapDBError promotes recognizable postgres errors to AppErrors and
// passes everything else through unchanged
func mapDBError(err error) error {
	if mapped := database.MapPQError(err); mapped != nil {
		return mapped
	}
	return err
}
