package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/pkg/database"
	"github.com/fleetgate/fleetgate-backend/pkg/logger"
	"github.com/fleetgate/fleetgate-backend/pkg/testutil"
)

func sampleRecord() *domain.EvaluationRecord {
	age := 34
	return &domain.EvaluationRecord{
		ID:                      uuid.New(),
		EvaluatedAt:             time.Now().UTC(),
		DriverName:              "JOHN DOE",
		DriverType:              domain.DriverTypeEssential,
		Age:                     &age,
		Jurisdiction:            "CALIFORNIA",
		Classification:          domain.ClassificationAcceptable,
		ViolationCount:          2,
		AccidentCount:           0,
		LicenseStatus:           domain.LicenseStatusValid,
		MajorConvictions:        []string{"DUI", "23152A"},
		FinalVerdict:            domain.VerdictDisqualified,
		DisqualificationReasons: []string{"Major conviction found: DUI, 23152A (5-year lookback for Essential)"},
		PolicyVersion:           "FleetGate Driver Standards (June 2025)",
	}
}

func TestEvaluationRepository_Append(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewEvaluationRepository(database.FromSqlx(mockDB.DB, logger.Nop()))
	rec := sampleRecord()

	mockDB.ExpectExec("INSERT INTO mvr_evaluations").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), rec)
	require.NoError(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestEvaluationRepository_List(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewEvaluationRepository(database.FromSqlx(mockDB.DB, logger.Nop()))
	rec := sampleRecord()

	rows := testutil.MockRows(
		"id", "evaluated_at", "driver_name", "driver_type", "age", "jurisdiction",
		"classification", "violation_count", "accident_count",
		"license_status", "license_status_explanation", "major_convictions",
		"final_verdict", "disqualification_reasons", "policy_version",
	).AddRow(
		rec.ID, rec.EvaluatedAt, rec.DriverName, string(rec.DriverType), rec.Age, rec.Jurisdiction,
		string(rec.Classification), rec.ViolationCount, rec.AccidentCount,
		rec.LicenseStatus, nil, "DUI; 23152A",
		rec.FinalVerdict, rec.DisqualificationReasons[0], rec.PolicyVersion,
	)

	mockDB.ExpectQuery("SELECT id, evaluated_at, driver_name").WillReturnRows(rows)

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.DriverName, got.DriverName)
	assert.Equal(t, []string{"DUI", "23152A"}, got.MajorConvictions)
	assert.Equal(t, rec.DisqualificationReasons, got.DisqualificationReasons)
	mockDB.ExpectationsWereMet(t)
}

func TestEvaluationRepository_ListEmpty(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewEvaluationRepository(database.FromSqlx(mockDB.DB, logger.Nop()))

	mockDB.ExpectQuery("SELECT id, evaluated_at, driver_name").
		WillReturnRows(testutil.MockRows("id"))

	records, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestEvaluationRepository_GetByID_NotFound(t *testing.T) {
	mockDB := testutil.NewMockDB(t)
	defer mockDB.Close()

	repo := NewEvaluationRepository(database.FromSqlx(mockDB.DB, logger.Nop()))

	mockDB.ExpectQuery("SELECT id, evaluated_at, driver_name").
		WillReturnRows(testutil.MockRows("id"))

	_, err := repo.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSplitListRoundTrip(t *testing.T) {
	rec := sampleRecord()
	row := toRow(rec)
	back := row.toRecord()

	assert.Equal(t, rec.MajorConvictions, back.MajorConvictions)
	assert.Equal(t, rec.DisqualificationReasons, back.DisqualificationReasons)

	rec.MajorConvictions = nil
	rec.DisqualificationReasons = nil
	row = toRow(rec)
	back = row.toRecord()
	assert.Nil(t, back.MajorConvictions)
	assert.Nil(t, back.DisqualificationReasons)
}
