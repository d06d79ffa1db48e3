package repository_test

import (
	"context"
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/repository"
	"github.com/fleetgate/fleetgate-backend/pkg/database"
	"github.com/fleetgate/fleetgate-backend/pkg/logger"
	"github.com/fleetgate/fleetgate-backend/pkg/testutil"
)

var testDB *database.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := testutil.NewPostgresContainer(ctx, testutil.DefaultPostgresConfig())
	if err != nil {
		panic("failed to start postgres container: " + err.Error())
	}
	defer container.Terminate(ctx)

	db, err := container.Connect(ctx)
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	if err := container.CreateEvaluationSchema(ctx, db); err != nil {
		panic("failed to create schema: " + err.Error())
	}
	testDB = database.FromSqlx(db, logger.Nop())

	code := m.Run()
	db.Close()
	container.Terminate(ctx)
	os.Exit(code)
}

func cleanupEvaluations(ctx context.Context, t *testing.T) {
	t.Helper()
	_, err := testDB.ExecContext(ctx, "DELETE FROM mvr_evaluations")
	require.NoError(t, err)
}

func integrationRecord(name string, evaluatedAt time.Time) *domain.EvaluationRecord {
	age := 29
	return &domain.EvaluationRecord{
		ID:                      uuid.New(),
		EvaluatedAt:             evaluatedAt,
		DriverName:              name,
		DriverType:              domain.DriverTypeEssential,
		Age:                     &age,
		Jurisdiction:            "CALIFORNIA",
		Classification:          domain.ClassificationAcceptable,
		ViolationCount:          1,
		AccidentCount:           0,
		LicenseStatus:           domain.LicenseStatusValid,
		MajorConvictions:        []string{"DUI", "23152A"},
		FinalVerdict:            "Acceptable",
		DisqualificationReasons: nil,
		PolicyVersion:           "FleetGate Driver Standards (June 2025)",
	}
}

func TestEvaluationRepository_AppendAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()
	cleanupEvaluations(ctx, t)
	repo := repository.NewEvaluationRepository(testDB)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	second := integrationRecord("DOE JANE", base.Add(time.Hour))
	first := integrationRecord("SMITH ALEX", base)

	// Insert out of order, List must return chronological order
	require.NoError(t, repo.Append(ctx, second))
	require.NoError(t, repo.Append(ctx, first))

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "SMITH ALEX", records[0].DriverName)
	assert.Equal(t, "DOE JANE", records[1].DriverName)
	assert.Equal(t, []string{"DUI", "23152A"}, records[0].MajorConvictions)
	require.NotNil(t, records[0].Age)
	assert.Equal(t, 29, *records[0].Age)
}

func TestEvaluationRepository_GetByID_Roundtrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()
	cleanupEvaluations(ctx, t)
	repo := repository.NewEvaluationRepository(testDB)

	rec := integrationRecord("DOE JANE", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	rec.DisqualificationReasons = []string{
		"Major conviction found: DUI (5-year lookback for Essential)",
		"License Status: Suspended",
	}
	rec.FinalVerdict = domain.VerdictDisqualified
	rec.LicenseStatus = domain.LicenseStatusSuspended
	require.NoError(t, repo.Append(ctx, rec))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.DisqualificationReasons, got.DisqualificationReasons)
	assert.Equal(t, domain.VerdictDisqualified, got.FinalVerdict)
	assert.True(t, got.Disqualified())
}

func TestEvaluationRepository_GetByID_Missing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()
	cleanupEvaluations(ctx, t)
	repo := repository.NewEvaluationRepository(testDB)

	_, err := repo.GetByID(ctx, uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
