package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/events"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/policy"
	"github.com/fleetgate/fleetgate-backend/pkg/config"
	"github.com/fleetgate/fleetgate-backend/pkg/logger"
	"github.com/fleetgate/fleetgate-backend/pkg/testutil"
)

// memoryRepo is an in-memory Repository for service tests
type memoryRepo struct {
	records []*domain.EvaluationRecord
	err     error
}

func (m *memoryRepo) Append(_ context.Context, rec *domain.EvaluationRecord) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memoryRepo) List(_ context.Context) ([]*domain.EvaluationRecord, error) {
	return m.records, m.err
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.EvaluationRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func newTestService(repo *memoryRepo, pub *testutil.MockPublisher) *Service {
	engine := policy.NewEngine(config.PolicyConfig{
		Version:              "FleetGate Driver Standards (June 2025)",
		EssentialMinAge:      25,
		NonEssentialMinAge:   21,
		EssentialIncidentCap: 3,
	})
	log := logger.Nop()
	svc := NewService(engine, repo, events.NewEvaluationPublisher(pub, log), log)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

const cleanDocument = `CALIFORNIA DMV
DRIVER RECORD REPORT
Name Searched DOE JANE
License Status: VALID
VIOLATIONS/CONVICTIONS
*** NONE TO REPORT ***
`

const suspendedDocument = `CALIFORNIA DMV
DRIVER RECORD REPORT
Name Searched DOE JOHN
License Status: SUSPENDED
VIOLATIONS/CONVICTIONS
CONV  02/10/2023  03/15/2023  23152A  DUI
`

func TestService_EvaluateCleanRecord(t *testing.T) {
	repo := &memoryRepo{}
	pub := testutil.NewMockPublisher()
	svc := newTestService(repo, pub)

	rec, err := svc.Evaluate(context.Background(), domain.EvaluationInput{
		RawText:     cleanDocument,
		DriverType:  domain.DriverTypeNonEssential,
		DateOfBirth: "1985-01-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "DOE JANE", rec.DriverName)
	assert.Equal(t, domain.ClassificationClear, rec.Classification)
	assert.Equal(t, string(domain.ClassificationClear), rec.FinalVerdict)
	assert.Empty(t, rec.DisqualificationReasons)
	require.NotNil(t, rec.Age)
	assert.Equal(t, 40, *rec.Age)
	assert.Equal(t, "FleetGate Driver Standards (June 2025)", rec.PolicyVersion)

	require.Len(t, repo.records, 1)
	pub.AssertEventPublished(t, "mvr.evaluation.completed")
}

func TestService_EvaluateDisqualified(t *testing.T) {
	repo := &memoryRepo{}
	pub := testutil.NewMockPublisher()
	svc := newTestService(repo, pub)

	rec, err := svc.Evaluate(context.Background(), domain.EvaluationInput{
		RawText:     suspendedDocument,
		DriverType:  domain.DriverTypeEssential,
		DateOfBirth: "1990-03-20",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictDisqualified, rec.FinalVerdict)
	assert.NotEmpty(t, rec.DisqualificationReasons)
	assert.Equal(t, domain.LicenseStatusSuspended, rec.LicenseStatus)

	pub.AssertEventPublished(t, "mvr.evaluation.completed")
	pub.AssertEventPublished(t, "mvr.driver.disqualified")
}

func TestService_ManualNameOverridesDetection(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, testutil.NewMockPublisher())

	rec, err := svc.Evaluate(context.Background(), domain.EvaluationInput{
		RawText:     cleanDocument,
		DriverType:  domain.DriverTypeNonEssential,
		DateOfBirth: "1985-01-01",
		ManualName:  "Jane Q Corrected",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Q Corrected", rec.DriverName)
}

func TestService_EvaluateValidation(t *testing.T) {
	svc := newTestService(&memoryRepo{}, testutil.NewMockPublisher())

	_, err := svc.Evaluate(context.Background(), domain.EvaluationInput{
		RawText:    "",
		DriverType: domain.DriverTypeEssential,
	})
	assert.Error(t, err)

	_, err = svc.Evaluate(context.Background(), domain.EvaluationInput{
		RawText:    "some document",
		DriverType: "contractor",
	})
	assert.Error(t, err)
}

func TestService_EvaluateIdempotentModuloIdentity(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(repo, testutil.NewMockPublisher())

	input := domain.EvaluationInput{
		RawText:     suspendedDocument,
		DriverType:  domain.DriverTypeEssential,
		DateOfBirth: "1990-03-20",
	}

	first, err := svc.Evaluate(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.Evaluate(context.Background(), input)
	require.NoError(t, err)

	// Identical inputs yield identical decisions; only record identity differs
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.Classification, second.Classification)
	assert.Equal(t, first.FinalVerdict, second.FinalVerdict)
	assert.Equal(t, first.DisqualificationReasons, second.DisqualificationReasons)
	assert.Equal(t, first.ViolationCount, second.ViolationCount)
	assert.Equal(t, first.AccidentCount, second.AccidentCount)
	assert.Equal(t, first.MajorConvictions, second.MajorConvictions)
}

func TestService_BrokerFailureDoesNotFailEvaluation(t *testing.T) {
	repo := &memoryRepo{}
	pub := testutil.NewMockPublisher()
	pub.FailWith(assert.AnError)
	svc := newTestService(repo, pub)

	rec, err := svc.Evaluate(context.Background(), domain.EvaluationInput{
		RawText:     cleanDocument,
		DriverType:  domain.DriverTypeNonEssential,
		DateOfBirth: "1985-01-01",
	})
	require.NoError(t, err)
	assert.NotNil(t, rec)
	require.Len(t, repo.records, 1)
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		dob  string
		want *int
	}{
		{"1985-06-15", intPtr(40)}, // birthday today
		{"1985-06-16", intPtr(39)}, // birthday tomorrow
		{"2004-01-01", intPtr(21)},
		{"", nil},
		{"not-a-date", nil},
		{"15/06/1985", nil},
		{"2030-01-01", nil}, // future date
	}

	for _, tt := range tests {
		got := ageFromDOB(tt.dob, now)
		if tt.want == nil {
			assert.Nil(t, got, tt.dob)
			continue
		}
		require.NotNil(t, got, tt.dob)
		assert.Equal(t, *tt.want, *got, tt.dob)
	}
}

func intPtr(i int) *int { return &i }
