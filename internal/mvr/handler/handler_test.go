package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/events"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/policy"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/service"
	"github.com/fleetgate/fleetgate-backend/pkg/config"
	"github.com/fleetgate/fleetgate-backend/pkg/errors"
	"github.com/fleetgate/fleetgate-backend/pkg/httputil"
	"github.com/fleetgate/fleetgate-backend/pkg/logger"
	"github.com/fleetgate/fleetgate-backend/pkg/testutil"
)

type stubRepo struct {
	records []*domain.EvaluationRecord
}

func (s *stubRepo) Append(_ context.Context, rec *domain.EvaluationRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func (s *stubRepo) List(_ context.Context) ([]*domain.EvaluationRecord, error) {
	return s.records, nil
}

func (s *stubRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.EvaluationRecord, error) {
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.NotFound("evaluation record")
}

func newTestHandler(repo *stubRepo) *Handler {
	engine := policy.NewEngine(config.PolicyConfig{
		Version:              "FleetGate Driver Standards (June 2025)",
		EssentialMinAge:      25,
		NonEssentialMinAge:   21,
		EssentialIncidentCap: 3,
	})
	log := logger.Nop()
	svc := service.NewService(engine, repo, events.NewEvaluationPublisher(testutil.NewMockPublisher(), log), log)
	return NewHandler(svc, log)
}

const testDocument = "CALIFORNIA DMV\nDRIVER RECORD REPORT\nName Searched DOE JANE\nLicense Status: VALID\nVIOLATIONS/CONVICTIONS\n*** NONE TO REPORT ***\n"

func postEvaluation(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	return rr
}

func TestHandler_Create(t *testing.T) {
	repo := &stubRepo{}
	h := newTestHandler(repo)

	payload, _ := json.Marshal(map[string]string{
		"documentText": testDocument,
		"driverType":   "non-essential",
		"dateOfBirth":  "1985-01-01",
	})

	rr := postEvaluation(t, h, string(payload))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var rec domain.EvaluationRecord
	require.NoError(t, json.Unmarshal(data, &rec))

	assert.Equal(t, "DOE JANE", rec.DriverName)
	assert.Equal(t, domain.ClassificationClear, rec.Classification)
	assert.Equal(t, "Clear", rec.FinalVerdict)
	require.Len(t, repo.records, 1)
}

func TestHandler_CreateValidation(t *testing.T) {
	h := newTestHandler(&stubRepo{})

	tests := []struct {
		name string
		body string
	}{
		{"missing document text", `{"driverType":"essential"}`},
		{"bad driver type", `{"documentText":"text","driverType":"contractor"}`},
		{"bad date format", `{"documentText":"text","driverType":"essential","dateOfBirth":"01/01/1990"}`},
		{"malformed json", `{"documentText":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postEvaluation(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())
		})
	}
}

func TestHandler_List(t *testing.T) {
	repo := &stubRepo{}
	h := newTestHandler(repo)

	// Seed through the API so records are realistic
	payload, _ := json.Marshal(map[string]string{
		"documentText": testDocument,
		"driverType":   "essential",
		"dateOfBirth":  "1980-05-05",
	})
	require.Equal(t, http.StatusCreated, postEvaluation(t, h, string(payload)).Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	records, ok := resp.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, records, 1)
}

func TestHandler_Get(t *testing.T) {
	repo := &stubRepo{}
	h := newTestHandler(repo)

	payload, _ := json.Marshal(map[string]string{
		"documentText": testDocument,
		"driverType":   "essential",
		"dateOfBirth":  "1980-05-05",
	})
	require.Equal(t, http.StatusCreated, postEvaluation(t, h, string(payload)).Code)
	id := repo.records[0].ID

	req := httptest.NewRequest(http.MethodGet, "/"+id.String(), nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/"+uuid.NewString(), nil)
	rr = httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/not-a-uuid", nil)
	rr = httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_ExportCSV(t *testing.T) {
	repo := &stubRepo{}
	h := newTestHandler(repo)

	payload, _ := json.Marshal(map[string]string{
		"documentText": testDocument,
		"driverType":   "non-essential",
		"dateOfBirth":  "1985-01-01",
	})
	require.Equal(t, http.StatusCreated, postEvaluation(t, h, string(payload)).Code)

	req := httptest.NewRequest(http.MethodGet, "/export?format=csv", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "mvr_evaluation_logs_")

	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, "timestamp,driverName,"))
	assert.Contains(t, body, "DOE JANE")
}

func TestHandler_ExportUnknownFormat(t *testing.T) {
	h := newTestHandler(&stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/export?format=pdf", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_ExportXLSX(t *testing.T) {
	h := newTestHandler(&stubRepo{})

	req := httptest.NewRequest(http.MethodGet, "/export?format=xlsx", nil)
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "spreadsheetml")
	// XLSX is a ZIP container
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
}
