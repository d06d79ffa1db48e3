// Package service orchestrates MVR evaluation: parse the document,
// classify the record, apply the driver policy, persist and publish.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/events"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/parser"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/policy"
	"github.com/fleetgate/fleetgate-backend/pkg/errors"
	"github.com/fleetgate/fleetgate-backend/pkg/logger"
)

// Repository is the evaluation log store
type Repository interface {
	Append(ctx context.Context, rec *domain.EvaluationRecord) error
	List(ctx context.Context) ([]*domain.EvaluationRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EvaluationRecord, error)
}

// Service evaluates MVR documents and maintains the evaluation log
type Service struct {
	parser    *parser.Parser
	engine    *policy.Engine
	repo      Repository
	publisher *events.EvaluationPublisher
	log       *logger.Logger
	now       func() time.Time
}

// NewService creates the evaluation service. The parser's trace hook is
// wired to debug logging.
func NewService(engine *policy.Engine, repo Repository, publisher *events.EvaluationPublisher, log *logger.Logger) *Service {
	p := parser.New(func(ev parser.TraceEvent) {
		log.Debug().Str("stage", ev.Stage).Str("detail", ev.Detail).Msg("extraction trace")
	})
	return &Service{
		parser:    p,
		engine:    engine,
		repo:      repo,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Evaluate runs the full pipeline over one document and appends the
// resulting record to the log. The extraction itself cannot fail;
// errors come only from input validation and persistence.
func (s *Service) Evaluate(ctx context.Context, input domain.EvaluationInput) (*domain.EvaluationRecord, error) {
	if input.RawText == "" {
		return nil, errors.BadRequest("document text must not be empty")
	}
	if !input.DriverType.IsValid() {
		return nil, errors.BadRequest("driver type must be essential or non-essential")
	}

	fields := s.parser.Parse(input.RawText)

	// A manually supplied name always wins over detection. Detection
	// still ran above so the trace shows what it would have found.
	name := fields.DriverName
	if input.ManualName != "" {
		name = input.ManualName
	}

	age := ageFromDOB(input.DateOfBirth, s.now())

	classification := policy.Classify(fields.ViolationCount, fields.AccidentCount)
	decision := s.engine.Evaluate(fields, classification, input.DriverType, age)

	rec := &domain.EvaluationRecord{
		ID:                       uuid.New(),
		EvaluatedAt:              s.now().UTC(),
		DriverName:               name,
		DriverType:               input.DriverType,
		Age:                      age,
		Jurisdiction:             fields.Jurisdiction,
		Classification:           classification,
		ViolationCount:           fields.ViolationCount,
		AccidentCount:            fields.AccidentCount,
		LicenseStatus:            fields.LicenseStatus,
		LicenseStatusExplanation: fields.LicenseStatusExplanation,
		MajorConvictions:         fields.MajorConvictions,
		FinalVerdict:             decision.Verdict,
		DisqualificationReasons:  decision.Reasons,
		PolicyVersion:            s.engine.Version(),
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("evaluation_id", rec.ID.String()).
		Str("jurisdiction", rec.Jurisdiction).
		Str("classification", string(rec.Classification)).
		Str("verdict", rec.FinalVerdict).
		Int("violations", rec.ViolationCount).
		Int("accidents", rec.AccidentCount).
		Msg("evaluation completed")

	s.publisher.EvaluationCompleted(ctx, rec)

	return rec, nil
}

// List returns the evaluation log oldest first
func (s *Service) List(ctx context.Context) ([]*domain.EvaluationRecord, error) {
	return s.repo.List(ctx)
}

// Get returns one evaluation record by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.EvaluationRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// NotifyExported reports a completed log export to the event stream
func (s *Service) NotifyExported(ctx context.Context, format string, recordCount int) {
	s.publisher.LogExported(ctx, format, recordCount)
}

// ageFromDOB computes whole years between a YYYY-MM-DD birth date and
// now. Returns nil for an empty or unparseable date; the policy engine
// treats nil as failing the age rules.
func ageFromDOB(dob string, now time.Time) *int {
	if dob == "" {
		return nil
	}
	birth, err := time.Parse("2006-01-02", dob)
	if err != nil {
		return nil
	}

	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return nil
	}
	return &years
}
