// Package events publishes evaluation lifecycle events to the message
// broker so downstream consumers (fleet dashboards, HR systems) can
// react to new decisions.
package events

import (
	"context"

	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/pkg/logger"
	"github.com/fleetgate/fleetgate-backend/pkg/messaging"
)

// Publisher is the event sink the service publishes through. Satisfied
// by messaging.Publisher in production and by a mock in tests.
type Publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// EvaluationPublisher emits evaluation events. Broker failures are
// logged and swallowed: the evaluation result and its persisted record
// are the source of truth, events are best-effort notification.
type EvaluationPublisher struct {
	publisher Publisher
	log       *logger.Logger
}

// NewEvaluationPublisher creates an EvaluationPublisher. publisher may
// be nil, in which case all emits are no-ops (broker not configured).
func NewEvaluationPublisher(publisher Publisher, log *logger.Logger) *EvaluationPublisher {
	return &EvaluationPublisher{publisher: publisher, log: log}
}

// EvaluationCompleted emits one event per finished evaluation
func (p *EvaluationPublisher) EvaluationCompleted(ctx context.Context, rec *domain.EvaluationRecord) {
	if p.publisher == nil {
		return
	}

	payload := messaging.EvaluationCompletedEvent{
		EvaluationID:   rec.ID.String(),
		DriverName:     rec.DriverName,
		DriverType:     string(rec.DriverType),
		Jurisdiction:   rec.Jurisdiction,
		Classification: string(rec.Classification),
		FinalVerdict:   rec.FinalVerdict,
		ViolationCount: rec.ViolationCount,
		AccidentCount:  rec.AccidentCount,
		PolicyVersion:  rec.PolicyVersion,
		Reasons:        rec.DisqualificationReasons,
	}
	if err := p.publisher.Publish(ctx, messaging.EventEvaluationCompleted, payload); err != nil {
		p.log.WithError(err).Warn().
			Str("evaluation_id", rec.ID.String()).
			Msg("failed to publish evaluation completed event")
	}

	if rec.Disqualified() {
		p.driverDisqualified(ctx, rec)
	}
}

func (p *EvaluationPublisher) driverDisqualified(ctx context.Context, rec *domain.EvaluationRecord) {
	payload := messaging.DriverDisqualifiedEvent{
		EvaluationID: rec.ID.String(),
		DriverName:   rec.DriverName,
		DriverType:   string(rec.DriverType),
		Reasons:      rec.DisqualificationReasons,
	}
	if err := p.publisher.Publish(ctx, messaging.EventDriverDisqualified, payload); err != nil {
		p.log.WithError(err).Warn().
			Str("evaluation_id", rec.ID.String()).
			Msg("failed to publish driver disqualified event")
	}
}

// LogExported emits an event when the evaluation log is exported
func (p *EvaluationPublisher) LogExported(ctx context.Context, format string, recordCount int) {
	if p.publisher == nil {
		return
	}

	payload := map[string]interface{}{
		"format":       format,
		"record_count": recordCount,
	}
	if err := p.publisher.Publish(ctx, messaging.EventEvaluationLogExported, payload); err != nil {
		p.log.WithError(err).Warn().Msg("failed to publish log exported event")
	}
}
