package parser

import (
	"github.com/fleetgate/fleetgate-backend/internal/mvr/domain"
	"github.com/fleetgate/fleetgate-backend/internal/mvr/jurisdiction"
)

// TraceEvent describes one extraction step for observability. The hook
// is optional; with no hook installed extraction runs silently.
type TraceEvent struct {
	Stage  string
	Detail string
}

// TraceFunc receives trace events during extraction
type TraceFunc func(TraceEvent)

// Parser runs the full extraction pipeline over one document. It holds
// no per-document state, so a single Parser is safe for concurrent use.
type Parser struct {
	onTrace TraceFunc
}

// New creates a Parser. trace may be nil.
func New(trace TraceFunc) *Parser {
	return &Parser{onTrace: trace}
}

// Parse extracts all structured fields from raw MVR text. It never
// fails: every field degrades to its documented empty value when the
// document does not yield it.
func (p *Parser) Parse(rawText string) domain.ParsedFields {
	lines := Segment(rawText)
	profile := jurisdiction.Detect(rawText)
	p.trace("jurisdiction", profile.ID)

	name := ExtractName(lines, rawText)
	p.trace("name", name)

	status, explanation := ExtractStatus(lines, rawText, profile)
	p.trace("status", status)

	counts := CountIncidents(lines, profile)
	convictions := ScanConvictions(rawText, profile)

	return domain.ParsedFields{
		DriverName:               name,
		Jurisdiction:             profile.ID,
		LicenseStatus:            status,
		LicenseStatusExplanation: explanation,
		ViolationCount:           counts.Violations,
		AccidentCount:            counts.Accidents,
		MajorConvictions:         convictions,
	}
}

func (p *Parser) trace(stage, detail string) {
	if p.onTrace != nil {
		p.onTrace(TraceEvent{Stage: stage, Detail: detail})
	}
}
