// Package pipeline runs one job posting through extraction and appends the result to the ledger.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/job-ledger/internal/extraction"
	"github.com/jonathan/job-ledger/internal/ledger"
	"github.com/jonathan/job-ledger/internal/logger"
	"github.com/jonathan/job-ledger/internal/types"
)

// Step names reported through ProgressEvent.
const (
	StepExtract = "extract"
	StepAppend  = "append"
)

// ProgressEvent represents a progress update during a pipeline run
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Extractor turns job text into a record. extraction.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, jobText string) *extraction.Result
}

// Options holds optional pipeline collaborators
type Options struct {
	Logger     *zerolog.Logger
	OnProgress ProgressCallback
}

// Pipeline wires an extractor to a ledger. Calls are serialised so the ledger has a single writer.
type Pipeline struct {
	extractor  Extractor
	ledger     ledger.Appender
	log        zerolog.Logger
	onProgress ProgressCallback

	mu sync.Mutex
}

// Outcome is what one Process call produced.
type Outcome struct {
	RequestID string          `json:"request_id"`
	Record    types.JobRecord `json:"record"`
	Attempts  int             `json:"attempts"`
	Exhausted bool            `json:"exhausted"`
	Status    string          `json:"status"`
	// Errors holds the failure of each unsuccessful extraction attempt.
	Errors []error `json:"-"`
}

// New creates a Pipeline.
func New(extractor Extractor, appender ledger.Appender, opts Options) *Pipeline {
	p := &Pipeline{
		extractor:  extractor,
		ledger:     appender,
		log:        zerolog.Nop(),
		onProgress: opts.OnProgress,
	}
	if opts.Logger != nil {
		p.log = *opts.Logger
	}
	return p
}

// Process extracts a record from jobText and appends it to the ledger.
// Extraction failures never surface here; only ledger errors are returned.
func (p *Pipeline) Process(ctx context.Context, jobText string) (*Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	requestID := uuid.New().String()
	log := p.log.With().Str("request_id", requestID).Logger()
	start := time.Now()

	log.Info().Int("text_length", len(jobText)).Msg("processing job posting")
	p.emit(ProgressEvent{Step: StepExtract, Message: "Extracting job fields", RequestID: requestID})

	result := p.extractor.Extract(logger.WithContext(ctx, log), jobText)
	outcome := &Outcome{
		RequestID: requestID,
		Record:    result.Record,
		Attempts:  result.Attempts,
		Exhausted: result.Exhausted(),
		Errors:    result.Errors,
	}
	switch {
	case outcome.Exhausted:
		log.Warn().Int("attempts", result.Attempts).Msg("storing empty record after failed extraction")
	case result.Record.IsEmpty():
		log.Warn().Int("attempts", result.Attempts).Msg("model returned no fields, storing empty record")
	}
	p.emit(ProgressEvent{Step: StepExtract, Message: "Extraction finished", RequestID: requestID, Content: result.Record})

	if err := p.ledger.Append(result.Record); err != nil {
		log.Error().Err(err).Msg("failed to append record")
		return nil, fmt.Errorf("failed to append record: %w", err)
	}
	p.emit(ProgressEvent{Step: StepAppend, Message: "Record appended", RequestID: requestID})

	outcome.Status = StatusMessage(result.Record)
	log.Info().
		Str("position", result.Record.Position).
		Str("company", result.Record.Company).
		Int("attempts", result.Attempts).
		Dur("duration", time.Since(start)).
		Msg("job posting added")

	return outcome, nil
}

// StatusMessage is the one-line confirmation shown to the user.
func StatusMessage(record types.JobRecord) string {
	return fmt.Sprintf("Added job posting for '%s' at '%s' to CSV.", record.Position, record.Company)
}

func (p *Pipeline) emit(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}
