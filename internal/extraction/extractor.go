package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/job-ledger/internal/llm"
	"github.com/jonathan/job-ledger/internal/logger"
	"github.com/jonathan/job-ledger/internal/types"
	"github.com/rs/zerolog"
)

const (
	// DefaultMaxAttempts is how many times the model is asked before giving up
	DefaultMaxAttempts = 3
	// DefaultRetryDelay is the fixed pause between attempts
	DefaultRetryDelay = 500 * time.Millisecond
)

// Model is the text-generation service the extractor depends on.
// llm.Client satisfies it.
type Model interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// State is a step of the retry state machine.
type State int

const (
	// StateAttempting means another model call is about to be made
	StateAttempting State = iota
	// StateSucceeded means an attempt produced a record
	StateSucceeded
	// StateExhausted means every attempt failed and the default record was returned
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateSucceeded:
		return "succeeded"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is the outcome of one extraction.
type Result struct {
	Record   types.JobRecord
	State    State
	Attempts int
	// Errors holds the failure of each unsuccessful attempt, in order.
	Errors []error
}

// Exhausted reports whether the record is the fallback default rather than model output.
func (r *Result) Exhausted() bool {
	return r.State == StateExhausted
}

// Options configures an Extractor. Zero values take the defaults.
type Options struct {
	MaxAttempts int
	RetryDelay  time.Duration
	DeepRepair  bool
	Logger      *zerolog.Logger
	// Sleep replaces time.Sleep for the pause between attempts.
	Sleep func(time.Duration)
}

// Extractor drives bounded attempts of invoke, repair, parse and normalize.
type Extractor struct {
	model       Model
	schema      llm.ExtractionSchema
	repairer    Repairer
	maxAttempts int
	retryDelay  time.Duration
	sleep       func(time.Duration)
	log         zerolog.Logger
}

// NewExtractor creates an Extractor for the job record schema.
func NewExtractor(model Model, opts Options) *Extractor {
	e := &Extractor{
		model:       model,
		schema:      JobRecordSchema(),
		repairer:    Repairer{Deep: opts.DeepRepair},
		maxAttempts: opts.MaxAttempts,
		retryDelay:  opts.RetryDelay,
		sleep:       opts.Sleep,
		log:         zerolog.Nop(),
	}
	if e.maxAttempts <= 0 {
		e.maxAttempts = DefaultMaxAttempts
	}
	if e.retryDelay < 0 {
		e.retryDelay = 0
	} else if e.retryDelay == 0 {
		e.retryDelay = DefaultRetryDelay
	}
	if e.sleep == nil {
		e.sleep = time.Sleep
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	return e
}

// Extract runs the retry state machine for one job posting.
// It never fails: when every attempt fails the result holds the default record.
// A logger attached to ctx (see logger.WithContext) takes precedence over Options.Logger.
func (e *Extractor) Extract(ctx context.Context, jobText string) *Result {
	log := logger.FromContext(ctx, &e.log)
	prompt := BuildPrompt(e.schema, jobText)
	result := &Result{State: StateAttempting}

	for result.State == StateAttempting {
		result.Attempts++
		record, err := e.attempt(ctx, log, prompt)
		result.State = e.next(result.Attempts, err)

		switch result.State {
		case StateSucceeded:
			result.Record = record
			log.Debug().Int("attempt", result.Attempts).Msg("extraction succeeded")
		case StateAttempting:
			result.Errors = append(result.Errors, err)
			log.Warn().Err(err).Int("attempt", result.Attempts).Int("max_attempts", e.maxAttempts).
				Msg("extraction attempt failed, retrying")
			e.sleep(e.retryDelay)
		case StateExhausted:
			result.Errors = append(result.Errors, err)
			result.Record = types.EmptyJobRecord()
			log.Error().Err(err).Int("attempts", result.Attempts).
				Msg("extraction attempts exhausted, returning empty record")
		}
	}

	return result
}

// next is the transition function of the retry state machine.
func (e *Extractor) next(attempt int, err error) State {
	switch {
	case err == nil:
		return StateSucceeded
	case attempt >= e.maxAttempts:
		return StateExhausted
	default:
		return StateAttempting
	}
}

// attempt performs one invoke, repair, parse, normalize pass.
func (e *Extractor) attempt(ctx context.Context, log *zerolog.Logger, prompt string) (types.JobRecord, error) {
	output, err := e.model.GenerateContent(ctx, prompt)
	if err != nil {
		return types.JobRecord{}, &ModelError{Message: "failed to generate content", Cause: err}
	}
	log.Debug().Str("output", output).Msg("raw model output")

	repaired, err := e.repairer.Repair(output)
	if err != nil {
		return types.JobRecord{}, err
	}

	raw, err := Parse(repaired)
	if err != nil {
		return types.JobRecord{}, err
	}

	return Normalize(raw), nil
}
