// Package pipeline orchestrates one parse run: document pre-filter, corpus assembly, the five
// field extractors in parallel, merge, schema check and storage.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/corpus"
	"github.com/jonathan/resume-builder/internal/history"
	"github.com/jonathan/resume-builder/internal/parsing"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// Progress steps
const (
	StepFilter   = "filter"
	StepAssemble = "assemble"
	StepExtract  = "extract"
	StepMerge    = "merge"
	StepStore    = "store"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// HistoryStore persists the aggregate produced by a run
type HistoryStore interface {
	SaveHistory(ctx context.Context, userID string, h types.StructuredHistory) error
}

// Options holds the input of one run
type Options struct {
	UserID    string
	Documents []types.Document
	// PerDocument extracts every document on its own and merges the results instead of
	// extracting once over the combined corpus
	PerDocument bool
	OnProgress  ProgressCallback
}

// Result is the outcome of a run
type Result struct {
	History  types.StructuredHistory
	Sources  []corpus.Source
	Excluded []types.Document
	// SchemaErrors lists schema violations of the final aggregate; they are reported, not fatal
	SchemaErrors []string
	Stored       bool
}

// Pipeline runs parse requests. It holds no per-run state and is safe for concurrent use.
type Pipeline struct {
	assembler *corpus.Assembler
	extractor *parsing.Extractor
	store     HistoryStore
	logger    *zap.Logger
}

// New creates a Pipeline. store may be nil, in which case results are returned but not saved.
func New(assembler *corpus.Assembler, extractor *parsing.Extractor, store HistoryStore, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if assembler == nil {
		assembler = corpus.NewAssembler(nil, logger)
	}
	if extractor == nil {
		extractor = parsing.NewExtractor(nil, logger)
	}
	return &Pipeline{assembler: assembler, extractor: extractor, store: store, logger: logger}
}

// Run executes one parse. Only an *InputError is returned; extraction problems degrade to
// placeholders and fallbacks, and a storage failure is logged with Result.Stored left false.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	userID := strings.TrimSpace(opts.UserID)
	if userID == "" {
		return nil, &InputError{Message: "user id is required"}
	}
	if len(opts.Documents) == 0 {
		return nil, &InputError{Message: fmt.Sprintf("no documents found for user %s", userID)}
	}

	log := p.logger.With(zap.String("user_id", userID))

	kept, excluded := corpus.FilterBiographical(opts.Documents)
	for _, doc := range excluded {
		log.Info("document excluded from corpus",
			zap.String("document_id", doc.ID),
			zap.String("category", string(doc.Category)),
		)
	}
	if len(kept) == 0 {
		return nil, &InputError{Message: fmt.Sprintf("no biographical documents found for user %s", userID)}
	}
	emit(opts, StepFilter, fmt.Sprintf("Kept %d of %d documents", len(kept), len(opts.Documents)), nil)

	result := &Result{Excluded: excluded}

	if opts.PerDocument {
		parts := make([]types.StructuredHistory, 0, len(kept))
		for _, doc := range kept {
			c := p.assembler.Assemble(ctx, []types.Document{doc})
			result.Sources = append(result.Sources, c.Sources...)
			parts = append(parts, p.extractAll(ctx, c.Text))
		}
		emit(opts, StepExtract, fmt.Sprintf("Extracted %d documents separately", len(parts)), nil)
		result.History = history.Merge(parts...)
		emit(opts, StepMerge, "Merged per-document histories", nil)
	} else {
		c := p.assembler.Assemble(ctx, kept)
		result.Sources = c.Sources
		emit(opts, StepAssemble, fmt.Sprintf("Assembled corpus from %d documents (%d failed)", len(c.Sources), c.Failed()), nil)
		result.History = p.extractAll(ctx, c.Text)
		emit(opts, StepExtract, "Extracted all fields", nil)
	}

	if err := schemas.ValidateHistory(result.History); err != nil {
		log.Warn("history failed schema check", zap.Error(err))
		result.SchemaErrors = schemaMessages(err)
	}

	if p.store != nil {
		if err := p.store.SaveHistory(ctx, userID, result.History); err != nil {
			log.Error("failed to store history", zap.Error(err))
		} else {
			result.Stored = true
			emit(opts, StepStore, "Stored history", nil)
		}
	}

	log.Info("parse finished",
		zap.Int("documents", len(result.Sources)),
		zap.Int("skills", len(result.History.Skills)),
		zap.Int("education", len(result.History.Education)),
		zap.Int("certifications", len(result.History.Certifications)),
		zap.Int("jobs", len(result.History.JobHistory)),
	)
	return result, nil
}

// extractAll runs the five field extractors concurrently over one corpus and combines their
// outputs. Each goroutine writes only its own variable and no extractor returns an error, so
// one field never affects another.
func (p *Pipeline) extractAll(ctx context.Context, text string) types.StructuredHistory {
	var (
		contact        types.ContactInformation
		skills         []string
		education      []types.EducationEntry
		certifications []types.CertificationEntry
		jobs           []types.JobHistoryEntry
	)

	var g errgroup.Group
	g.Go(func() error {
		contact = p.extractor.Contact(ctx, text)
		return nil
	})
	g.Go(func() error {
		skills = p.extractor.Skills(ctx, text)
		return nil
	})
	g.Go(func() error {
		education = p.extractor.Education(ctx, text)
		return nil
	})
	g.Go(func() error {
		certifications = p.extractor.Certifications(ctx, text)
		return nil
	})
	g.Go(func() error {
		jobs = p.extractor.JobHistory(ctx, text)
		return nil
	})
	_ = g.Wait()

	return history.Combine(contact, skills, education, certifications, jobs)
}

func emit(opts Options, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			UserID:  opts.UserID,
			Content: content,
		})
	}
}

func schemaMessages(err error) []string {
	var out []string
	var ve *schemas.ValidationError
	if errors.As(err, &ve) {
		for _, fe := range ve.Errors {
			out = append(out, fe.Field+": "+fe.Message)
		}
		return out
	}
	return []string{err.Error()}
}
