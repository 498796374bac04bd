// Package parsing extracts the five structured history fields (contact information, skills,
// education, certifications and job history) from an assembled corpus.
//
// Each field has a primary AI path and a deterministic fallback. The AI response is treated
// as untrusted input: it is cleaned, decoded loosely and coerced field by field into the
// canonical shape. The fallback runs when no client is configured, when the call fails, or
// when the response is not usable JSON. No extractor returns an error.
package parsing

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/prompts"
)

// Field names one of the five extracted fields
type Field string

// Extracted fields
const (
	FieldContact        Field = "contactInformation"
	FieldSkills         Field = "skills"
	FieldEducation      Field = "education"
	FieldCertifications Field = "certifications"
	FieldJobHistory     Field = "jobHistory"
)

// Fields lists every extracted field in aggregate order
var Fields = []Field{FieldContact, FieldSkills, FieldEducation, FieldCertifications, FieldJobHistory}

// Source records which path produced a field
type Source string

// Extraction paths
const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// fieldSpec binds a field to its prompt, output schema and model tier
type fieldSpec struct {
	promptKey string
	schema    func(rules string) llm.ExtractionSchema
	tier      llm.ModelTier
}

var fieldSpecs = map[Field]fieldSpec{
	FieldContact:        {prompts.KeyContact, llm.ContactSchema, llm.TierLite},
	FieldSkills:         {prompts.KeySkills, llm.SkillsSchema, llm.TierLite},
	FieldEducation:      {prompts.KeyEducation, llm.EducationSchema, llm.TierStandard},
	FieldCertifications: {prompts.KeyCertifications, llm.CertificationsSchema, llm.TierStandard},
	FieldJobHistory:     {prompts.KeyJobHistory, llm.JobHistorySchema, llm.TierAdvanced},
}

// Extractor runs the field extractors. The client is shared read-only by every field;
// a nil client means every field uses its fallback.
type Extractor struct {
	client llm.Client
	logger *zap.Logger
}

// NewExtractor creates an Extractor. Both arguments may be nil.
func NewExtractor(client llm.Client, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{client: client, logger: logger}
}

// HasClient reports whether an AI client is configured
func (e *Extractor) HasClient() bool {
	return e.client != nil
}

// generate runs the AI path for one field and returns the decoded payload for that field.
// ok is false when the caller must use its fallback.
func (e *Extractor) generate(ctx context.Context, field Field, corpus string) (payload any, ok bool) {
	log := e.logger.With(zap.String("field", string(field)))
	if e.client == nil {
		log.Debug("no AI client configured, using fallback")
		return nil, false
	}

	prompt := buildPrompt(field, corpus)
	spec := fieldSpecs[field]

	raw, err := e.client.GenerateJSON(ctx, prompt, spec.tier)
	if err != nil {
		log.Warn("AI call failed, using fallback",
			zap.Error(&APICallError{Field: string(field), Message: "failed to generate content", Cause: err}))
		return nil, false
	}

	decoded, err := decodeResponse(field, raw)
	if err != nil {
		log.Warn("AI response unusable, using fallback", zap.Error(err))
		return nil, false
	}
	log.Debug("field extracted", zap.String("source", string(SourceAI)), zap.String("tier", string(spec.tier)))
	return unwrapPayload(decoded, string(field)), true
}

// buildPrompt renders the instruction prompt and output schema for a field
func buildPrompt(field Field, corpus string) string {
	spec := fieldSpecs[field]
	rules := prompts.Format(prompts.MustGet(prompts.ExtractionFile, spec.promptKey), map[string]string{
		"MaxSkills": strconv.Itoa(MaxSkills),
	})
	return llm.BuildExtractionPrompt(spec.schema(rules), corpus)
}

// decodeResponse cleans and decodes a raw model response. Only objects and arrays are usable.
func decodeResponse(field Field, raw string) (any, error) {
	text := llm.CleanJSONBlock(raw)
	if text == "" {
		return nil, &ParseError{Field: string(field), Message: "empty response"}
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, &ParseError{Field: string(field), Message: "failed to parse JSON response", Cause: err}
	}

	switch decoded.(type) {
	case map[string]any, []any:
		return decoded, nil
	default:
		return nil, &ParseError{Field: string(field), Message: "response is not a JSON object or array"}
	}
}

func (e *Extractor) logFallback(field Field, count int) {
	e.logger.Debug("field extracted",
		zap.String("field", string(field)),
		zap.String("source", string(SourceFallback)),
		zap.Int("entries", count),
	)
}
