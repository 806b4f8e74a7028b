package narrative

import (
	"context"
	"time"

	"github.com/rshade/esgready/internal/logging"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 30 * time.Second

// Sources of a narrative.
const (
	SourceAI            = "ai"
	SourceDeterministic = "deterministic"
)

// Narrative is generated or fallback text with its provenance.
type Narrative struct {
	Text     string    `json:"text"`
	Source   string    `json:"source"`
	Sections *Sections `json:"sections,omitempty"`

	// FallbackReason explains why generated text was not used.
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// Service runs generation with a timeout and deterministic fallback.
// A nil Generator always falls back.
type Service struct {
	gen     Generator
	timeout time.Duration
}

// NewService returns a Service. A non-positive timeout uses DefaultTimeout.
func NewService(gen Generator, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{gen: gen, timeout: timeout}
}

// Narrate returns the ESG narrative for c. It never fails.
func (s *Service) Narrate(ctx context.Context, c Context) Narrative {
	sections := Build(c)
	fallback := Narrative{Text: sections.Markdown(), Source: SourceDeterministic, Sections: &sections}

	prompt, err := NarrativePrompt(c)
	if err != nil {
		fallback.FallbackReason = err.Error()
		return fallback
	}
	text, reason := s.generate(ctx, "Narrate", prompt)
	if reason != "" {
		fallback.FallbackReason = reason
		return fallback
	}
	return Narrative{Text: text, Source: SourceAI}
}

// ExplainRisk returns the audit risk explanation for c. It never fails.
func (s *Service) ExplainRisk(ctx context.Context, c Context) Narrative {
	fallback := Narrative{Text: ExplainRisk(c), Source: SourceDeterministic}

	prompt, err := RiskPrompt(c)
	if err != nil {
		fallback.FallbackReason = err.Error()
		return fallback
	}
	text, reason := s.generate(ctx, "ExplainRisk", prompt)
	if reason != "" {
		fallback.FallbackReason = reason
		return fallback
	}
	return Narrative{Text: text, Source: SourceAI}
}

// generate returns cleaned text, or a non-empty fallback reason.
func (s *Service) generate(ctx context.Context, operation, prompt string) (string, string) {
	logger := logging.FromContext(ctx).With().
		Str("component", "narrative").
		Str("operation", operation).
		Logger()

	if s == nil || s.gen == nil {
		return "", ErrNoAPIKey.Error()
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.gen.Generate(genCtx, prompt, SystemPrompt)
	if err == nil {
		text = Clean(text)
		if text == "" {
			err = ErrEmptyResponse
		}
	}
	if err != nil {
		logger.Warn().
			Err(err).
			Dur("elapsed", time.Since(start)).
			Msg("text generation failed, using deterministic narrative")
		return "", err.Error()
	}

	logger.Debug().
		Dur("elapsed", time.Since(start)).
		Int("chars", len(text)).
		Msg("text generated")
	return text, ""
}
