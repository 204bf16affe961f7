// Package llml is the language-model extraction adapter. It asks a hosted
// model to turn free text into a structured booking record and degrades to
// the deterministic local extractor on any failure, so extraction never
// blocks the pipeline
package llml

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"smartjotter/internal/core/localextract"
	"smartjotter/internal/core/record"
	perr "smartjotter/internal/platform/errors"
	"smartjotter/internal/platform/logger"
)

// Provider selects the hosted model family
type Provider string

// Supported providers
const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxTokens = 1024
)

// Options configures the Extractor
type Options struct {
	Provider Provider
	// APIKey empty means mock mode, which is a supported configuration
	APIKey    string
	BaseURL   string
	Model     string
	Timeout   time.Duration
	MaxTokens int64
}

// completer is the provider seam: one prompt in, raw JSON text plus token
// usage out
type completer interface {
	complete(ctx context.Context, system, user string) (raw string, outTokens, maxTokens int64, err error)
}

// Extractor converts free text into a BookingRecord
type Extractor struct {
	opts Options
	comp completer
	log  logger.Logger
}

// NewExtractor builds an Extractor for the configured provider
// unknown providers and missing keys both resolve to mock mode
func NewExtractor(o Options) *Extractor {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = defaultMaxTokens
	}
	e := &Extractor{opts: o, log: *logger.Named("llml")}
	if o.APIKey == "" {
		return e
	}
	switch o.Provider {
	case ProviderOpenAI:
		e.comp = newOpenAICompleter(o)
	case ProviderAnthropic:
		e.comp = newAnthropicCompleter(o)
	}
	return e
}

// Configured reports whether a hosted model will be called
func (e *Extractor) Configured() bool { return e.comp != nil }

// wireRecord is the JSON object the model is instructed to return
// every field is independently nullable; absence means "not stated"
type wireRecord struct {
	CustomerName *string `json:"customer_name"`
	Phone        *string `json:"phone"`
	Vehicle      *string `json:"vehicle"`
	Year         *string `json:"year"`
	Registration *string `json:"registration"`
	Issue        *string `json:"issue"`
	Notes        *string `json:"notes"`
}

// Extract returns a structured record for text
// the second return is a short degradation notice when the hosted call
// failed and the local extractor served instead; empty means a clean result
func (e *Extractor) Extract(ctx context.Context, text string) (record.BookingRecord, string, error) {
	if strings.TrimSpace(text) == "" {
		return record.BookingRecord{}, "", perr.Validationf("nothing to extract from")
	}
	if !e.Configured() {
		return localextract.Extract(text), "", nil
	}

	cctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	raw, outTok, maxTok, err := e.comp.complete(cctx, systemInstruction, text)
	if err != nil {
		e.log.Warn().Err(err).Msg("model call failed falling back to local extraction")
		return localextract.Extract(text), "extraction service unavailable, showing best-effort results", nil
	}

	raw = stripFences(raw)
	if err := validateRecordJSON([]byte(raw)); err != nil {
		e.log.Warn().Err(err).Msg("model response failed shape validation")
		return localextract.Extract(text), "extraction result was malformed, showing best-effort results", nil
	}

	var wr wireRecord
	if err := json.Unmarshal([]byte(raw), &wr); err != nil {
		e.log.Warn().Err(err).Msg("model response not decodable")
		return localextract.Extract(text), "extraction result was malformed, showing best-effort results", nil
	}

	rec := record.BookingRecord{
		CustomerName:      deref(wr.CustomerName),
		Phone:             deref(wr.Phone),
		Vehicle:           deref(wr.Vehicle),
		Year:              deref(wr.Year),
		Registration:      deref(wr.Registration),
		Issue:             deref(wr.Issue),
		Notes:             deref(wr.Notes),
		OverallConfidence: usageConfidence(outTok, maxTok),
		Scored:            true,
	}
	return rec, "", nil
}

// usageConfidence maps token usage to a score in [0,1]
// a terse reply relative to the output budget reads as certainty; the exact
// curve is a heuristic, only monotonicity and the bounds matter
func usageConfidence(outTokens, maxTokens int64) float64 {
	if maxTokens <= 0 || outTokens <= 0 {
		return 0.75
	}
	used := float64(outTokens) / float64(maxTokens)
	if used > 1 {
		used = 1
	}
	return clamp01(0.6 + 0.35*(1-used))
}

// stripFences removes a markdown code fence wrapper if the model added one
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
