package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"text/template"
	"time"

	"github.com/aigovern/admin-api/internal/config"
	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/generation"
	"google.golang.org/genai"
)

// riskPromptTemplate asks the model for a compact plain-text assessment. The
// output is stored verbatim on the review record, so the prompt constrains
// length and format rather than relying on post-processing.
const riskPromptTemplate = `You are assisting a data governance team.
Summarize the security risk of granting access to the following dataset in
at most three sentences of plain text. Do not use markdown.

Dataset name: {{.Name}}
Sensitivity: {{.Sensitivity}}
Description: {{.Description}}
Review reason: {{.Reason}}`

// promptData carries the fields interpolated into riskPromptTemplate.
type promptData struct {
	Name        string
	Sensitivity string
	Description string
	Reason      string
}

// RiskSummarizer implements generation.RiskSummarizer using Google's Gemini
// API.
type RiskSummarizer struct {
	logger         *slog.Logger
	config         config.ReviewConfig
	promptTemplate *template.Template
	client         *genai.Client
	model          string
}

// NewRiskSummarizer creates a RiskSummarizer from the review configuration.
// Returns generation.ErrInvalidConfig if the API key or model name is
// missing.
func NewRiskSummarizer(ctx context.Context, logger *slog.Logger, cfg config.ReviewConfig) (*RiskSummarizer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	promptTemplate, err := template.New("risk").Parse(riskPromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v",
			generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &RiskSummarizer{
		logger:         logger.With(slog.String("component", "risk_summarizer")),
		config:         cfg,
		promptTemplate: promptTemplate,
		client:         client,
		model:          cfg.ModelName,
	}, nil
}

// Ensure RiskSummarizer implements generation.RiskSummarizer
var _ generation.RiskSummarizer = (*RiskSummarizer)(nil)

// SummarizeRisk implements generation.RiskSummarizer.SummarizeRisk
func (g *RiskSummarizer) SummarizeRisk(ctx context.Context, dataset *domain.Dataset, reason string) (string, error) {
	if dataset == nil {
		return "", errors.New("dataset cannot be nil")
	}

	prompt, err := g.createPrompt(dataset, reason)
	if err != nil {
		return "", err
	}

	return g.callWithRetry(ctx, prompt)
}

// createPrompt renders the prompt template for the given dataset and reason.
func (g *RiskSummarizer) createPrompt(dataset *domain.Dataset, reason string) (string, error) {
	data := promptData{
		Name:        dataset.Name,
		Sensitivity: dataset.Sensitivity,
		Description: dataset.Description,
		Reason:      reason,
	}

	var buf bytes.Buffer
	if err := g.promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	return buf.String(), nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Permanent errors (blocked content, unusable responses) return immediately;
// transient errors are retried up to the configured budget.
func (g *RiskSummarizer) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		baseDelaySeconds = 2
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		summary, err, transient := g.callOnce(ctx, prompt)
		if err == nil {
			return summary, nil
		}

		g.logger.ErrorContext(ctx, "gemini call failed",
			"attempt", attempt+1,
			"error", err)

		if !transient {
			return "", err
		}

		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * jitter in [0.5, 1.0)
		backoff := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// callOnce performs a single generation call. The third return value reports
// whether the error is worth retrying.
func (g *RiskSummarizer) callOnce(ctx context.Context, prompt string) (string, error, bool) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		// API and transport errors are assumed transient.
		return "", err, true
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse), false
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked), false
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse), false
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	summary := strings.TrimSpace(sb.String())
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary text", generation.ErrInvalidResponse), false
	}

	return summary, nil, false
}
