package review

import (
	"context"
	"fmt"
	"os"

	"github.com/gavel-review/gavel/internal/config"
	"github.com/gavel-review/gavel/internal/diff"
	"github.com/gavel-review/gavel/internal/llm"
	"github.com/gavel-review/gavel/internal/project"
)

// Orchestrator runs the complete review: per-file assessment followed by
// conclusion and confidence scoring.
type Orchestrator struct {
	client llm.Client
	cfg    config.Config

	// OnFile is forwarded to the file reviewer for progress reporting.
	OnFile func(filename string)
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(client llm.Client, cfg config.Config) *Orchestrator {
	return &Orchestrator{client: client, cfg: cfg}
}

// Run reviews the given entries against pc. A nil pc falls back to a
// minimal placeholder context carrying only the configured critical paths.
func (o *Orchestrator) Run(ctx context.Context, entries []diff.Entry, pc *project.Context) (*Result, error) {
	if pc == nil {
		pc = project.Minimal(o.cfg.CriticalPaths)
	}

	guidelines, err := o.loadGuidelines()
	if err != nil {
		return nil, err
	}

	reviewer := NewFileReviewer(o.client, pc, o.cfg, guidelines)
	reviewer.OnFile = o.OnFile

	reviews, err := reviewer.ReviewAll(ctx, entries)
	if err != nil {
		return nil, err
	}

	conclusion, confidence := calculateResult(reviews)
	return &Result{
		Conclusion:    conclusion,
		Confidence:    confidence,
		FilesReviewed: reviews,
		Summary:       generateSummary(reviews),
	}, nil
}

func (o *Orchestrator) loadGuidelines() (string, error) {
	if o.cfg.CustomPrompt == "" {
		return "", nil
	}
	data, err := os.ReadFile(o.cfg.CustomPrompt)
	if err != nil {
		return "", fmt.Errorf("reading custom prompt file: %w", err)
	}
	return string(data), nil
}

// calculateResult derives the verdict from the per-file risk levels. Any
// high-risk file forces needs_review at a fixed 95.0 confidence. Otherwise
// confidence starts at 100 and loses 10 per medium and 2 per low file,
// floored at 50; more than two medium files tips the verdict to
// needs_review.
func calculateResult(reviews []FileReview) (Conclusion, float64) {
	var high, medium, low int
	for _, r := range reviews {
		switch r.Risk {
		case RiskHigh:
			high++
		case RiskMedium:
			medium++
		default:
			low++
		}
	}

	confidence := 100.0 - float64(medium)*10 - float64(low)*2
	confidence = max(confidence, 50.0)

	if high > 0 {
		return NeedsReview, 95.0
	}
	if medium <= 2 {
		return CanSubmit, confidence
	}
	return NeedsReview, confidence
}

func generateSummary(reviews []FileReview) string {
	if len(reviews) == 0 {
		return "No files to review."
	}
	summary := ""
	for i, r := range reviews {
		if i > 0 {
			summary += "\n"
		}
		summary += fmt.Sprintf("- %s: %s (%d issues)", r.FilePath, r.Risk, len(r.Issues))
	}
	return summary
}
