package review

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gavel-review/gavel/internal/config"
	"github.com/gavel-review/gavel/internal/diff"
	"github.com/gavel-review/gavel/internal/llm"
	"github.com/gavel-review/gavel/internal/project"
	"github.com/gavel-review/gavel/internal/redact"
)

// FileReviewer reviews one diff entry at a time against a fixed project
// context.
type FileReviewer struct {
	client     llm.Client
	pc         *project.Context
	cfg        config.Config
	guidelines string

	// OnFile, when set, is called once per completed file. Callbacks may
	// run concurrently when concurrency is above one.
	OnFile func(filename string)
}

// NewFileReviewer creates a reviewer bound to a project context. guidelines
// replaces the built-in risk rubric when non-empty.
func NewFileReviewer(client llm.Client, pc *project.Context, cfg config.Config, guidelines string) *FileReviewer {
	return &FileReviewer{client: client, pc: pc, cfg: cfg, guidelines: guidelines}
}

// ReviewAll reviews every non-excluded entry and returns the reviews in the
// entries' order regardless of completion order. Per-file failures degrade
// to a low-risk empty review; ReviewAll itself fails only on context
// cancellation.
func (r *FileReviewer) ReviewAll(ctx context.Context, entries []diff.Entry) ([]FileReview, error) {
	kept := make([]diff.Entry, 0, len(entries))
	for _, entry := range entries {
		if ShouldExclude(entry.Filename, r.cfg.ExcludePatterns) {
			continue
		}
		kept = append(kept, entry)
	}
	if len(kept) == 0 {
		return nil, nil
	}

	results := make([]FileReview, len(kept))
	if r.cfg.Review.Concurrency <= 1 {
		for i, entry := range kept {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = r.reviewFile(ctx, entry)
			if r.OnFile != nil {
				r.OnFile(entry.Filename)
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Review.Concurrency)
	for i, entry := range kept {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.reviewFile(gctx, entry)
			if r.OnFile != nil {
				r.OnFile(entry.Filename)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type rawIssue struct {
	LineNumber  int    `json:"line_number"`
	RiskLevel   string `json:"risk_level"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

type rawReview struct {
	RiskLevel string     `json:"risk_level"`
	Issues    []rawIssue `json:"issues"`
	Summary   string     `json:"summary"`
}

func (r *FileReviewer) reviewFile(ctx context.Context, entry diff.Entry) FileReview {
	patch := entry.Patch
	if r.cfg.Privacy.RedactSecrets {
		patch = redact.Secrets(patch)
	}

	system, err := buildSystemPrompt(r.pc, r.cfg.ExcludePatterns, entry, patch, r.guidelines)
	if err != nil {
		return r.fallbackReview(entry)
	}

	resp, err := r.client.Complete(ctx, llm.Request{
		System:      system,
		User:        userMessage,
		Temperature: r.cfg.LLM.Temperature,
	})
	if err != nil {
		return r.fallbackReview(entry)
	}

	var raw rawReview
	if err := llm.DecodeJSON(resp.Content, &raw); err != nil {
		return r.fallbackReview(entry)
	}

	issues := make([]FileIssue, 0, len(raw.Issues))
	for _, issue := range raw.Issues {
		issues = append(issues, FileIssue{
			FilePath:    entry.Filename,
			LineNumber:  issue.LineNumber,
			Risk:        ParseRiskLevel(issue.RiskLevel),
			Description: issue.Description,
			Suggestion:  issue.Suggestion,
		})
	}

	risk := ParseRiskLevel(raw.RiskLevel)
	// Critical path files are always treated as high risk, whatever the
	// model said.
	if r.isCriticalPath(entry.Filename) {
		risk = RiskHigh
	}

	return FileReview{
		FilePath: entry.Filename,
		Risk:     risk,
		Changes:  entry.Changes(),
		Issues:   issues,
	}
}

// fallbackReview stands in when the model call or its response is unusable.
// One broken file must not sink the rest of the run.
func (r *FileReviewer) fallbackReview(entry diff.Entry) FileReview {
	return FileReview{
		FilePath: entry.Filename,
		Risk:     RiskLow,
		Changes:  entry.Changes(),
		Issues:   []FileIssue{},
	}
}

func (r *FileReviewer) isCriticalPath(filename string) bool {
	for _, path := range r.pc.CriticalPaths {
		if path != "" && strings.HasPrefix(filename, path) {
			return true
		}
	}
	return false
}
