package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gavel-review/gavel/internal/config"
	"github.com/gavel-review/gavel/internal/review"
)

const timestampLayout = "2006-01-02-150405"

// Outputs holds the rendered reports and, when a report path is configured,
// the locations they were written to.
type Outputs struct {
	Markdown     string
	JSON         string
	PRComment    string
	MarkdownPath string
	JSONPath     string
}

// Generator renders review results per the output configuration.
type Generator struct {
	cfg config.OutputConfig

	// now is swappable for tests.
	now func() time.Time
}

// NewGenerator creates a Generator.
func NewGenerator(cfg config.OutputConfig) *Generator {
	return &Generator{cfg: cfg, now: time.Now}
}

// Generate renders the configured formats and writes report files when a
// report path is set. prNumber of zero means no pull request association.
func (g *Generator) Generate(result *review.Result, prNumber int) (Outputs, error) {
	var out Outputs

	if g.cfg.ReportFormat == "markdown" || g.cfg.ReportFormat == "both" {
		out.Markdown = g.renderMarkdown(result, prNumber)
		if g.cfg.ReportPath != "" {
			path, err := g.saveReport(out.Markdown, prNumber, "md")
			if err != nil {
				return out, err
			}
			out.MarkdownPath = path
		}
	}

	if g.cfg.ReportFormat == "json" || g.cfg.ReportFormat == "both" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return out, fmt.Errorf("marshaling result: %w", err)
		}
		out.JSON = string(data)
		if g.cfg.ReportPath != "" {
			path, err := g.saveReport(out.JSON, prNumber, "json")
			if err != nil {
				return out, err
			}
			out.JSONPath = path
		}
	}

	if g.cfg.PRComment {
		out.PRComment = g.renderPRComment(result)
	}

	return out, nil
}

func (g *Generator) saveReport(content string, prNumber int, ext string) (string, error) {
	if err := os.MkdirAll(g.cfg.ReportPath, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}
	timestamp := g.now().Format(timestampLayout)
	name := fmt.Sprintf("report-%s.%s", timestamp, ext)
	if prNumber > 0 {
		name = fmt.Sprintf("pr-%d-%s.%s", prNumber, timestamp, ext)
	}
	path := filepath.Join(g.cfg.ReportPath, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func riskEmoji(risk review.RiskLevel) string {
	switch risk {
	case review.RiskHigh:
		return "🔴"
	case review.RiskMedium:
		return "🟡"
	case review.RiskLow:
		return "🟢"
	default:
		return "⚪"
	}
}

func conclusionLabel(c review.Conclusion) (emoji, title string) {
	if c == review.CanSubmit {
		return "✅", "Can Submit"
	}
	return "⚠️", "Needs Review"
}
