package output

import (
	"fmt"
	"strings"

	"github.com/gavel-review/gavel/internal/review"
)

func (g *Generator) renderMarkdown(result *review.Result, prNumber int) string {
	var b strings.Builder

	b.WriteString("# Gavel Review Report\n\n")
	fmt.Fprintf(&b, "**Date**: %s\n", g.now().Format("2006-01-02 15:04:05"))
	if prNumber > 0 {
		fmt.Fprintf(&b, "**PR**: #%d\n", prNumber)
	}

	emoji, title := conclusionLabel(result.Conclusion)
	b.WriteString("\n## Conclusion\n\n")
	fmt.Fprintf(&b, "**%s %s** (Confidence: %.0f%%)\n\n", emoji, title, result.Confidence)

	b.WriteString("## Changed Files\n\n")
	b.WriteString("| File | Risk | Issues |\n")
	b.WriteString("|------|------|--------|\n")
	for _, fr := range result.FilesReviewed {
		fmt.Fprintf(&b, "| %s | %s %s | %d |\n", fr.FilePath, riskEmoji(fr.Risk), fr.Risk, len(fr.Issues))
	}

	b.WriteString("\n## Detailed Issues\n\n")
	for _, fr := range result.FilesReviewed {
		if len(fr.Issues) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n", fr.FilePath)
		fmt.Fprintf(&b, "- **Risk**: %s\n", fr.Risk)
		fmt.Fprintf(&b, "- **Changes**: %s\n\n", fr.Changes)

		for _, issue := range fr.Issues {
			fmt.Fprintf(&b, "- [%s %s]", riskEmoji(issue.Risk), strings.ToUpper(string(issue.Risk)))
			if issue.LineNumber > 0 {
				fmt.Fprintf(&b, " L%d:", issue.LineNumber)
			}
			fmt.Fprintf(&b, " %s\n", issue.Description)
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, "  - Suggestion: %s\n", issue.Suggestion)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Summary\n\n")
	b.WriteString(result.Summary)
	b.WriteString("\n")

	if result.Cache != nil {
		b.WriteString("\n---\n\n")
		if result.Cache.UsedCache {
			b.WriteString("*Cache: Used*\n")
		} else {
			b.WriteString("*Cache: Fresh analysis*\n")
		}
		if result.Cache.CacheTimestamp != "" {
			fmt.Fprintf(&b, "*%s*\n", result.Cache.CacheTimestamp)
		}
	}

	return b.String()
}
