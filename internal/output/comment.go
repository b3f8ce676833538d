package output

import (
	"fmt"
	"strings"

	"github.com/gavel-review/gavel/internal/review"
)

// Comments cap the per-file table so huge change sets stay readable.
const maxCommentFiles = 10

func (g *Generator) renderPRComment(result *review.Result) string {
	var b strings.Builder

	b.WriteString("## Gavel Review 🤖\n\n")
	emoji, title := conclusionLabel(result.Conclusion)
	fmt.Fprintf(&b, "**Conclusion**: %s **%s** (Confidence: %.0f%%)\n\n", emoji, title, result.Confidence)

	b.WriteString("### Summary\n\n")
	b.WriteString("| File | Risk | Issues |\n")
	b.WriteString("|------|------|--------|\n")

	files := result.FilesReviewed
	shown := files
	if len(shown) > maxCommentFiles {
		shown = shown[:maxCommentFiles]
	}
	for _, fr := range shown {
		fmt.Fprintf(&b, "| `%s` | %s %s | %d |\n", fr.FilePath, riskEmoji(fr.Risk), fr.Risk, len(fr.Issues))
	}
	if len(files) > maxCommentFiles {
		b.WriteString("| ... | ... | ... |\n")
	}

	fmt.Fprintf(&b, "\n*Reviewed %d files*", len(files))
	return b.String()
}
