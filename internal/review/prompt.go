package review

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gavel-review/gavel/internal/diff"
	"github.com/gavel-review/gavel/internal/project"
)

const defaultGuidelines = `Guidelines:
- HIGH risk: Security vulnerabilities, hardcoded secrets, auth issues, breaking changes
- MEDIUM risk: Code smells, potential bugs, maintainability issues
- LOW risk: Style issues, minor improvements

Be strict but fair. Focus on real issues, not style preferences.`

const promptTemplate = `You are an expert code reviewer. Your task is to review code changes
and identify potential issues.

## Project Context
%s

## Critical Paths (High Risk Areas)
%s

## Exclude Patterns
%s

## Code Diff
File: %s
Status: %s
Changes: +%d -%d
Diff:
%s

## Your Task
Analyze this code change and provide a risk assessment in JSON format:
{
    "risk_level": "high|medium|low",
    "issues": [
        {
            "line_number": 123,
            "risk_level": "high|medium|low",
            "description": "Issue description",
            "suggestion": "How to fix"
        }
    ],
    "summary": "Brief summary of the review"
}

%s`

// userMessage is the same for every file; all context lives in the system
// prompt.
const userMessage = "Review this code change."

// buildSystemPrompt assembles the per-file review prompt. The project
// context is embedded as pretty-printed JSON. guidelines overrides the
// built-in risk rubric when a custom prompt file is configured.
func buildSystemPrompt(pc *project.Context, excludePatterns []string, entry diff.Entry, patch, guidelines string) (string, error) {
	contextJSON, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling project context: %w", err)
	}
	if patch == "" {
		patch = "No diff available"
	}
	if guidelines == "" {
		guidelines = defaultGuidelines
	}
	return fmt.Sprintf(promptTemplate,
		string(contextJSON),
		strings.Join(pc.CriticalPaths, "\n"),
		strings.Join(excludePatterns, "\n"),
		entry.Filename,
		entry.Status,
		entry.Additions,
		entry.Deletions,
		patch,
		guidelines,
	), nil
}
