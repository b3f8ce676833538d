// Gavel reviews code changes with an LLM and renders a verdict: can_submit
// or needs_review, with a confidence score derived from per-file risk.
//
// It analyzes the project once, caches the resulting context, and injects
// it into every review so the model sees the tech stack, conventions, and
// critical paths of the repository it is judging.
//
// Usage:
//
//	gavel review --diff changes.json     # review a JSON diff
//	gavel review --patch change.patch    # review a unified diff file
//	gavel review --git origin/main..HEAD # review a local git range
//	gavel github 42                      # review PR #42 and comment on it
//	gavel analyze                        # analyze the project and cache the context
//	gavel serve                          # run the GitHub webhook server
//
// See https://github.com/gavel-review/gavel for full documentation.
package main
