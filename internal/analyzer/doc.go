// Package analyzer builds the project context that grounds every review.
//
// It scans the repository root for recognized manifests and top-level
// directories, asks the model for a structured summary, and merges the
// configured critical paths into the result. Analysis failures degrade to a
// minimal placeholder context instead of aborting the review.
package analyzer
