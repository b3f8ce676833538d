// Package output formats review results for display or machine consumption.
//
// Three renderings are supported:
//   - markdown — full report with per-file risk tables and detailed issues
//   - json     — the complete structured result
//   - pr_comment — a compact table capped at ten files for posting on a pull request
//
// When a report path is configured, markdown and JSON reports are also
// written to timestamped files (pr-<n>-<ts>.md or report-<ts>.md).
package output
