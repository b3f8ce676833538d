// Package review contains the core types and orchestration for LLM-based
// code review.
//
// Each diff entry gets its own model call with the full project context
// embedded in the system prompt. The per-file risk levels roll up into a
// conclusion (can_submit or needs_review) and a confidence score: any
// high-risk file forces needs_review at 95.0, otherwise confidence starts
// at 100 and loses 10 points per medium-risk and 2 per low-risk file,
// floored at 50.
//
// Files under a critical path prefix are escalated to high risk after the
// model responds. Per-file model failures degrade to a low-risk empty
// review so one flaky call never aborts the run. Files can be reviewed
// concurrently with bounded parallelism; result order always follows input
// order.
package review
