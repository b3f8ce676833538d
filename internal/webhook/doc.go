// Package webhook runs a small HTTP server for GitHub events.
//
// POST /webhook dispatches on the X-GitHub-Event header: pull_request
// events with an opened, synchronize, or reopened action are acknowledged
// for processing, and issue_comment events honor the "/gavel refresh" and
// "/gavel review" commands. GET /health reports liveness.
package webhook
