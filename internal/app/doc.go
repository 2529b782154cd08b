// Package app provides the application service layer.
//
// Orchestrates the analysis workflow: query validation, post fetching,
// concurrent sentiment scoring, aggregation, result storage, and event
// publication. Sits between HTTP handlers and the upstream clients.
// Depends on interfaces defined here, not concrete implementations.
package app
