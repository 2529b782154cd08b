// Package domain defines the core domain types and interfaces.
//
// This package contains concept-oriented files (post.go, sentiment.go, aggregate.go, workflow.go)
// with shared types and cross-cutting contracts. No implementation code.
// Prevents circular imports by keeping interfaces on the consumer side.
package domain
