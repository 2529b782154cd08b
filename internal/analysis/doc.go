// Package analysis implements the aggregation core.
//
// Aggregate turns index-aligned posts and sentiment results into a single
// AggregateResult (overall score, distribution, time series, confidences,
// top keywords). Everything here is pure: the current time is a parameter,
// no I/O, no shared state.
package analysis
