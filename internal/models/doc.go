// Package models defines the immutable result types produced by the insight fetch and consumed by the session.
//
//   - [UserSummary] : the fetched "wrapped" result for one forum profile
//   - [SlideDescriptor] : one slide of narrative content with its colors
//   - [ProfileStats] : optional real profile numbers found by search grounding
//
// JSON field names match the response schema requested from the generative model,
// so a response body decodes directly into a [UserSummary].
// [UserSummary.Validate] is the schema check: a response missing any required field is rejected whole.
package models
