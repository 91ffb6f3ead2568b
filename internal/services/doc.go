// Package services implements the insight fetch: the only component that performs network I/O.
//
// # Fetcher Interface
//
// [Fetcher] turns a profile URL into a validated [models.UserSummary]. It is single shot:
// no retries, no caching. Every failure is reported as [shared.ErrFetchFailed] so callers never
// branch on the underlying cause; the cause is logged instead.
//
// # Gemini Implementation
//
// [GeminiService] asks a Gemini model, optionally grounded with Google Search, for a JSON document
// matching the wrapped response schema. The raw text is joined from the first candidate's parts,
// stripped of Markdown code fences, decoded, and checked with [models.UserSummary.Validate].
//
// The request timeout belongs to the adapter (gemini.timeout in config.toml).
package services
