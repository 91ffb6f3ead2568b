// Package server exposes the wrapped fetch over HTTP for scripts and other frontends.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Routes
//
//	POST /api/wrapped → {"profile_url": "..."} returns the summary JSON
//	GET  /healthz     → liveness probe
//
// Invalid links are rejected with 400 before any fetch. Fetch failures return 502 with the
// same fixed message the terminal shows. Concurrent requests for the same link share one fetch.
//
// # Middleware
//
// [Logging] records method, path, status and duration for every request.
// [RateLimit] applies a token bucket across all clients and answers 429 when it is empty.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
