// Package twitter provides a typed client for the X API v2 recent
// search endpoint.
//
// The client authenticates with an app-only bearer token and decodes
// responses into Go structs; a body that doesn't decode surfaces as a
// malformed-response error rather than untyped data.
//
// Error Handling:
//
// All failures are reported as *Error with a Type discriminator:
//   - transport - network failure, no HTTP response
//   - rate_limit - HTTP 429, carries the window-reset hint when present
//   - auth - HTTP 401/403, the bearer token was rejected
//   - bad_query - HTTP 400, the query or date range was rejected
//   - malformed - the body could not be decoded
//   - server - HTTP 5xx
//
// Rate Limits:
//
// Recent search enforces a request ceiling per 15-minute window on top
// of the monthly post cap. A 429 response includes the
// x-rate-limit-reset header (epoch seconds); the client exposes it via
// Error.RateLimitReset so callers can decide to wait or bail out.
package twitter
