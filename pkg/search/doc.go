// Package search implements the paged retrieval loop at the center of
// the tool.
//
// The engine issues one page request at a time against recent search,
// bounds each page by the remaining requested maximum, and reacts to
// throttling at two layers: a client-side sliding-window guard that
// avoids burning a request the window would reject, and the API's 429
// response, which is either waited out (a single retry per page
// boundary, using the reset hint when present) or accepted as a
// partial result.
//
// Termination is deterministic. A run ends:
//   - Completed - the maximum was reached or the cursor ran out,
//     including a zero-result first page
//   - PartiallyCompleted - a rate limit ended the run early while
//     waiting was disabled or already used up
//   - Aborted - any other failure
//
// In every case the outcome carries the records accumulated before
// termination; a failure on a later page never discards earlier pages.
package search
