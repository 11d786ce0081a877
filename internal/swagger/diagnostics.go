package swagger

import "github.com/antonio-alexander/go-books-admin/internal/data"

// swagger:route DELETE /cache Diagnostics ClearCache
// Clears the collection cache.
//
// responses:
//   204:

// swagger:route GET /cache/counters Diagnostics ReadCounters
// Reads cache hit/miss counters.
//
// responses:
//   200: CountersGetResponseOk

// swagger:response CountersGetResponseOk
type CountersGetResponseOk struct {
	// in:body
	Body data.CacheCounters
}

// swagger:route DELETE /cache/counters Diagnostics ClearCounters
// Clears cache hit/miss counters.
//
// responses:
//   204:

// swagger:route GET /timers Diagnostics ReadTimers
// Reads endpoint timers.
//
// responses:
//   200: TimersGetResponseOk

// swagger:response TimersGetResponseOk
type TimersGetResponseOk struct {
	// in:body
	Body data.Timers
}

// swagger:route DELETE /timers Diagnostics ClearTimers
// Clears endpoint timers.
//
// responses:
//   204:
