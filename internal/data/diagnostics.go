package data

type CacheCounters struct {
	CounterHits   map[string]int `json:"counter_hits,omitempty"`
	CounterMisses map[string]int `json:"counter_misses,omitempty"`
}

type Timers struct {
	Totals   map[string]int64 `json:"totals"`
	Averages map[string]int64 `json:"averages"`
}
