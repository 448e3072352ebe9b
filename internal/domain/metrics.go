package domain

// StoreMetrics is a JSON snapshot of persistence and cache health, served by
// GET /v1/metrics/store.
type StoreMetrics struct {
	LoadFailures float64 `json:"load_failures"`
	SaveFailures float64 `json:"save_failures"`
	CacheHitRate float64 `json:"cache_hit_rate"`
	PrintJobs    float64 `json:"print_jobs"`
}
