package model

// Station is an opaque node label. The reference inputs use single
// letters, but nothing here depends on that.
type Station string

type Edge struct {
	From     Station
	To       Station
	Distance int
}

// QueryResponse is the JSON payload returned by every query endpoint.
// Ok=false means the query had no valid answer ("no such route"); that
// is a query outcome, not a transport error.
type QueryResponse struct {
	Kind     string `json:"kind"`
	Value    int    `json:"value"`
	Ok       bool   `json:"ok"`
	CacheHit bool   `json:"cache_hit"`
}

type CacheStats struct {
	Gets      int `json:"gets"`
	Hits      int `json:"hits"`
	Puts      int `json:"puts"`
	Evictions int `json:"evictions"`
}
