package models

import "time"

// SystemMetrics is a point-in-time snapshot of service health counters.
type SystemMetrics struct {
	CacheHitRatio               float64   `json:"cacheHitRatio"`
	CacheHits                   uint64    `json:"cacheHits"`
	CacheMisses                 uint64    `json:"cacheMisses"`
	RequestsTotal               uint64    `json:"requestsTotal"`
	AverageRequestDurationMs    float64   `json:"averageRequestDurationMs"`
	ProjectionCount             uint64    `json:"projectionCount"`
	AverageProjectionDurationMs float64   `json:"averageProjectionDurationMs"`
	Goroutines                  int       `json:"goroutines"`
	GeneratedAt                 time.Time `json:"generatedAt"`
}
