package main

// BenchResult represents a single benchmark result with multiple metrics
type BenchResult struct {
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Operations int                `json:"operations"`
	NsPerOp    float64            `json:"ns_per_op"`
	Metrics    map[string]float64 `json:"metrics"`
}

// BenchSummary represents the complete benchmark output written by the
// bench package into benchmark_history/
type BenchSummary struct {
	Timestamp string        `json:"timestamp"`
	GoVersion string        `json:"go_version"`
	Results   []BenchResult `json:"results"`
}

// MetricComparison represents a comparison between two metric values
type MetricComparison struct {
	Name          string  `json:"name"`
	BaseValue     float64 `json:"base_value"`
	CurrentValue  float64 `json:"current_value"`
	PercentChange float64 `json:"percent_change"`
	IsRegression  bool    `json:"is_regression"`
}

// BenchmarkComparison represents a comparison between benchmark results
type BenchmarkComparison struct {
	Name              string             `json:"name"`
	Category          string             `json:"category"`
	MetricComparisons []MetricComparison `json:"metric_comparisons"`
	HasRegressions    bool               `json:"has_regressions"`
}
