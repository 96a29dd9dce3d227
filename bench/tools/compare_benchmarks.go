// Package main provides a tool to compare benchmark summaries produced by
// the bench package, flagging throughput regressions against a baseline.
//
// Usage:
//
//	go run ./bench/tools baseline.json latest.json [threshold-percent]
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// higherIsBetter reports whether a larger value of the named metric is an
// improvement. Rates improve upward; everything else (ns_per_op, max_chain,
// memory) improves downward.
func higherIsBetter(name string) bool {
	return strings.HasSuffix(name, "_rate")
}

// comparable metrics; shape metrics like buckets or growths are expected to
// differ run to run and are reported but never flagged.
var flaggable = map[string]bool{
	"insertion_rate":         true,
	"retrieval_rate":         true,
	"random_lookup_rate":     true,
	"sequential_lookup_rate": true,
	"max_chain":              true,
}

func loadSummary(path string) (*BenchSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v", path, err)
	}
	var summary BenchSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	return &summary, nil
}

// latestByName keeps only the most recent result per benchmark name, since
// summaries are appended to across runs.
func latestByName(summary *BenchSummary) map[string]BenchResult {
	byName := make(map[string]BenchResult)
	for _, r := range summary.Results {
		byName[r.Name] = r
	}
	return byName
}

func compare(base, current BenchResult, threshold float64) BenchmarkComparison {
	cmp := BenchmarkComparison{
		Name:     current.Name,
		Category: current.Category,
	}

	names := make([]string, 0, len(current.Metrics))
	for name := range current.Metrics {
		if _, ok := base.Metrics[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		baseValue := base.Metrics[name]
		currentValue := current.Metrics[name]

		var change float64
		if baseValue != 0 {
			change = (currentValue - baseValue) / baseValue * 100
		}

		regression := false
		if flaggable[name] {
			if higherIsBetter(name) {
				regression = change < -threshold
			} else {
				regression = change > threshold
			}
		}

		cmp.MetricComparisons = append(cmp.MetricComparisons, MetricComparison{
			Name:          name,
			BaseValue:     baseValue,
			CurrentValue:  currentValue,
			PercentChange: change,
			IsRegression:  regression,
		})
		if regression {
			cmp.HasRegressions = true
		}
	}

	return cmp
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "usage: %s baseline.json latest.json [threshold-percent]\n", os.Args[0])
		os.Exit(2)
	}

	threshold := 10.0
	if len(os.Args) > 3 {
		v, err := strconv.ParseFloat(os.Args[3], 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid threshold %q: %v\n", os.Args[3], err)
			os.Exit(2)
		}
		threshold = v
	}

	baseSummary, err := loadSummary(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	currentSummary, err := loadSummary(os.Args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	baseResults := latestByName(baseSummary)
	currentResults := latestByName(currentSummary)

	names := make([]string, 0, len(currentResults))
	for name := range currentResults {
		names = append(names, name)
	}
	sort.Strings(names)

	anyRegression := false
	for _, name := range names {
		base, ok := baseResults[name]
		if !ok {
			fmt.Printf("%s: no baseline, skipping\n", name)
			continue
		}

		cmp := compare(base, currentResults[name], threshold)
		fmt.Printf("%s (%s):\n", cmp.Name, cmp.Category)
		for _, m := range cmp.MetricComparisons {
			marker := " "
			if m.IsRegression {
				marker = "!"
			}
			fmt.Printf("  %s %-24s %14.2f -> %14.2f  (%+.1f%%)\n",
				marker, m.Name, m.BaseValue, m.CurrentValue, m.PercentChange)
		}
		if cmp.HasRegressions {
			anyRegression = true
		}
	}

	if anyRegression {
		fmt.Printf("\nRegressions detected beyond %.1f%% threshold\n", threshold)
		os.Exit(1)
	}
	fmt.Println("\nNo regressions detected")
}
