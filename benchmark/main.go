// Package main provides a throughput benchmarking tool for the adsboost CLI.
// It generates synthetic record files of several sizes and scores each one repeatedly,
// first without a store and then persisting into a fresh SQLite database,
// treating the first persisted run as cold (inserts) and averaging the rest as warm (upserts).
// Results are written as CSV for performance analysis and documentation.
//
// Prerequisites:
// - adsboost binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for generated record files and benchmark databases
package main

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-store average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Records     int
	NoStoreTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoStoreRuns int
	StoreRuns   int
	Datasets    map[string]int
	Order       []string
}

var (
	doctypes    = []string{"article", "eprint", "inproceedings", "phdthesis", "book", "abstract", "erratum", "misc"}
	collections = []string{"astronomy", "physics", "earthscience", "planetary", "heliophysics", "general"}
)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoStoreRuns: 3,
		StoreRuns:   4,
		Datasets: map[string]int{
			"small":  1_000,
			"medium": 10_000,
			"large":  100_000,
		},
		Order: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the adsboost binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("adsboost"); err != nil {
		return fmt.Errorf("adsboost binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks generates every dataset and benchmarks scoring it
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d workers, no-store: %d runs, store: %d runs\n",
		len(config.Order), config.Timeout, config.Workers, config.NoStoreRuns, config.StoreRuns)

	for _, name := range config.Order {
		size := config.Datasets[name]
		path := filepath.Join(config.WorkDir, fmt.Sprintf("records_%s.jsonl", name))

		fmt.Printf("Generating %s dataset (%d records)\n", name, size)
		if err := generateRecords(path, size); err != nil {
			fmt.Printf("  Skipping %s: %v\n", name, err)
			continue
		}

		results = append(results, runBenchmarkSuite(config, name, path, size))
	}

	return results
}

// generateRecords writes n synthetic records as JSON lines.
// The generator is seeded so every run scores identical input.
func generateRecords(path string, n int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	rng := rand.New(rand.NewPCG(42, 1024))
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range n {
		year := 1950 + rng.IntN(76)
		rec := map[string]any{
			"bibcode": fmt.Sprintf("%dBench%09d", year, i),
			"scix_id": fmt.Sprintf("scix:%04d-%04d", i/10000, i%10000),
			"bib_data": map[string]any{
				"doctype":  doctypes[rng.IntN(len(doctypes))],
				"refereed": rng.IntN(2) == 0,
				"pubdate":  fmt.Sprintf("%d-%02d-00", year, 1+rng.IntN(12)),
				"database": []string{collections[rng.IntN(len(collections))]},
			},
			"metrics": map[string]any{"refereed": rng.IntN(3) == 0},
		}
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return w.Flush()
}

// runBenchmarkSuite runs both no-store and store benchmarks for a dataset
func runBenchmarkSuite(config BenchmarkConfig, name, path string, size int) BenchmarkResult {
	fmt.Printf("Scoring %s dataset\n", name)

	runPhase := func(args []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, args, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	base := []string{"score", path, "--workers", strconv.Itoa(config.Workers), "--limit", "1"}

	// Phase 1: no store, every run is equivalent
	_, noStoreAvg := runPhase(slices.Concat(base, []string{"--store-backend", "none"}), config.NoStoreRuns, "No-store")

	// Phase 2: persist into a fresh database
	dbPath := filepath.Join(config.WorkDir, fmt.Sprintf("bench_%s.db", name))
	_ = os.Remove(dbPath)
	storeArgs := slices.Concat(base, []string{"--store-backend", "sqlite", "--store-db-connect", dbPath, "--persist"})
	coldTime, warmAvg := runPhase(storeArgs, config.StoreRuns, "Store")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-store average: %s, Cold time: %s, Warm average: %s\n", noStoreAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     name,
		Records:     size,
		NoStoreTime: noStoreAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes adsboost multiple times and returns the first successful time and the rest
func runBenchmark(config BenchmarkConfig, args []string, numRuns int) (coldTime float64, warmTimes []float64) {
	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("adsboost", args...)
		cmd.Dir = config.WorkDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
			<-done
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Scoring completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/adsboost_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "records", "no_store_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		row := []string{result.Dataset, strconv.Itoa(result.Records), result.NoStoreTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s (%7d records): No-store: %s, Cold: %s, Warm: %s\n",
			result.Dataset, result.Records, result.NoStoreTime, result.ColdTime, result.WarmTime)
	}
}
