// Package main provides a performance benchmarking tool for the gacscore CLI.
// It scores every project file in a directory with several commands, running each
// test multiple times, treating the first successful run as cold and averaging the
// rest as warm, and writes CSV output for performance tracking.
//
// Prerequisites:
// - gacscore binary installed and available in PATH
// - A directory of project JSON files
//
// Usage: go run benchmark/main.go [project-dir]
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (file average, cold store run and average of warm store runs).
type BenchmarkResult struct {
	Project  string
	Command  string
	FileTime string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ProjectDir string
	Timeout    time.Duration
	FileRuns   int
	StoreRuns  int
	Projects   []string
	Commands   [][]string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [project-dir]\n", os.Args[0])
		os.Exit(1)
	}

	projects, err := filepath.Glob(filepath.Join(os.Args[1], "*.json"))
	if err != nil || len(projects) == 0 {
		fmt.Printf("No project files found in %s\n", os.Args[1])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		ProjectDir: os.Args[1],
		Timeout:    time.Minute,
		FileRuns:   3,
		StoreRuns:  4,
		Projects:   projects,
		Commands: [][]string{
			{"score"},
			{"score", "--detail"},
			{"weights"},
			{"check"},
		},
	}

	if _, err := exec.LookPath("gacscore"); err != nil {
		fmt.Printf("Prerequisites check failed: gacscore binary not found in PATH\n")
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes all benchmark tests across the project files
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d projects, %v timeout, file: %d runs, store: %d runs\n",
		len(config.Projects), config.Timeout, config.FileRuns, config.StoreRuns)

	for _, project := range config.Projects {
		name := strings.TrimSuffix(filepath.Base(project), ".json")
		fmt.Printf("Benchmarking %s\n", name)

		// Load the project into the store so store runs read the same data
		importCmd := exec.Command("gacscore", "store", "import", project, "--project", name)
		if output, err := importCmd.CombinedOutput(); err != nil {
			fmt.Printf("Warning: failed to import %s: %v\nOutput: %s\n", project, err, string(output))
			continue
		}

		for _, command := range config.Commands {
			results = append(results, runBenchmarkSuite(config, project, name, command))
		}
	}

	return results
}

// runBenchmarkSuite runs both file and store benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, project, name string, command []string) BenchmarkResult {
	label := strings.Join(command, " ")
	fmt.Printf("Running %s on %s\n", label, name)

	fileArgs := append(append([]string{}, command...), project, "--project-backend", "none")
	storeArgs := append(append([]string{}, command...), "--project", name)

	_, fileTimes := runBenchmark(config, fileArgs, config.FileRuns)
	coldTime, warmTimes := runBenchmark(config, storeArgs, config.StoreRuns)

	fileAvg := average(fileTimes)
	warmAvg := average(warmTimes)
	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  File average: %s, Cold time: %s, Warm average: %s\n", fileAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Project:  name,
		Command:  label,
		FileTime: fileAvg,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a gacscore command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string, numRuns int) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("gacscore", args...)
		cmd.Dir = config.ProjectDir

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func average(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("gacscore_benchmark_%s.csv", timestamp))

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

	if err := writer.Write([]string{"project", "cmd", "file_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Project, result.Command, result.FileTime, result.ColdTime, result.WarmTime}); err != nil {
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
		fmt.Printf("  %-20s %-16s: File: %s, Cold: %s, Warm: %s\n", result.Project, result.Command, result.FileTime, result.ColdTime, result.WarmTime)
	}
}
