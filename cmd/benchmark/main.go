package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"freq/config"
	"freq/internal/adapter/analyzer"
	"freq/internal/adapter/report"
	"freq/internal/domain"
	"freq/internal/usecase"
)

func main() {
	input := flag.String("input", "", "Text file to count")
	dir := flag.String("dir", ".", "Directory holding freq.yaml")
	iterations := flag.Int("n", 20, "Counting passes per mode")
	topK := flag.Int("k", 10, "Number of entries to show")
	flag.Parse()

	if *iterations < 1 {
		*iterations = 1
	}

	if *input == "" {
		fmt.Println("Usage: go run cmd/benchmark/main.go -input data/word_04.in.txt [-n 20] [-k 10]")
		fmt.Println("\nReports, per mode:")
		fmt.Println("  1. Throughput (tokens/s) over n in-memory passes")
		fmt.Println("  2. Total and unique token counts")
		fmt.Println("  3. The k most frequent tokens")
		os.Exit(1)
	}

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	tokenizer, err := analyzer.NewTokenizer(analyzer.Options{
		Lowercase:       cfg.Count.Lowercase,
		Apostrophes:     cfg.Count.Apostrophes,
		NormalizeNFC:    cfg.Count.Normalize,
		RemoveStopwords: cfg.Count.RemoveStopwords,
		StopwordsLang:   cfg.Count.StopwordsLang,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating tokenizer: %v\n", err)
		os.Exit(1)
	}
	counter := usecase.NewCountUseCase(tokenizer, report.NewWriter(report.FormatTSV), nil)

	fmt.Println("FREQUENCY COUNT BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Input: %s (%d bytes)\n", *input, len(data))
	fmt.Printf("Passes per mode: %d\n\n", *iterations)

	for _, mode := range []domain.Mode{domain.ModeWord, domain.ModeTwoGram} {
		var table *domain.FrequencyTable
		start := time.Now()
		for i := 0; i < *iterations; i++ {
			table, err = counter.Count(context.Background(), mode, bytes.NewReader(data))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Count error: %v\n", err)
				os.Exit(1)
			}
		}
		elapsed := time.Since(start)

		fmt.Printf("Mode: %s\n", mode)
		fmt.Println(strings.Repeat("-", 70))
		fmt.Printf("  Total items:   %d\n", table.Total())
		fmt.Printf("  Unique items:  %d\n", table.Len())
		if perPass := elapsed / time.Duration(*iterations); perPass > 0 {
			rate := float64(table.Total()) / perPass.Seconds()
			fmt.Printf("  Per pass:      %s\n", perPass)
			fmt.Printf("  Throughput:    %.0f tokens/s\n", rate)
		}

		fmt.Printf("\n  Top %d:\n", *topK)
		for i, f := range table.Sorted() {
			if i >= *topK {
				break
			}
			fmt.Printf("  %6d %s\n", f.Count, f.Token)
		}
		fmt.Println()
	}
}
