// Package evalcmd implements the evaluation subcommands.
package evalcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/openmuseum/curator/internal/curation"
	"github.com/openmuseum/curator/internal/eval/dataset"
	"github.com/openmuseum/curator/internal/eval/metrics"
	"github.com/openmuseum/curator/internal/eval/results"
	"github.com/openmuseum/curator/internal/narration"
	"github.com/openmuseum/curator/internal/registry"
	"github.com/spf13/cobra"
)

// NewRunCmd evaluates narration classification accuracy against a labeled
// query dataset.
func NewRunCmd() *cobra.Command {
	var (
		datasetPath string
		sampleSize  int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a curation evaluation against a labeled dataset",
		Long: `Runs every query in the dataset through the full curation pipeline and
scores classification (museum vs artifact), name resolution, record
completeness, and which image-cascade tier supplied the primary image.

The report is written as YAML under evals/.`,
		Example: `  curator eval run --dataset evals/queries.jsonl
  curator eval run --dataset evals/queries.parquet --sample 50 --concurrency 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd.Context(), datasetPath, sampleSize, concurrency)
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "Path to the labeled query dataset (.parquet or .jsonl)")
	cmd.Flags().IntVarP(&sampleSize, "sample", "s", 0, "Evaluate only the first N queries (0 = all)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 2, "Concurrent narration calls")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}

func executeRun(ctx context.Context, datasetPath string, sampleSize, concurrency int) error {
	slog.Info("Starting evaluation run", "dataset", datasetPath, "sample", sampleSize, "concurrency", concurrency)

	queries, err := dataset.NewLoader(datasetPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	if sampleSize > 0 && sampleSize < len(queries) {
		queries = queries[:sampleSize]
	}
	slog.Info("Dataset loaded", "queries", len(queries))

	presets, err := registry.Load()
	if err != nil {
		return err
	}
	resolver := curation.NewResolver(narration.NewGemini(), presets)

	model := os.Getenv("CURATOR_NARRATION_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	// Process queries with concurrency control
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan results.QueryResult, len(queries))

	for i, q := range queries {
		wg.Add(1)
		go func(idx int, q dataset.CuratedQuery) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Evaluating query", "query", q.Query, "progress", fmt.Sprintf("%d/%d", idx+1, len(queries)))
			resultsChan <- evaluateQuery(ctx, resolver, presets, q)
		}(i, q)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	report := results.RunReport{
		Config: results.RunConfig{
			Model:       model,
			DatasetPath: datasetPath,
			SampleSize:  len(queries),
			Timestamp:   time.Now().Format("2006-01-02_15-04-05"),
		},
	}
	for result := range resultsChan {
		report.Results = append(report.Results, result)
	}
	report.Summary = summarize(report.Results)

	path, err := results.SaveToYAML(report)
	if err != nil {
		return err
	}

	slog.Info("Evaluation complete",
		"queries", report.Summary.Queries,
		"failures", report.Summary.Failures,
		"kind_accuracy", fmt.Sprintf("%.2f", report.Summary.KindAccuracy),
		"name_accuracy", fmt.Sprintf("%.2f", report.Summary.NameAccuracy),
		"mean_overall", fmt.Sprintf("%.2f", report.Summary.MeanOverall),
		"report", path)
	return nil
}

func evaluateQuery(ctx context.Context, resolver *curation.Resolver, presets *registry.Registry, q dataset.CuratedQuery) results.QueryResult {
	out := results.QueryResult{
		Query:        q.Query,
		ExpectedKind: q.ExpectedKind,
		ExpectedName: q.ExpectedName,
	}

	record, err := resolver.Resolve(ctx, q.Query)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	presetURL := ""
	if preset := presets.Resolve(q.Query); preset != nil {
		presetURL = preset.ImageURL
	}

	eval := metrics.ScoreResult(q.ExpectedKind, q.ExpectedName, presetURL, record)
	out.ActualKind = string(record.Kind)
	out.ResolvedName = eval.ResolvedName
	out.NameMatched = eval.NameMatched
	out.Completeness = eval.Completeness
	out.ImageTier = eval.ImageTier
	out.OverallScore = eval.OverallScore
	return out
}

func summarize(queryResults []results.QueryResult) results.Summary {
	summary := results.Summary{Queries: len(queryResults)}
	if len(queryResults) == 0 {
		return summary
	}

	kindCorrect, nameCorrect := 0, 0
	var totalOverall float64
	for _, r := range queryResults {
		if r.Error != "" {
			summary.Failures++
			continue
		}
		if r.ActualKind == r.ExpectedKind {
			kindCorrect++
		}
		if r.NameMatched {
			nameCorrect++
		}
		if r.ImageTier == metrics.TierPreset {
			summary.PresetImageHits++
		}
		totalOverall += r.OverallScore
	}

	scored := len(queryResults) - summary.Failures
	if scored > 0 {
		summary.KindAccuracy = float64(kindCorrect) / float64(scored)
		summary.NameAccuracy = float64(nameCorrect) / float64(scored)
		summary.MeanOverall = totalOverall / float64(scored)
	}
	return summary
}
