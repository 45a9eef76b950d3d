package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// RunConfig records how an evaluation run was performed.
type RunConfig struct {
	Model       string `yaml:"model"`
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// QueryResult is one evaluated query.
type QueryResult struct {
	Query        string  `yaml:"query"`
	ExpectedKind string  `yaml:"expectedkind"`
	ActualKind   string  `yaml:"actualkind,omitempty"`
	ExpectedName string  `yaml:"expectedname"`
	ResolvedName string  `yaml:"resolvedname,omitempty"`
	NameMatched  bool    `yaml:"namematched"`
	Completeness float64 `yaml:"completeness"`
	ImageTier    string  `yaml:"imagetier,omitempty"`
	OverallScore float64 `yaml:"overallscore"`
	Error        string  `yaml:"error,omitempty"`
}

// Summary aggregates a run.
type Summary struct {
	Queries         int     `yaml:"queries"`
	Failures        int     `yaml:"failures"`
	KindAccuracy    float64 `yaml:"kindaccuracy"`
	NameAccuracy    float64 `yaml:"nameaccuracy"`
	MeanOverall     float64 `yaml:"meanoverall"`
	PresetImageHits int     `yaml:"presetimagehits"`
}

// RunReport is the complete evaluation output.
type RunReport struct {
	Config  RunConfig     `yaml:"config"`
	Summary Summary       `yaml:"summary"`
	Results []QueryResult `yaml:"results"`
}

// SaveToYAML writes an evaluation report to a timestamped file in evals/.
func SaveToYAML(report RunReport) (string, error) {
	if err := os.MkdirAll("evals", 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	if report.Config.Timestamp == "" {
		report.Config.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal evaluation report: %w", err)
	}

	path := filepath.Join("evals", fmt.Sprintf("curation_eval_%s.yaml", report.Config.Timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write evaluation report: %w", err)
	}
	return path, nil
}
