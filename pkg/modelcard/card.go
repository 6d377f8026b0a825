package modelcard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

type Metrics struct {
	Accuracy  float64 `yaml:"accuracy" json:"accuracy"`
	Precision float64 `yaml:"precision" json:"precision"`
	Recall    float64 `yaml:"recall" json:"recall"`
	F1        float64 `yaml:"f1" json:"f1"`
}

// ClassBalance is the share of the training set, in percent, per label.
type ClassBalance struct {
	Healthy float64 `yaml:"healthy" json:"healthy"`
	Patient float64 `yaml:"patient" json:"patient"`
}

type FeatureImportance struct {
	Feature string  `yaml:"feature" json:"feature"`
	Score   float64 `yaml:"score" json:"score"`
}

// Card documents how the deployed model was trained and evaluated.
type Card struct {
	Name              string                  `yaml:"name" json:"name"`
	Metrics           Metrics                 `yaml:"metrics" json:"metrics"`
	TotalSamples      int                     `yaml:"total_samples" json:"total_samples"`
	FeatureCount      int                     `yaml:"feature_count" json:"feature_count"`
	ClassBalance      map[string]ClassBalance `yaml:"class_balance" json:"class_balance"`
	FeatureImportance []FeatureImportance     `yaml:"feature_importance" json:"feature_importance"`
}

// Load reads a YAML card. Missing sections are filled from Default.
func Load(path string) (Card, error) {
	if path == "" {
		return Default(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Card{}, fmt.Errorf("read model card: %w", err)
	}
	var card Card
	if err := yaml.Unmarshal(content, &card); err != nil {
		return Card{}, fmt.Errorf("parse model card: %w", err)
	}

	def := Default()
	if card.Name == "" {
		card.Name = def.Name
	}
	if card.Metrics == (Metrics{}) {
		card.Metrics = def.Metrics
	}
	if card.TotalSamples == 0 {
		card.TotalSamples = def.TotalSamples
	}
	if card.FeatureCount == 0 {
		card.FeatureCount = def.FeatureCount
	}
	if len(card.ClassBalance) == 0 {
		card.ClassBalance = def.ClassBalance
	}
	if len(card.FeatureImportance) == 0 {
		card.FeatureImportance = def.FeatureImportance
	}
	card.sortImportance()
	return card, nil
}

func (c *Card) sortImportance() {
	sort.SliceStable(c.FeatureImportance, func(i, j int) bool {
		return c.FeatureImportance[i].Score > c.FeatureImportance[j].Score
	})
}

func Default() Card {
	return Card{
		Name:         "DizzyCheck multi-label classifier",
		Metrics:      Metrics{Accuracy: 94.38, Precision: 94.38, Recall: 94.38, F1: 94.38},
		TotalSamples: 3500,
		FeatureCount: 13,
		ClassBalance: map[string]ClassBalance{
			"Migraine": {Healthy: 63.1, Patient: 36.9},
			"Vertigo":  {Healthy: 52.1, Patient: 47.9},
			"PPPD":     {Healthy: 44.5, Patient: 55.5},
		},
		FeatureImportance: []FeatureImportance{
			{Feature: "intensity", Score: 0.13},
			{Feature: "frequency", Score: 0.12},
			{Feature: "photophobia", Score: 0.11},
			{Feature: "nausea", Score: 0.10},
			{Feature: "visual", Score: 0.09},
			{Feature: "duration", Score: 0.08},
			{Feature: "age", Score: 0.06},
			{Feature: "phonophobia", Score: 0.055},
			{Feature: "dizziness", Score: 0.05},
			{Feature: "headache", Score: 0.045},
			{Feature: "sensory", Score: 0.04},
			{Feature: "vomiting", Score: 0.035},
			{Feature: "gender", Score: 0.02},
		},
	}
}
