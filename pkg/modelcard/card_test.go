package modelcard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCard(t *testing.T) {
	card := Default()
	assert.Equal(t, 3500, card.TotalSamples)
	assert.Len(t, card.FeatureImportance, card.FeatureCount)
	assert.InDelta(t, 55.5, card.ClassBalance["PPPD"].Patient, 1e-9)
}

func TestLoadMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.yaml")
	content := `
name: retrained
total_samples: 4200
feature_importance:
  - feature: age
    score: 0.01
  - feature: intensity
    score: 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	card, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "retrained", card.Name)
	assert.Equal(t, 4200, card.TotalSamples)
	assert.Equal(t, 13, card.FeatureCount)
	assert.Equal(t, 94.38, card.Metrics.Accuracy)
	assert.Equal(t, "intensity", card.FeatureImportance[0].Feature)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
