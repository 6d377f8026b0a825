package main

import (
	"fmt"

	"github.com/dizzycheck/platform/pkg/common/logger"
	"github.com/dizzycheck/platform/pkg/gateway/routes"
	"github.com/dizzycheck/platform/pkg/ml/scaling"
	"github.com/dizzycheck/platform/pkg/screening"
	"github.com/dizzycheck/platform/pkg/serving/predictor"
)

// artifacts are the fitted scaler and model the service predicts with. scaler is nil
// only when unscaled fallback was allowed and the scaler failed to load.
type artifacts struct {
	scaler *scaling.Fitted
	model  *predictor.Model
}

// loadArtifacts loads both artifacts and checks them against the feature schema. Any
// mismatch is fatal; a scaler that cannot be read is tolerated only when
// allowUnscaled is set.
func loadArtifacts(scalerPath, modelPath string, allowUnscaled bool) (*artifacts, error) {
	model, err := predictor.Load(modelPath)
	if err != nil {
		return nil, err
	}

	scaler, err := scaling.Load(scalerPath)
	if err != nil {
		if !allowUnscaled {
			return nil, err
		}
		logger.Log.WithError(err).Warn("scaler unavailable, every screening will use unscaled features")
		scaler = nil
	}

	var scalerInfo *screening.ArtifactInfo
	if scaler != nil {
		scalerInfo = &screening.ArtifactInfo{
			Kind:          "scaler",
			Width:         scaler.Width(),
			FeatureNames:  scaler.FeatureNames,
			SchemaVersion: scaler.SchemaVersion,
		}
	}
	modelInfo := screening.ArtifactInfo{
		Kind:          "model",
		Width:         model.InputWidth(),
		FeatureNames:  model.FeatureNames,
		SchemaVersion: model.SchemaVersion,
	}
	if err := screening.Schema.CheckArtifacts(scalerInfo, modelInfo, model.Outputs, model.OutputWidth()); err != nil {
		return nil, fmt.Errorf("artifact check failed: %w", err)
	}

	return &artifacts{scaler: scaler, model: model}, nil
}

// transformer keeps a missing scaler a nil interface.
func (a *artifacts) transformer() screening.Transformer {
	if a.scaler == nil {
		return nil
	}
	return a.scaler
}

func (a *artifacts) info() routes.ModelInfo {
	info := routes.ModelInfo{
		Type:          a.model.Type,
		Version:       a.model.Version,
		SchemaVersion: screening.Schema.Version(),
		Features:      screening.Schema.Names(),
		Outputs:       []string{string(screening.Vertigo), string(screening.Migraine), string(screening.PPPD)},
	}
	if a.scaler != nil {
		info.ScalerLoaded = true
		info.ScalerType = a.scaler.Type
	}
	return info
}
