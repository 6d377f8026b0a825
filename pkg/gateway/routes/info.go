package routes

import (
	"encoding/json"
	"net/http"

	"github.com/dizzycheck/platform/pkg/common/logger"
	"github.com/dizzycheck/platform/pkg/conditions"
	"github.com/dizzycheck/platform/pkg/modelcard"
	"github.com/dizzycheck/platform/pkg/screening"
	"github.com/gorilla/mux"
)

// ModelInfo describes the artifacts the running service loaded.
type ModelInfo struct {
	Type          string   `json:"type"`
	Version       string   `json:"version"`
	SchemaVersion string   `json:"schema_version"`
	Features      []string `json:"features"`
	Outputs       []string `json:"outputs"`
	ScalerLoaded  bool     `json:"scaler_loaded"`
	ScalerType    string   `json:"scaler_type,omitempty"`
}

type conditionsResponse struct {
	Disclaimer string             `json:"disclaimer"`
	Threshold  float64            `json:"likely_threshold"`
	Conditions []conditions.Entry `json:"conditions"`
}

type modelResponse struct {
	Model ModelInfo      `json:"model"`
	Card  modelcard.Card `json:"card"`
}

type InfoHandler struct {
	catalog conditions.Catalog
	card    modelcard.Card
	model   ModelInfo
}

func NewInfoHandler(catalog conditions.Catalog, card modelcard.Card, model ModelInfo) *InfoHandler {
	if len(model.Features) == 0 {
		model.Features = screening.Schema.Names()
	}
	if model.SchemaVersion == "" {
		model.SchemaVersion = screening.Schema.Version()
	}
	return &InfoHandler{catalog: catalog, card: card, model: model}
}

func (h *InfoHandler) Register(r *mux.Router) {
	r.HandleFunc("/conditions", h.handleConditions).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/model", h.handleModel).Methods(http.MethodGet, http.MethodOptions)
}

func (h *InfoHandler) handleConditions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, conditionsResponse{
		Disclaimer: h.catalog.Disclaimer,
		Threshold:  screening.LikelyThreshold,
		Conditions: h.catalog.Entries(),
	})
}

func (h *InfoHandler) handleModel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, modelResponse{Model: h.model, Card: h.card})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Error("failed to write json response")
	}
}
