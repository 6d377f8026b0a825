package screening

import (
	"encoding/json"
	"net/http"

	"github.com/dizzycheck/platform/pkg/common/logger"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register also matches OPTIONS so CORS preflight reaches the router middleware.
func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/screenings", h.handleScreen).Methods(http.MethodPost, http.MethodOptions)
}

func (h *HTTPHandler) handleScreen(w http.ResponseWriter, r *http.Request) {
	var req RequestWrapper
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid screening payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	screening, err := h.service.Screen(r.Context(), req.ToSubmission())
	if err != nil {
		if IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if IsPredictionError(err) {
			logger.Log.WithError(err).Error("screening prediction failed")
			http.Error(w, "prediction failed", http.StatusInternalServerError)
			return
		}
		logger.Log.WithError(err).Error("failed to run screening")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(screening)
}
