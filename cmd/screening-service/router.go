package main

import (
	"net/http"

	"github.com/dizzycheck/platform/pkg/gateway/middleware"
	"github.com/dizzycheck/platform/pkg/gateway/routes"
	"github.com/dizzycheck/platform/pkg/observability/metrics"
	"github.com/dizzycheck/platform/pkg/screening"
	"github.com/gorilla/mux"
)

type routerDeps struct {
	service  *screening.Service
	info     *routes.InfoHandler
	recorder *metrics.Recorder
	limiter  middleware.Limiter
	maxBody  int64
}

func newRouter(deps routerDeps) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Recovery, middleware.Logging, middleware.CORS, middleware.Instrument(deps.recorder))

	router.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	router.HandleFunc("/ready", readyCheck).Methods(http.MethodGet)
	router.Handle("/metrics", deps.recorder.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.BodyLimit(deps.maxBody), middleware.RateLimit(deps.limiter))
	screening.NewHTTPHandler(deps.service).Register(api)
	deps.info.Register(api)

	return router
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func readyCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
