package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/rs/cors"
)

// HealthzServer answers liveness probes while a check run is in progress.
// Long build rules can keep the harness busy for minutes, so supervisors
// poll this endpoint instead of watching the process.
type HealthzServer struct {
	ctx    context.Context
	server *http.Server
}

// healthzStatus is the JSON payload served on /healthz.
type healthzStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (h *HealthzServer) Start(ctx context.Context, addr string) error {
	hdlr := http.NewServeMux()
	hdlr.HandleFunc("/healthz", h.Handle)
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
	})
	server := &http.Server{
		Handler: c.Handler(hdlr),
		Addr:    addr,
	}
	h.server = server
	h.ctx = ctx
	return h.server.ListenAndServe()
}

func (h *HealthzServer) Shutdown() error {
	return h.server.Shutdown(h.ctx)
}

func (h *HealthzServer) Handle(w http.ResponseWriter, r *http.Request) {
	log.Debug("Received health check request", "path", r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(healthzStatus{Status: "ok", Service: "repogate"}); err != nil {
		log.Error("Failed to write health check response", "error", err)
	}
}
