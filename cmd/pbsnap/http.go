package main

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"go.klb.dev/pbsnap/internal/snapshot"
)

// serveHTTP runs the read-only HTTP API on ln. Both endpoints mirror the
// two core operations; there is no write surface.
func serveHTTP(ln net.Listener, reader *snapshot.Reader) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /v1/snapshot", func(w http.ResponseWriter, _ *http.Request) {
		it := reader.Read()
		if it == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(it); err != nil {
			slog.Debug("snapshot response write failed", "err", err)
		}
	})

	mux.HandleFunc("GET /v1/changecount", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]int64{"change_count": reader.ChangeCount()})
	})

	srv := &http.Server{Handler: mux}
	if err := srv.Serve(ln); err != nil {
		slog.Error("http server stopped", "err", err)
	}
}
