package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eim-dev/eim-client/pkg/client"
	"github.com/eim-dev/eim-client/pkg/model"
)

// newStatusRouter serves the live state of c. gatherer backs /metrics and
// may be nil.
func newStatusRouter(c *client.Client, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-c.Done():
			http.Error(w, "backend connection lost", http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		}
	})

	r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, c.Store().Snapshot())
	})

	r.Get("/tracks/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := model.ParseEntityID(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t, ok := c.Store().Track(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		mixer, _ := c.Store().Mixer(id)
		writeJSON(w, struct {
			Track model.Track     `json:"track"`
			Mixer model.MixerInfo `json:"mixer"`
		}{t, mixer})
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = writeValue(w, outputJSON, v)
}
