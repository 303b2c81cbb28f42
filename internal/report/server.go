package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/flowdoc/internal/analyzer"
	"github.com/ziadkadry99/flowdoc/internal/depgraph"
	"github.com/ziadkadry99/flowdoc/internal/usage"
)

// API is the JSON view of an analysis exposed next to the static site.
type API struct {
	Order        []string                         `json:"order,omitempty"`
	OrderError   string                           `json:"orderError,omitempty"`
	Cycles       [][]string                       `json:"cycles"`
	Dependencies []depgraph.Dependency            `json:"dependencies"`
	Attributes   map[string]*usage.AttributeFlows `json:"contactAttributes"`
	Functions    map[string]*usage.ResourceFlows  `json:"lambdaFunctions"`
	Bots         map[string]*usage.ResourceFlows  `json:"lexBots"`
}

// BuildAPI snapshots the analysis queries into a serveable API payload.
func BuildAPI(a *analyzer.Analyzer) *API {
	api := &API{
		Cycles:       a.Dependencies().Cycles(),
		Dependencies: a.Dependencies().Dependencies(),
		Attributes:   a.Usage().Attributes(),
		Functions:    a.Usage().Functions(),
		Bots:         a.Usage().Bots(),
	}
	if api.Cycles == nil {
		api.Cycles = [][]string{}
	}
	order, err := a.Dependencies().DependencyOrder()
	if err != nil {
		api.OrderError = err.Error()
	} else {
		api.Order = order
	}
	return api
}

// Serve starts a local HTTP server for the rendered site plus a small
// JSON API over the analysis results. Blocks until the listener fails.
func Serve(dir string, port int, api *API) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/api/order", jsonHandler(map[string]any{"order": api.Order, "error": api.OrderError}))
	r.Get("/api/cycles", jsonHandler(api.Cycles))
	r.Get("/api/dependencies", jsonHandler(api.Dependencies))
	r.Get("/api/usage", jsonHandler(map[string]any{
		"contactAttributes": api.Attributes,
		"lambdaFunctions":   api.Functions,
		"lexBots":           api.Bots,
	}))
	r.Handle("/*", http.FileServer(http.Dir(dir)))

	fmt.Printf("Serving report at http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop.")
	return http.ListenAndServe(fmt.Sprintf(":%d", port), r)
}

// jsonHandler serves a fixed value as JSON.
func jsonHandler(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
