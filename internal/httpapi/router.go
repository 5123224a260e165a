package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultRouteTimeout = 120 * time.Second

// NewRouter constructs the chi router with shared middleware and the API
// routes. The timeout covers the whole request: generation plus the serial
// remote mutations of a full batch.
func NewRouter(h *Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(defaultRouteTimeout))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, codeRouteNotFound, fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeError(req.Context(), w, codeMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed)
	})

	r.Get("/health", h.Health)
	r.Post("/generate-orders", h.GenerateOrders)
	r.Post("/generate-inventory", h.GenerateInventory)
	r.Post("/preview", h.Preview)
	r.Post("/clear-orders", h.ClearOrders)
	r.Delete("/clear-orders", h.ClearOrders)
	r.Post("/reset-inventory", h.ResetInventory)
	r.Get("/history", h.History)

	return r
}
