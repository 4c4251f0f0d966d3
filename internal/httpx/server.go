package httpx

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ariefcatur/go-storefront/internal/storage"
)

// Readiness reports which backend serves requests and whether it is reachable.
type Readiness interface {
	Kind() string
	Ping(ctx context.Context) error
}

type Handler struct {
	Store storage.Storage
	Ready Readiness
	Log   *slog.Logger
}

func NewRouter(h *Handler) *chi.Mux {
	if h.Log == nil {
		h.Log = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(h.Log), middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", h.readyz)

	h.registerCatalog(r)
	h.registerOrders(r)
	h.registerReservations(r)
	return r
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	body := map[string]any{"backend": h.Ready.Kind()}
	if err := h.Ready.Ping(ctx); err != nil {
		body["error"] = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	body["status"] = "ready"
	writeJSON(w, http.StatusOK, body)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// respond writes v, 404 when it is a nil pointer, or 500 on err.
func respond[T any](w http.ResponseWriter, v *T, err error) {
	switch {
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	case v == nil:
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeJSON(w, http.StatusOK, v)
	}
}

func respondList[T any](w http.ResponseWriter, v []T, err error) {
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, v)
}
