package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"langpedia/internal/app"
	"langpedia/internal/domain"
)

// NewRouter mounts the read-only REST API and the websocket endpoint.
func NewRouter(service *app.BrowserService, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	api := &apiHandler{service: service, logger: logger}
	ws := NewWSHandler(service, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)
	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", api.listLanguages)
		r.Get("/languages/{id}", api.getLanguage)
		r.Get("/search", api.search)
		r.Get("/quiz/preview", api.previewQuiz)
	})
	return r
}

type apiHandler struct {
	service *app.BrowserService
	logger  *zap.Logger
}

func (h *apiHandler) listLanguages(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Catalog(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat.Items())
}

func (h *apiHandler) getLanguage(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Catalog(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	item, ok := cat.Get(chi.URLParam(r, "id"))
	if !ok {
		h.fail(w, domain.ErrItemNotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *apiHandler) search(w http.ResponseWriter, r *http.Request) {
	cat, err := h.service.Catalog(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	hits := cat.Search(r.URL.Query().Get("q"))
	if hits == nil {
		hits = []domain.SearchHit{}
	}
	writeJSON(w, http.StatusOK, hits)
}

func (h *apiHandler) previewQuiz(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.PreviewQuiz(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *apiHandler) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrItemNotFound) {
		status = http.StatusNotFound
	} else {
		h.logger.Error("api request failed", zap.Error(err))
	}
	writeJSON(w, status, errorPayload{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger emits one structured entry per request.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
