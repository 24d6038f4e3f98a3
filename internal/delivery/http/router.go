package http //nolint:revive // directory-based package name, imported with alias

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(h *Handler, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.logger))
	r.Use(recoverer(h.logger))
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/account", func(r chi.Router) {
			r.Post("/", h.HandleCreateAccount)
			r.Post("/transfer", h.HandleTransfer)
			r.Get("/{id}", h.HandleGetAccount)
			r.Get("/{id}/qr", h.HandleQR)
		})
		r.Get("/operation/{operation_id}", h.HandleOperation)
	})

	r.NotFound(h.HandleNotFound)

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.Info("http request",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// recoverer turns a panic into a 500 with the JSON error body.
func recoverer(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler { //nolint:errorlint // sentinel compared as chi does
					panic(rvr)
				}
				logger.Error("panic recovered",
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.Any("panic", rvr),
					zap.ByteString("stack", debug.Stack()),
				)
				writeErrors(w, http.StatusInternalServerError, ErrorMessage{Code: CodeInternalServerError})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
