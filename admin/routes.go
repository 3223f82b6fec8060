package admin

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/negroni"

	"github.com/castorhq/castor/apispec"
)

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/schemas", s.handleListSchemas()).Methods("GET")
	s.router.HandleFunc("/schema", s.handleGetSchema()).Methods("GET")
	s.router.HandleFunc("/schema", s.handleResetSchema()).Methods("DELETE")
	s.router.HandleFunc("/openapi.json", s.handleOpenAPI()).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Use(logMiddleware)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		slog.Info("admin", "method", r.Method, "uri", r.RequestURI, "status", ww.Status())
	})
}

type sourceInfo struct {
	Key     string `json:"key"`
	Samples int    `json:"samples"`
}

func (s *Server) handleListSchemas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keys := s.reg.Keys()
		res := make([]sourceInfo, 0, len(keys))
		for _, k := range keys {
			res = append(res, sourceInfo{Key: k, Samples: s.reg.Samples(k)})
		}
		writeJSON(w, res)
	}
}

func (s *Server) handleGetSchema() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		cur, ok := s.reg.Current(key)
		if !ok {
			http.Error(w, "unknown source key", http.StatusNotFound)
			return
		}
		writeJSON(w, cur)
	}
}

func (s *Server) handleResetSchema() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.reg.Reset(r.URL.Query().Get("key"))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleOpenAPI() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, apispec.Export(s.reg))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("could not encode response", "err", err)
	}
}
