package admin

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/castorhq/castor/registry"
)

// Server is the rendering collaborator: a small HTTP API over the registry
// for operators and dashboards.
type Server struct {
	reg    *registry.Registry
	router *mux.Router
}

func NewServer(reg *registry.Registry) *Server {
	s := &Server{
		reg:    reg,
		router: mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
