package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/urfave/negroni"
)

func (s *server) setupRoutes() {
	s.router.HandleFunc("/gadget", s.handleCreateGadget()).Methods("POST")
	s.router.HandleFunc("/gadgets", s.handleGetGadgets()).Methods("GET")
	s.router.HandleFunc("/gadgets/{id}", s.handleGetGadget()).Methods("GET")
	s.router.HandleFunc("/gadgets/{id}", s.handleDeleteGadget()).Methods("DELETE")
	s.router.Use(logMiddleware)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		log.Println(r.Method, r.RequestURI, r.Proto, "->", ww.Status(), http.StatusText(ww.Status()))
	})
}

func (s *server) handleCreateGadget() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var g gadget
		if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
			http.Error(w, "could not decode gadget", http.StatusBadRequest)
			return
		}

		g.ID = uuid.NewString()
		s.gadgets = append(s.gadgets, g)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(g)
	}
}

func (s *server) handleGetGadgets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.gadgets)
	}
}

func (s *server) handleGetGadget() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		for _, g := range s.gadgets {
			if g.ID == id {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(g)
				return
			}
		}
		http.NotFound(w, r)
	}
}

func (s *server) handleDeleteGadget() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		for i, g := range s.gadgets {
			if g.ID == id {
				s.gadgets = append(s.gadgets[:i], s.gadgets[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		http.NotFound(w, r)
	}
}
