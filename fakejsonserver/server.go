package main

import (
	"time"

	"github.com/gorilla/mux"
)

type server struct {
	router  *mux.Router
	gadgets []gadget
}

func newServer() server {
	return server{
		router:  mux.NewRouter(),
		gadgets: make([]gadget, 0),
	}
}

func (s *server) populateTestGadgets() {
	s.gadgets = []gadget{
		{
			ID:        "3fa85f64-5717-4562-b3fc-2c963f66afa6",
			Name:      "Jeremy Bearimy",
			Link:      "http://example.com/gadgets/bearimy",
			Contact:   "support@example.com",
			Stock:     3,
			Rating:    4.5,
			CreatedAt: time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		},
		{
			ID:        "b1c0d9a2-44f5-4b9e-9c3d-8a2f6e1d0c5b",
			Name:      "Gizmo",
			Link:      "http://example.com/gadgets/gizmo",
			Stock:     0,
			Rating:    3,
			CreatedAt: time.Date(2023, 11, 15, 9, 30, 0, 0, time.UTC).Format(time.RFC3339),
		},
	}
}

type gadget struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Link      string  `json:"link"`
	Contact   string  `json:"contact,omitempty"`
	Stock     int     `json:"stock"`
	Rating    float64 `json:"rating"`
	CreatedAt string  `json:"createdAt"`
}
