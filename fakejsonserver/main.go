package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
)

// A small JSON API to point the proxy at. Its payloads deliberately mix
// uuids, timestamps, urls, integers and floats so inferred schemas have
// something interesting to say.

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	host := flag.String("h", "", "the host to listen on")
	port := flag.String("p", "3000", "the port to listen on")
	flag.Parse()

	addr := fmt.Sprintf("%s:%s", *host, *port)
	log.Println("Listening at", addr)

	s := newServer()
	s.populateTestGadgets()
	s.setupRoutes()

	return http.ListenAndServe(addr, s.router)
}
