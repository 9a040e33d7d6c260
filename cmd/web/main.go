package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/macanangkasa/klondike"
	"github.com/macanangkasa/klondike/results"
	"github.com/macanangkasa/klondike/server"
)

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatal(err.Error())
	}

	resultsStore, err := results.OpenSQLite(cfg.ResultsDB)
	if err != nil {
		log.Fatal(err.Error())
	}
	defer resultsStore.Close()

	s := server.NewServer(klondike.NewInMemoryGameStore(), resultsStore)

	handler := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.AllowedOrigin}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handlers.CombinedLoggingHandler(os.Stdout, s))

	log.Printf("Listening on %s...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}
