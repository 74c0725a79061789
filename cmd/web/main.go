package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/skansin/sjaus"
	"github.com/skansin/sjaus/server"
	"github.com/skansin/sjaus/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using the process environment")
	}

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %s", err)
	}

	var gameStore sjaus.GameStore
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("connecting to postgres: %s", err)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(); err != nil {
			log.Fatalf("preparing schema: %s", err)
		}
		gameStore = pg
		log.Println("using postgres game store")
	} else {
		gameStore = sjaus.NewInMemoryGameStore()
		log.Println("DATABASE_URL not set, games will not survive a restart")
	}

	s := server.NewServer(cfg, gameStore)
	log.Printf("listening on %s...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, s))
}
