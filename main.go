package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shadowbound/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	addr := flag.String("addr", "", "listen address (overrides PORT)")
	flag.Parse()

	cfg := server.LoadConfig()
	if *addr != "" {
		cfg.Addr = *addr
	}

	if err := server.StartApp(cfg); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
