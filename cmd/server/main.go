package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bankist/bankist/cmd/httpserver"
	"github.com/bankist/bankist/internal/middleware"
	"github.com/bankist/bankist/internal/seed"
	"github.com/bankist/bankist/pkg/configpkg"
	"github.com/bankist/bankist/pkg/schedpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	accounts, err := seed.Load(config.SeedFile)
	if err != nil {
		logger.Fatal().Err(err).Str("seed_file", config.SeedFile).Msg("cannot load seed accounts")
	}

	server := httpserver.New(accounts, schedpkg.New(), logger, config)

	logger.Info().Str("address", config.ServerAddress).Int("accounts", server.Store.Len()).Msg("starting server")

	if err := http.ListenAndServe(config.ServerAddress, server); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
