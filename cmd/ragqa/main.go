package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	cmd := newRootCmd(log, azureProviders)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("ragqa failed")
		os.Exit(1)
	}
}
