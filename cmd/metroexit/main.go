package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"metroexit/internal/config"
)

func main() {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading configuration")
	}

	app := &cli.App{
		Name:  "metroexit",
		Usage: "Which car, which door, which exit: metro trip plans for riders in a hurry",
		Commands: []*cli.Command{
			importCommand(cfg, logger),
			serveCommand(cfg, logger),
			planCommand(cfg, logger),
			stationsCommand(cfg, logger),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal().Err(err).Send()
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if os.Getenv("METROEXIT_LOG_FORMAT") != "JSON" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("METROEXIT_DEBUG") == "YES" {
		return logger.Level(zerolog.DebugLevel)
	}
	return logger.Level(zerolog.InfoLevel)
}
