package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"metroexit/internal/config"
	"metroexit/internal/metro"
	"metroexit/internal/realtime"
	"metroexit/internal/server"
	"metroexit/internal/storage"
	"metroexit/internal/wmata"
)

func dataDirFlag(cfg *config.Config) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "data-dir",
		Usage:       "directory holding Doors.csv, Egresses.csv, Exits.csv and Stations.csv",
		Value:       cfg.DataDir,
		Destination: &cfg.DataDir,
	}
}

func importCommand(cfg *config.Config, logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Parse the reference CSVs and replace the tables in the database",
		Flags: []cli.Flag{dataDirFlag(cfg)},
		Action: func(c *cli.Context) error {
			db, err := storage.Open(cfg.DBPath, logger)
			if err != nil {
				return err
			}
			defer db.Close()
			return importData(c.Context, db, cfg.DataDir, logger)
		},
	}
}

func serveCommand(cfg *config.Config, logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web trip planner",
		Flags: []cli.Flag{
			dataDirFlag(cfg),
			&cli.IntFlag{
				Name:        "port",
				Usage:       "HTTP server port",
				Value:       cfg.Port,
				Destination: &cfg.Port,
			},
		},
		Action: func(c *cli.Context) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := storage.Open(cfg.DBPath, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			network, err := loadNetwork(ctx, db, cfg.DataDir, logger)
			if err != nil {
				return err
			}

			rt := realtime.NewStore()
			if cfg.AlertsURL != "" {
				go realtime.NewFetcher(cfg.AlertsURL, cfg.AlertsAPIKey, rt, logger).Start(ctx)
			} else {
				logger.Info().Msg("no alerts feed configured")
			}

			srv, err := server.New(cfg, db, network, rt, logger)
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}
}

func planCommand(cfg *config.Config, logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "Print the car, door and exit to use between two stations",
		ArgsUsage: "START END",
		Flags: []cli.Flag{
			dataDirFlag(cfg),
			&cli.BoolFlag{Name: "json", Usage: "print the plan as JSON"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("plan needs a START and an END station", 2)
			}
			network, err := openNetwork(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			plan, err := metro.PlanTrip(network, c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				return err
			}
			if c.Bool("json") {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(plan)
			}
			return writePlan(os.Stdout, plan)
		},
	}
}

func stationsCommand(cfg *config.Config, logger zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "List every station name",
		Flags: []cli.Flag{dataDirFlag(cfg)},
		Action: func(c *cli.Context) error {
			network, err := openNetwork(c.Context, cfg, logger)
			if err != nil {
				return err
			}
			for _, name := range network.StationNames() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func importData(ctx context.Context, db *storage.DB, dataDir string, logger zerolog.Logger) error {
	tables, err := wmata.ParseDir(dataDir, logger)
	if err != nil {
		return err
	}
	// Build once before writing so broken CSVs never replace good tables.
	if _, err := wmata.BuildNetwork(tables); err != nil {
		return fmt.Errorf("validating %s: %w", dataDir, err)
	}
	return wmata.NewImporter(db, logger).Import(ctx, tables, dataDir)
}

// loadNetwork imports dataDir first when the database is empty, then builds
// the network from the stored tables.
func loadNetwork(ctx context.Context, db *storage.DB, dataDir string, logger zerolog.Logger) (*metro.Network, error) {
	ok, err := db.HasData(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Info().Str("dir", dataDir).Msg("database empty, importing reference data")
		if err := importData(ctx, db, dataDir, logger); err != nil {
			return nil, err
		}
	}

	tables, err := wmata.LoadTables(ctx, db)
	if err != nil {
		return nil, err
	}
	network, err := wmata.BuildNetwork(tables)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("stations", len(network.StationNames())).Msg("network built")
	return network, nil
}

func openNetwork(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*metro.Network, error) {
	db, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return loadNetwork(ctx, db, cfg.DataDir, logger)
}

// writePlan prints a plan the way a rider reads it on the platform.
func writePlan(w io.Writer, plan *metro.TripPlan) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s to %s\n", plan.StartStation, plan.EndStation)
	for i, leg := range plan.Legs() {
		if plan.Transfer {
			fmt.Fprintf(&b, "\nLeg %d: ", i+1)
		} else {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s toward %s, %d stops to %s\n", leg.Lines, leg.Direction, leg.NumStops, leg.EndStation)

		labels := leg.Egresses.Labels()
		if len(labels) == 0 {
			b.WriteString("  no egress information\n")
			continue
		}
		for _, label := range labels {
			fmt.Fprintf(&b, "  %s\n", label)
			for _, rec := range leg.Egresses[label] {
				mark := ""
				if rec.Preferred {
					mark = " *"
				}
				fmt.Fprintf(&b, "    car %d door %d (%s)%s\n", rec.Car, rec.Door, rec.Icon, mark)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
