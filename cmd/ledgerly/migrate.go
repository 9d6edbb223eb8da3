package main

import (
	"fmt"

	"ledgerly/internal/database"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply all pending migrations",
				Action: func(c *cli.Context) error {
					cfg, loggerCleanup, err := bootstrap(c)
					if err != nil {
						return err
					}
					defer loggerCleanup()
					return database.MigrateUp(cfg.Database.Url)
				},
			},
			{
				Name:  "down",
				Usage: "Roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back, 0 for all"},
				},
				Action: func(c *cli.Context) error {
					cfg, loggerCleanup, err := bootstrap(c)
					if err != nil {
						return err
					}
					defer loggerCleanup()

					zap.L().Warn("Rolling back migrations", zap.Int("steps", c.Int("steps")))
					return database.MigrateDown(cfg.Database.Url, c.Int("steps"))
				},
			},
			{
				Name:  "version",
				Usage: "Print the applied schema version",
				Action: func(c *cli.Context) error {
					cfg, loggerCleanup, err := bootstrap(c)
					if err != nil {
						return err
					}
					defer loggerCleanup()

					version, dirty, ok, err := database.MigrationVersion(cfg.Database.Url)
					if err != nil {
						return err
					}
					if !ok {
						fmt.Fprintln(c.App.Writer, "no migrations applied")
						return nil
					}
					fmt.Fprintf(c.App.Writer, "version %d (dirty: %v)\n", version, dirty)
					return nil
				},
			},
		},
	}
}
