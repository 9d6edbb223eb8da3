package main

import (
	"fmt"
	"time"

	"ledgerly/internal/common"
	"ledgerly/internal/models"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func summarizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "summarize",
		Usage: "Rebuild daily transaction summaries from completed transactions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "last day to rebuild (YYYY-MM-DD), defaults to today in UTC"},
			&cli.IntFlag{Name: "days", Value: 1, Usage: "number of days ending at --date to rebuild"},
		},
		Action: summarize,
	}
}

func summarize(c *cli.Context) error {
	cfg, loggerCleanup, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer loggerCleanup()

	last := models.NewDate(time.Now())
	if raw := c.String("date"); raw != "" {
		last, err = models.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", raw, err)
		}
	}

	services, err := common.InitializeServices(c.Context, cfg)
	if err != nil {
		return err
	}
	defer services.Close()

	written, err := services.Ledger.RebuildSummaries(c.Context, last, c.Int("days"))
	if err != nil {
		return err
	}

	zap.L().Info("Summaries rebuilt",
		zap.Stringer("last_day", last),
		zap.Int("days", c.Int("days")),
		zap.Int("rows", written))
	fmt.Fprintf(c.App.Writer, "Rebuilt %d summary rows for %d day(s) ending %s\n", written, c.Int("days"), last)
	return nil
}
