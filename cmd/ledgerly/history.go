package main

import (
	"ledgerly/internal/api"
	"ledgerly/internal/common"
	"ledgerly/internal/models"

	"github.com/urfave/cli/v2"
)

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Print a user's visible transaction history",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "user", Required: true, Usage: "user id"},
			&cli.IntFlag{Name: "limit", Value: api.DefaultHistoryLimit},
			&cli.IntFlag{Name: "offset"},
			&cli.StringFlag{Name: "type", Usage: "only show one transaction type"},
		},
		Action: history,
	}
}

func history(c *cli.Context) error {
	cfg, loggerCleanup, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer loggerCleanup()

	services, err := common.InitializeServices(c.Context, cfg)
	if err != nil {
		return err
	}
	defer services.Close()

	userId := models.UserId(c.Int64("user"))
	page, err := services.Ledger.GetTransactionHistory(c.Context, models.HistoryQuery{
		UserId: userId,
		Limit:  c.Int("limit"),
		Offset: c.Int("offset"),
		Type:   c.String("type"),
	})
	if err != nil {
		return err
	}

	common.PrintTransactionHistory(c.App.Writer, userId, page)
	return nil
}
