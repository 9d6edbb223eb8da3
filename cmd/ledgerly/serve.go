package main

import (
	"os"
	"os/signal"
	"syscall"

	"ledgerly/internal/common"
	"ledgerly/internal/server"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the transaction API",
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	cfg, loggerCleanup, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer loggerCleanup()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	zap.L().Info("Starting ledgerly", zap.String("addr", cfg.Server.Addr))

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Error("Failed to initialize services", zap.Error(err))
		return err
	}
	defer services.Close()

	return server.New(services.Ledger, cfg.Server).Run(ctx)
}
