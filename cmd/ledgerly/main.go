/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"fmt"
	"os"

	"ledgerly/internal/common"
	"ledgerly/internal/config"
	"ledgerly/internal/models"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "ledgerly: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ledgerly",
		Usage: "Transaction ledger service for the Ledgerly wallet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML file with fallback values for environment settings",
				EnvVars: []string{config.EnvConfigFile},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			summarizeCommand(),
			historyCommand(),
		},
	}
}

// bootstrap loads configuration and installs the global logger
func bootstrap(c *cli.Context) (*models.Config, func(), error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	_, loggerCleanup, err := common.InitializeLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, loggerCleanup, nil
}
