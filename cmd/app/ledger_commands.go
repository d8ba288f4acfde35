package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/finledger/cmd/app/commands"
	"github.com/allisson/finledger/internal/app"
	"github.com/allisson/finledger/internal/config"
)

func getLedgerCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "verify-balances",
			Usage: "Recompute account balances and card bills and report drifted aggregates",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				audit, err := container.BalanceAuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyBalances(
					ctx,
					audit,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
	}
}
