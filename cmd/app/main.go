// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/receiptvault/cmd/app/commands"
	"github.com/allisson/receiptvault/internal/config"
	cryptoService "github.com/allisson/receiptvault/internal/crypto/service"
)

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Receipt vault object storage and PII protection",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migrations for the object store",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
					return commands.RunMigrations(logger, cfg.ObjectStoreDriver, cfg.DBConnectionString)
				},
			},
			{
				Name:  "create-secret-key",
				Usage: "Generate a new process-wide secret key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "kms-provider",
						Aliases: []string{"p"},
						Value:   "",
						Usage:   "KMS provider used to wrap the key (e.g., gcpkms, awskms, localsecrets)",
					},
					&cli.StringFlag{
						Name:    "kms-key-uri",
						Aliases: []string{"u"},
						Value:   "",
						Usage:   "URI of the key-wrapping key in the KMS",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateSecretKey(
						ctx,
						cryptoService.NewKMSService(),
						os.Stdout,
						cmd.String("kms-provider"),
						cmd.String("kms-key-uri"),
					)
				},
			},
			{
				Name:  "reconcile",
				Usage: "Sweep and repair orphaned object state",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunReconcile(ctx)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
