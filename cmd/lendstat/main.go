package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/mtlprog/lendstat/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	app := newApp(cfg)
	if err := app.RunContext(ctx, os.Args); err != nil {
		slog.Error("lendstat failed", "error", err)
		os.Exit(1)
	}
}

func newApp(cfg config.Config) *cli.App {
	return &cli.App{
		Name:  "lendstat",
		Usage: "portfolio statistics for lending reserves",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "fixture",
				Aliases: []string{"f"},
				Value:   cfg.FixturePath,
				Usage:   "market fixture `FILE` (YAML)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: cfg.LogLevel.String(),
				Usage: "log level: debug, info, warn, error",
			},
		},
		Before: func(c *cli.Context) error {
			setupLogging(c.String("log-level"), cfg.LogLevel)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "snapshot",
				Usage: "compute and print the current snapshot",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
				},
				Action: func(c *cli.Context) error {
					return runSnapshot(c.App.Writer, c.String("fixture"), cfg.PriceCacheTTL, c.Bool("json"))
				},
			},
			{
				Name:  "watch",
				Usage: "reload the fixture periodically and print every new snapshot",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "interval", Value: cfg.TickInterval, Usage: "market tick interval"},
				},
				Action: func(c *cli.Context) error {
					return runWatch(c.Context, c.App.Writer, c.String("fixture"), cfg.PriceCacheTTL, c.Duration("interval"))
				},
			},
			{
				Name:  "export",
				Usage: "write the current snapshot as an XLSX workbook",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "lendstat.xlsx", Usage: "output `FILE`"},
				},
				Action: func(c *cli.Context) error {
					return runExport(c.String("fixture"), cfg.PriceCacheTTL, c.String("out"))
				},
			},
		},
	}
}

func setupLogging(levelName string, fallback slog.Level) {
	level, ok := config.ParseLevel(levelName)
	if !ok {
		level = fallback
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	if !ok {
		slog.Warn("invalid log level, using default", "value", levelName, "default", fallback)
	}
}
