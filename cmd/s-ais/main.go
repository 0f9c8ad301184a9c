package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/garetharevans/s-ais/config"
	"github.com/garetharevans/s-ais/mapshare"
	"github.com/garetharevans/s-ais/marinetraffic"
	"github.com/garetharevans/s-ais/notifier"
	"github.com/garetharevans/s-ais/tracker"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to the yaml configuration file")
	since := flag.String("since", "", "RFC3339 time bounding the feed query (skips the checkpoint lookup)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	checkpoints := marinetraffic.NewClient(cfg.MarineTraffic.VesselURL, timeout)
	feed := mapshare.NewClient(cfg.MapShare.FeedURL, timeout)
	mailer := notifier.NewMailer(cfg.Email.SMTP.Host, cfg.Email.SMTP.Port, cfg.Email.SMTP.User, cfg.Email.SMTP.Password)

	t := tracker.New(cfg, checkpoints, feed, mailer)
	t.Progress = os.Stdout

	if *since != "" {
		ts, err := time.Parse(time.RFC3339, *since)
		if err != nil {
			slog.Error("invalid -since value", "value", *since, "error", err)
			os.Exit(1)
		}
		t.Since = ts.UTC()
	}

	if err := t.Run(context.Background()); err != nil {
		slog.Error("sync failed", "mmsi", cfg.Vessel.MMSI, "error", err)
		os.Exit(1)
	}
}
