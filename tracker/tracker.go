package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/garetharevans/s-ais/config"
	"github.com/garetharevans/s-ais/mapshare"
	"github.com/garetharevans/s-ais/notifier"
	"github.com/garetharevans/s-ais/report"
)

// CheckpointSource resolves the last known public report time for a vessel.
type CheckpointSource interface {
	LastReportTime(ctx context.Context, mmsi string) (time.Time, bool)
}

// FeedSource retrieves the raw route document bounded by a since time.
type FeedSource interface {
	Fetch(ctx context.Context, shareID string, since time.Time) ([]byte, error)
}

// Sender delivers a report asynchronously.
type Sender interface {
	Send(ctx context.Context, msg report.Message) <-chan notifier.Result
}

// Tracker runs the synchronization pipeline for one vessel:
// checkpoint -> feed -> extract -> format -> send.
type Tracker struct {
	cfg         config.Config
	checkpoints CheckpointSource
	feed        FeedSource
	sender      Sender

	// Progress receives a single-character token per stage transition.
	// Observational only; nil disables it.
	Progress io.Writer

	// Since, when set, bounds the feed query directly and skips the
	// checkpoint lookup.
	Since time.Time
}

// New creates a tracker over the given collaborators.
func New(cfg config.Config, checkpoints CheckpointSource, feed FeedSource, sender Sender) *Tracker {
	return &Tracker{
		cfg:         cfg,
		checkpoints: checkpoints,
		feed:        feed,
		sender:      sender,
	}
}

// Run executes one synchronization cycle. An empty feed is a successful run
// with nothing to send; every other shortfall aborts with the underlying
// error.
func (t *Tracker) Run(ctx context.Context) error {
	mmsi := t.cfg.Vessel.MMSI
	if mmsi == "" {
		return ErrVesselMissing
	}

	since := t.Since
	if since.IsZero() {
		var ok bool
		since, ok = t.checkpoints.LastReportTime(ctx, mmsi)
		if !ok {
			return ErrCheckpointUnavailable
		}
	}
	t.progress(".")
	slog.Info("checkpoint resolved", "mmsi", mmsi, "since", since.Format(time.RFC3339))

	doc, err := t.feed.Fetch(ctx, t.cfg.MapShare.ShareID, since)
	if err != nil {
		return err
	}
	t.progress("f")

	positions, err := mapshare.ExtractPlacemarks(doc)
	if err != nil {
		return err
	}
	t.progress("x")

	if len(positions) == 0 {
		slog.Info("no new positions", "mmsi", mmsi)
		t.progress("\n")
		return nil
	}

	// Document order is chronological; the last record is the newest.
	latest := positions[len(positions)-1]
	slog.Info("extracted positions",
		"count", len(positions),
		"latest", latest.TimeUTC,
		"gpsFix", latest.ValidGPSFix,
		"visibility", latest.Visibility,
	)

	msg, err := report.Build(latest, mmsi, t.cfg.Email.From, t.cfg.Email.To)
	if err != nil {
		return err
	}

	res := <-t.sender.Send(ctx, msg)
	if res.Err != nil {
		return res.Err
	}
	t.progress("m")

	t.progress("\n")
	return nil
}

func (t *Tracker) progress(token string) {
	if t.Progress == nil {
		return
	}
	_, _ = fmt.Fprint(t.Progress, token)
}
