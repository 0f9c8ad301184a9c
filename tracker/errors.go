package tracker

import "errors"

// ErrVesselMissing reports a run started without a configured vessel
// identifier.
var ErrVesselMissing = errors.New("tracker: vessel MMSI not configured")

// ErrCheckpointUnavailable reports that the checkpoint lookup could not
// determine a last-report time. The run cannot bound the feed query and
// aborts rather than guessing.
var ErrCheckpointUnavailable = errors.New("tracker: checkpoint unavailable")
