package report

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/garetharevans/s-ais/mapshare"
)

// DefaultRecipient receives reports when no recipient is configured.
const DefaultRecipient = "position-reports@sailmail.com"

// KmhToKnots is the speed conversion factor applied to feed velocities.
const KmhToKnots = 0.539957

// ErrSenderMissing reports a build attempted without a configured sender
// address.
var ErrSenderMissing = errors.New("report: sender address not configured")

// Message is a fully assembled position report, ready for delivery.
type Message struct {
	To      string
	From    string
	Subject string
	Text    string
}

// Layouts accepted for the feed's Time UTC property. The value is a naive
// timestamp already in UTC; no zone conversion is ever applied.
var timeLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Build assembles the notification for one position record.
func Build(pos mapshare.Position, vesselID, from, to string) (Message, error) {
	if from == "" {
		return Message{}, ErrSenderMissing
	}
	if to == "" {
		to = DefaultRecipient
	}

	speed, err := knots(pos.Velocity)
	if err != nil {
		return Message{}, fmt.Errorf("report: velocity %q: %w", pos.Velocity, err)
	}
	course, err := courseString(pos.Course)
	if err != nil {
		return Message{}, fmt.Errorf("report: course %q: %w", pos.Course, err)
	}
	stamp, err := timestampString(pos.TimeUTC)
	if err != nil {
		return Message{}, fmt.Errorf("report: time %q: %w", pos.TimeUTC, err)
	}

	var b strings.Builder
	b.WriteString("------------------------------\n")
	fmt.Fprintf(&b, "MMSI: %s\n", vesselID)
	fmt.Fprintf(&b, "LAT: %s\n", pos.Latitude)
	fmt.Fprintf(&b, "LON: %s\n", pos.Longitude)
	fmt.Fprintf(&b, "SPEED: %s kn\n", speed)
	fmt.Fprintf(&b, "COURSE: %s\n", course)
	fmt.Fprintf(&b, "TIMESTAMP: %s\n", stamp)
	b.WriteString("------------------------------\n")

	return Message{
		To:      to,
		From:    from,
		Subject: fmt.Sprintf("Position report %s %s", vesselID, stamp),
		Text:    b.String(),
	}, nil
}

// knots converts a "<number> km/h" velocity to knots, rounded to five
// decimals. Only the leading numeric token is read; the unit suffix is
// ignored.
func knots(velocity string) (string, error) {
	token := velocity
	if i := strings.IndexByte(token, ' '); i >= 0 {
		token = token[:i]
	}
	kmh, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return "", err
	}
	kn := math.Round(kmh*KmhToKnots*1e5) / 1e5
	return strconv.FormatFloat(kn, 'f', -1, 64), nil
}

// courseString renders a possibly fractional course as a zero-padded
// 3-digit degree value. The fractional part is truncated, not rounded.
func courseString(course string) (string, error) {
	if i := strings.IndexByte(course, '.'); i >= 0 {
		course = course[:i]
	}
	deg, err := strconv.Atoi(course)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%03d", deg), nil
}

// timestampString reflows the feed's UTC time into "2006-01-02 15:04:05".
// The source is naive UTC and stays UTC; there is no zone suffix.
func timestampString(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return ts.Format("2006-01-02 15:04:05"), nil
		}
	}
	return "", fmt.Errorf("unrecognized timestamp")
}
