package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garetharevans/s-ais/config"
	"github.com/garetharevans/s-ais/mapshare"
	"github.com/garetharevans/s-ais/notifier"
	"github.com/garetharevans/s-ais/report"
)

type stubCheckpoints struct {
	ts time.Time
	ok bool
}

func (s stubCheckpoints) LastReportTime(context.Context, string) (time.Time, bool) {
	return s.ts, s.ok
}

type stubFeed struct {
	doc   []byte
	err   error
	since time.Time
	share string
}

func (s *stubFeed) Fetch(_ context.Context, shareID string, since time.Time) ([]byte, error) {
	s.share = shareID
	s.since = since
	return s.doc, s.err
}

type stubSender struct {
	sent []report.Message
	err  error
}

func (s *stubSender) Send(_ context.Context, msg report.Message) <-chan notifier.Result {
	ch := make(chan notifier.Result, 1)
	s.sent = append(s.sent, msg)
	ch <- notifier.Result{Err: s.err}
	return ch
}

func testConfig() config.Config {
	return config.Config{
		Vessel:   config.VesselConfig{MMSI: "235103551"},
		MapShare: config.MapShareConfig{ShareID: "Skylark"},
		Email:    config.EmailConfig{From: "skipper@example.com", To: "shore@example.com"},
	}
}

func feedDoc(positions ...string) []byte {
	var b strings.Builder
	b.WriteString(`<kml><Document><Folder>`)
	for i, ts := range positions {
		fmt.Fprintf(&b, `<Placemark><ExtendedData>
			<Data name="Id"><value>%d</value></Data>
			<Data name="IMEI"><value>300234010753370</value></Data>
			<Data name="Time UTC"><value>%s</value></Data>
			<Data name="Time"><value>%s</value></Data>
			<Data name="Latitude"><value>43.59</value></Data>
			<Data name="Longitude"><value>7.02</value></Data>
			<Data name="Elevation"><value>0.0 m</value></Data>
			<Data name="Velocity"><value>10 km/h</value></Data>
			<Data name="Course"><value>181.5</value></Data>
			<Data name="Valid GPS Fix"><value>True</value></Data>
		</ExtendedData></Placemark>`, i+1, ts, ts)
	}
	b.WriteString(`</Folder></Document></kml>`)
	return []byte(b.String())
}

func TestRunSendsReportForLatestPosition(t *testing.T) {
	checkpoint := time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC)
	feed := &stubFeed{doc: feedDoc("2024-03-01T09:00:00", "2024-03-01T10:00:00")}
	sender := &stubSender{}

	var progress strings.Builder
	tr := New(testConfig(), stubCheckpoints{ts: checkpoint, ok: true}, feed, sender)
	tr.Progress = &progress

	require.NoError(t, tr.Run(context.Background()))

	require.Len(t, sender.sent, 1, "exactly one notification")
	msg := sender.sent[0]
	assert.Contains(t, msg.Text, "TIMESTAMP: 2024-03-01 10:00:00", "report must use the last placemark")
	assert.Contains(t, msg.Text, "SPEED: 5.39957 kn")
	assert.Equal(t, "shore@example.com", msg.To)

	assert.Equal(t, "Skylark", feed.share)
	assert.True(t, feed.since.Equal(checkpoint), "feed query bounded by the checkpoint")
	assert.Equal(t, ".fxm\n", progress.String())
}

func TestRunEmptyFeedIsSuccess(t *testing.T) {
	feed := &stubFeed{doc: []byte(`<kml><Document></Document></kml>`)}
	sender := &stubSender{}

	var progress strings.Builder
	tr := New(testConfig(), stubCheckpoints{ts: time.Now(), ok: true}, feed, sender)
	tr.Progress = &progress

	require.NoError(t, tr.Run(context.Background()))
	assert.Empty(t, sender.sent, "no new positions must not send")
	assert.Equal(t, ".fx\n", progress.String())
}

func TestRunMissingVesselIsFatal(t *testing.T) {
	cfg := testConfig()
	cfg.Vessel.MMSI = ""

	tr := New(cfg, stubCheckpoints{ok: true}, &stubFeed{}, &stubSender{})
	assert.ErrorIs(t, tr.Run(context.Background()), ErrVesselMissing)
}

func TestRunAbsentCheckpointIsFatal(t *testing.T) {
	sender := &stubSender{}
	tr := New(testConfig(), stubCheckpoints{ok: false}, &stubFeed{}, sender)

	assert.ErrorIs(t, tr.Run(context.Background()), ErrCheckpointUnavailable)
	assert.Empty(t, sender.sent)
}

func TestRunFetchErrorIsFatal(t *testing.T) {
	fetchErr := &mapshare.TransportError{URL: "https://feed", Status: "503"}
	tr := New(testConfig(), stubCheckpoints{ts: time.Now(), ok: true}, &stubFeed{err: fetchErr}, &stubSender{})

	err := tr.Run(context.Background())
	var transportErr *mapshare.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestRunExtractionErrorIsFatal(t *testing.T) {
	// A qualifying placemark missing a required property aborts the run.
	doc := []byte(`<kml><Document><Folder><Placemark><ExtendedData>
		<Data name="Id"><value>1</value></Data>
	</ExtendedData></Placemark></Folder></Document></kml>`)

	sender := &stubSender{}
	tr := New(testConfig(), stubCheckpoints{ts: time.Now(), ok: true}, &stubFeed{doc: doc}, sender)

	err := tr.Run(context.Background())
	var extractErr *mapshare.ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Empty(t, sender.sent)
}

func TestRunDeliveryErrorIsFatal(t *testing.T) {
	deliveryErr := &notifier.DeliveryError{Err: errors.New("smtp refused")}
	feed := &stubFeed{doc: feedDoc("2024-03-01T10:00:00")}
	tr := New(testConfig(), stubCheckpoints{ts: time.Now(), ok: true}, feed, &stubSender{err: deliveryErr})

	err := tr.Run(context.Background())
	var got *notifier.DeliveryError
	require.ErrorAs(t, err, &got)
}

func TestRunSinceOverrideSkipsCheckpoint(t *testing.T) {
	override := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	feed := &stubFeed{doc: feedDoc("2024-03-01T10:00:00")}

	// The checkpoint stub would fail the run if it were consulted.
	tr := New(testConfig(), stubCheckpoints{ok: false}, feed, &stubSender{})
	tr.Since = override

	require.NoError(t, tr.Run(context.Background()))
	assert.True(t, feed.since.Equal(override))
}
