package visitors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestStaticServiceListsCamerasByName(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()
	cameras, err := svc.ListCameras(context.Background())
	require.NoError(t, err)
	require.Len(t, cameras, 2)
	require.Equal(t, "Entry lane", cameras[0].Name)
	require.NotNil(t, cameras[0].Gate)
	require.Nil(t, cameras[1].Gate)
}

func TestStaticServiceRecentEventsNewestFirst(t *testing.T) {
	t.Parallel()

	svc := NewStaticService()
	events, err := svc.RecentEvents(context.Background(), "cam-entry", 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "evt-1003", events[0].ID)
	require.True(t, events[0].Timestamp.After(events[1].Timestamp))
}

func TestStaticServiceRequestGate(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	gate := &Gate{ID: "g1", Name: "Main"}
	cameras := []Camera{{ID: "c1", Name: "Entry", Gate: gate}, {ID: "c2", Name: "Exit", Gate: &Gate{ID: "g2"}}}

	t.Run("recent refusal is opened", func(t *testing.T) {
		svc := NewStaticService(WithClock(fixedClock(now)), WithFixtures(cameras, []Event{
			{ID: "e1", CameraID: "c1", Timestamp: now.Add(-time.Second)},
		}))
		outcome, err := svc.RequestGate(context.Background(), "g1")
		require.NoError(t, err)
		require.Equal(t, "e1", outcome.EventID)
		require.Equal(t, "Gate opened manually", outcome.Message)

		events, _ := svc.RecentEvents(context.Background(), "c1", 1)
		require.True(t, events[0].OpenedManually)
		require.True(t, events[0].AccessGranted)

		_, err = svc.RequestGate(context.Background(), "g1")
		require.ErrorIs(t, err, ErrNoEligibleEvent, "already granted")
	})

	t.Run("stale refusal is rejected", func(t *testing.T) {
		svc := NewStaticService(WithClock(fixedClock(now)), WithFixtures(cameras, []Event{
			{ID: "e1", CameraID: "c1", Timestamp: now.Add(-10 * time.Second)},
		}))
		_, err := svc.RequestGate(context.Background(), "g1")
		require.ErrorIs(t, err, ErrNoEligibleEvent)
	})

	t.Run("unknown gate", func(t *testing.T) {
		svc := NewStaticService(WithClock(fixedClock(now)), WithFixtures(cameras, nil))
		_, err := svc.RequestGate(context.Background(), "nope")
		require.ErrorIs(t, err, ErrGateNotFound)
	})

	t.Run("camera without events", func(t *testing.T) {
		svc := NewStaticService(WithClock(fixedClock(now)), WithFixtures(cameras, nil))
		_, err := svc.RequestGate(context.Background(), "g2")
		require.ErrorIs(t, err, ErrNoEvents)
	})
}
