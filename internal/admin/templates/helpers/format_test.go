package helpers

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestamp(t *testing.T) {
	t.Parallel()

	require.Equal(t, "N/A", Timestamp(time.Time{}))

	ts := time.Date(2026, 3, 1, 9, 5, 0, 0, time.Local)
	require.Equal(t, "01.03.2026 09:05", Timestamp(ts))
}

func TestRelative(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ts   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-72 * time.Hour), "2026-02-26"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Relative(tc.ts, now))
	}
}

func TestTextComponentEscapes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, TextComponent("<b>gate</b>").Render(context.Background(), &buf))
	require.Equal(t, "&lt;b&gt;gate&lt;/b&gt;", buf.String())
}

func TestEnvironmentBadge(t *testing.T) {
	t.Parallel()

	require.Equal(t, "DEV", EnvironmentBadge(""))
	require.Equal(t, "STG", EnvironmentBadge("Staging"))
	require.Equal(t, "PROD", EnvironmentBadge("production"))
	require.Equal(t, "QA", EnvironmentBadge("qa"))
}
