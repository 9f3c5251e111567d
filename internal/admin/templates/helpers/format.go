package helpers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// TimestampLayout is the admin's day-first timestamp format.
const TimestampLayout = "02.01.2006 15:04"

// Timestamp formats ts in local time using TimestampLayout; zero times render as "N/A".
func Timestamp(ts time.Time) string {
	if ts.IsZero() {
		return "N/A"
	}
	return ts.In(time.Local).Format(TimestampLayout)
}

// Relative returns a coarse "time ago" string relative to now.
func Relative(ts, now time.Time) string {
	diff := now.Sub(ts)
	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	}
	if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	return ts.Format("2006-01-02")
}

// TextComponent returns a templ component that renders escaped text.
func TextComponent(value string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(value))
		return err
	})
}

// EnvironmentBadge returns the short label shown next to the page title.
func EnvironmentBadge(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "development", "dev", "local":
		return "DEV"
	case "staging", "stg":
		return "STG"
	case "production", "prod":
		return "PROD"
	default:
		return strings.ToUpper(env)
	}
}
