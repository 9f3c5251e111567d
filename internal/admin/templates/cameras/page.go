package cameras

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"gpark.dev/acs-admin/internal/admin/plate"
	h "gpark.dev/acs-admin/internal/admin/templates/helpers"
	"gpark.dev/acs-admin/internal/admin/visitors"
)

// PageData is the view model for the cameras page.
type PageData struct {
	Title       string
	BasePath    string
	Environment string
	CSRFHeader  string
	CSRFToken   string
	Cameras     []CameraRow
	Error       string
	// Now anchors relative event times; zero omits them.
	Now time.Time
}

// CameraRow pairs a camera with its gate action and recent events.
type CameraRow struct {
	Camera  visitors.Camera
	GateURL string
	Events  []visitors.Event
}

// Index renders the full cameras page.
func Index(data PageData) templ.Component {
	title := data.Title
	if title == "" {
		title = "Cameras"
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		headers, err := hxHeaders(data.CSRFHeader, data.CSRFToken)
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, "<!DOCTYPE html>"); err != nil {
			return err
		}
		return h.Element("html", []h.Attr{h.A("lang", "en")},
			head(title),
			h.Element("body", nil,
				header(title, data.Environment),
				h.Element("main", nil,
					errorNote(data.Error),
					cameraTable(data, headers),
				),
			),
		).Render(ctx, w)
	})
}

func head(title string) templ.Component {
	return h.Element("head", nil,
		h.Void("meta", h.A("charset", "utf-8")),
		h.Element("title", nil, h.TextComponent(title+" | GPark Administration")),
		h.Void("link", h.A("rel", "stylesheet"), h.A("href", "/public/static/css/license_plate.css")),
		h.Element("script", []h.Attr{h.A("src", "https://unpkg.com/htmx.org@1.9.12"), h.BoolAttr("defer")}),
	)
}

func header(title, environment string) templ.Component {
	return h.Element("header", []h.Attr{h.A("data-environment", environment)},
		h.Element("h1", nil, h.TextComponent(title)),
		h.Element("span", []h.Attr{h.A("class", "environment-badge"), h.BoolAttr("data-environment-badge")},
			h.TextComponent(h.EnvironmentBadge(environment)),
		),
	)
}

func errorNote(message string) templ.Component {
	if message == "" {
		return nil
	}
	return h.Element("div", []h.Attr{h.A("class", "errornote"), h.A("role", "alert")}, h.TextComponent(message))
}

func cameraTable(data PageData, headers string) templ.Component {
	rows := make([]templ.Component, 0, len(data.Cameras))
	for _, row := range data.Cameras {
		rows = append(rows, cameraRow(row, headers, data.Now))
	}
	return h.Element("table", []h.Attr{h.A("id", "camera-list")},
		h.Element("thead", nil,
			h.Element("tr", nil,
				h.Element("th", nil, h.TextComponent("Camera")),
				h.Element("th", nil, h.TextComponent("Gate")),
				h.Element("th", nil, h.TextComponent("Recent events")),
			),
		),
		h.Element("tbody", nil, rows...),
	)
}

func cameraRow(row CameraRow, headers string, now time.Time) templ.Component {
	cam := row.Camera
	events := make([]templ.Component, 0, len(row.Events))
	for _, e := range row.Events {
		events = append(events, eventItem(e, now))
	}
	return h.Element("tr", []h.Attr{h.A("data-camera-id", cam.ID)},
		h.Element("td", nil, h.TextComponent(cam.Name)),
		h.Element("td", nil,
			gateButton(row, headers),
			h.Element("div", []h.Attr{h.A("id", "gate-status-"+cam.ID), h.A("class", "gate-status"), h.A("aria-live", "polite")}),
		),
		h.Element("td", nil, h.Element("ul", []h.Attr{h.A("class", "events")}, events...)),
	)
}

func gateButton(row CameraRow, headers string) templ.Component {
	cam := row.Camera
	if cam.Gate == nil {
		return h.Element("button", []h.Attr{h.A("type", "button"), h.A("class", "button gate-button"), h.BoolAttr("disabled")},
			h.TextComponent("Open Gate - "),
		)
	}
	return h.Element("button", []h.Attr{
		h.A("type", "button"),
		h.A("class", "button gate-button"),
		h.A("data-gate-id", cam.Gate.ID),
		h.A("hx-post", row.GateURL),
		h.A("hx-headers", headers),
		h.A("hx-target", "#gate-status-"+cam.ID),
		h.A("hx-swap", "innerHTML"),
	}, h.TextComponent("Open Gate - "+cam.Gate.Name))
}

func eventItem(e visitors.Event, now time.Time) templ.Component {
	state := "refused"
	if e.AccessGranted {
		state = "granted"
	}
	relative := ""
	if !now.IsZero() && !e.Timestamp.IsZero() {
		relative = h.Relative(e.Timestamp, now)
	}
	var reason templ.Component
	if e.RefuseReason != "" {
		reason = h.Fragment(h.TextComponent(" "), h.Element("span", []h.Attr{h.A("class", "refuse-reason")}, h.TextComponent(e.RefuseReason)))
	}
	return h.Element("li", []h.Attr{h.A("class", h.Classes("event", state)), h.A("data-event-id", e.ID)},
		h.Element("time", []h.Attr{h.A("datetime", e.Timestamp.UTC().Format(time.RFC3339)), h.A("title", relative)},
			h.TextComponent(h.Timestamp(e.Timestamp)),
		),
		h.TextComponent(" "),
		eventPlate(e),
		reason,
	)
}

func eventPlate(e visitors.Event) templ.Component {
	if value := plate.ValueOf(e.LicensePlate); value != "" {
		return plate.Component(e.ID, value)
	}
	return h.Element("span", []h.Attr{h.A("class", "plate-raw")}, h.TextComponent(e.LicensePlate))
}

// hxHeaders encodes the anti-forgery header for htmx requests.
func hxHeaders(name, token string) (string, error) {
	if name == "" {
		name = "X-CSRFToken"
	}
	raw, err := json.Marshal(map[string]string{name: token})
	if err != nil {
		return "", fmt.Errorf("cameras: encode hx-headers: %w", err)
	}
	return string(raw), nil
}
