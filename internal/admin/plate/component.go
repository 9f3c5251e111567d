package plate

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"go.uber.org/zap"

	"gpark.dev/acs-admin/internal/admin/observability"
	h "gpark.dev/acs-admin/internal/admin/templates/helpers"
)

// Skeleton returns the empty widget markup for widgetID.
func Skeleton(widgetID string) string {
	var b strings.Builder
	_ = skeleton(widgetID).Render(context.Background(), &b)
	return b.String()
}

func skeleton(widgetID string) templ.Component {
	return h.Element("div", []h.Attr{h.A("id", ContainerID(widgetID)), h.A("class", BaseClass), h.A("data-plate-widget", widgetID)},
		segment(Part1ID(widgetID), "plate-part part1"),
		segment(Part2ID(widgetID), "plate-part part2"),
		segment(Part3ID(widgetID), "plate-part part3"),
		h.Element("span", []h.Attr{h.A("class", "plate-region-block")},
			segment(RegionID(widgetID), "plate-region"),
			h.Element("span", []h.Attr{h.A("class", "plate-flag")}, h.TextComponent("RUS")),
		),
	)
}

func segment(id, class string) templ.Component {
	return h.Element("span", []h.Attr{h.A("id", id), h.A("class", class)})
}

// Component renders a filled widget for a "type:part:part..." value. An empty
// value renders nothing. Fill failures are logged through the context logger
// and the skeleton is emitted unfilled.
func Component(widgetID, value string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, parts, err := ParseValue(value)
		if err != nil {
			return nil
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(Skeleton(widgetID)))
		if err != nil {
			return fmt.Errorf("plate: parse skeleton: %w", err)
		}

		widget := doc.Find("[data-plate-widget]").First()
		logger := observability.FromContext(ctx).With(zap.String("component", "plate"))
		NewRenderer(logger).Render(NewDOMFromSelection(widget), widgetID, t, parts)

		html, err := goquery.OuterHtml(widget)
		if err != nil {
			return fmt.Errorf("plate: serialise widget: %w", err)
		}
		_, err = io.WriteString(w, html)
		return err
	})
}
