package plate

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"gpark.dev/acs-admin/internal/admin/observability"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestDOMRenderFillsSkeleton(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "<html><body>"+Skeleton("w3")+Skeleton("other")+"</body></html>")
	NewRenderer(nil).Render(NewDOM(doc), "w3", TypeMilitary, []string{"7", "XY", "456"})

	container := doc.Find("#license-plate-w3")
	require.True(t, container.HasClass(BaseClass))
	require.True(t, container.HasClass("military"))
	require.True(t, container.HasClass(ThreeDigitClass))
	require.Equal(t, "7", doc.Find("#part1-w3").Text())
	require.Equal(t, "XY", doc.Find("#part2-w3").Text())
	require.Equal(t, "", doc.Find("#part3-w3").Text())
	require.Equal(t, "456", doc.Find("#region-w3").Text())

	require.Equal(t, "", doc.Find("#region-other").Text(), "other widgets stay untouched")
	require.False(t, doc.Find("#license-plate-other").HasClass("military"))
}

func TestDOMElementByIDMatchesLiterally(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, Skeleton(`plate[0].value`))
	dom := NewDOM(doc)

	_, ok := dom.ElementByID(ContainerID(`plate[0].value`))
	require.True(t, ok)
	_, ok = dom.ElementByID("license-plate-plate")
	require.False(t, ok)
}

func TestDOMFromSelectionScopesLookups(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, "<html><body>"+Skeleton("inside")+Skeleton("outside")+"</body></html>")
	dom := NewDOMFromSelection(doc.Find("#license-plate-inside"))

	_, ok := dom.ElementByID(ContainerID("inside"))
	require.True(t, ok, "the selection root itself is matched")
	_, ok = dom.ElementByID(ContainerID("outside"))
	require.False(t, ok)

	w, err := Resolve(dom, "inside")
	require.NoError(t, err)
	require.NoError(t, w.Fill(TypeCar, []string{"A", "123", "BC", "77"}))
	require.Equal(t, "123", w.Part2.Text())
	require.Equal(t, "77", w.Region.Text())
	require.Equal(t, "", doc.Find("#part2-outside").Text())
}

func TestDOMResetClassDropsModifiers(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `<div id="license-plate-x" class="license-plate car three-digit"></div>`)
	el, ok := NewDOM(doc).ElementByID("license-plate-x")
	require.True(t, ok)

	el.ResetClass(BaseClass)
	require.Equal(t, BaseClass, doc.Find("#license-plate-x").AttrOr("class", ""))
}

func TestComponentRendersFilledWidget(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Component("evt-1", "car:A:123:BC:777").Render(context.Background(), &buf))

	doc := parseDoc(t, buf.String())
	container := doc.Find("#license-plate-evt-1")
	require.Equal(t, 1, container.Length())
	require.True(t, container.HasClass("car"))
	require.True(t, container.HasClass(ThreeDigitClass))
	require.Equal(t, "A", doc.Find("#part1-evt-1").Text())
	require.Equal(t, "BC", doc.Find("#part3-evt-1").Text())
	require.Equal(t, "777", doc.Find("#region-evt-1").Text())
}

func TestComponentEmptyValueRendersNothing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Component("evt-1", "").Render(context.Background(), &buf))
	require.Empty(t, buf.String())
}

func TestComponentUnknownTypeLogsAndRendersSkeleton(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	ctx := observability.WithLogger(context.Background(), zap.New(core))

	var buf bytes.Buffer
	require.NoError(t, Component("evt-2", "truck:A:1:2").Render(ctx, &buf))

	doc := parseDoc(t, buf.String())
	require.Equal(t, BaseClass, doc.Find("#license-plate-evt-2").AttrOr("class", ""))
	require.Equal(t, 1, logs.FilterMessage("license plate not rendered").Len())
}
