package helpers

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementEscapesAttributesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := Element("button",
		[]Attr{A("class", Classes("button", "", "gate-button")), A("hx-headers", `{"X-CSRFToken":"t"}`), BoolAttr("disabled")},
		TextComponent("Open <Gate>"),
	)
	require.NoError(t, c.Render(context.Background(), &buf))
	require.Equal(t,
		`<button class="button gate-button" hx-headers="{&#34;X-CSRFToken&#34;:&#34;t&#34;}" disabled>Open &lt;Gate&gt;</button>`,
		buf.String(),
	)
}

func TestVoidAndFragment(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	c := Fragment(Void("meta", A("charset", "utf-8")), nil, TextComponent("x"))
	require.NoError(t, c.Render(context.Background(), &buf))
	require.Equal(t, `<meta charset="utf-8">x`, buf.String())
}
