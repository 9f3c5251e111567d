package helpers

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Attr is a single HTML attribute. Bool attributes render without a value.
type Attr struct {
	Name  string
	Value string
	Bool  bool
}

// A returns a valued attribute.
func A(name, value string) Attr { return Attr{Name: name, Value: value} }

// BoolAttr returns a valueless attribute such as disabled.
func BoolAttr(name string) Attr { return Attr{Name: name, Bool: true} }

// Element renders <tag attrs>children</tag>. Attribute values are escaped;
// attribute order is preserved.
func Element(tag string, attrs []Attr, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := openTag(w, tag, attrs); err != nil {
			return err
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</"+tag+">")
		return err
	})
}

// Void renders an element without a closing tag (meta, link).
func Void(tag string, attrs ...Attr) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return openTag(w, tag, attrs)
	})
}

// Fragment renders children in order.
func Fragment(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Classes joins non-empty class names.
func Classes(names ...string) string {
	out := names[:0:0]
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

func openTag(w io.Writer, tag string, attrs []Attr) error {
	var b strings.Builder
	b.WriteString("<" + tag)
	for _, a := range attrs {
		b.WriteString(" " + a.Name)
		if !a.Bool {
			b.WriteString(`="` + templ.EscapeString(a.Value) + `"`)
		}
	}
	b.WriteString(">")
	_, err := io.WriteString(w, b.String())
	return err
}
