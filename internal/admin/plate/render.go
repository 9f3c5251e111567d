package plate

import (
	"errors"

	"go.uber.org/zap"
)

// Renderer fills plate widgets and reports failures through its logger only.
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer constructs a Renderer. A nil logger discards diagnostics.
func NewRenderer(logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{logger: logger}
}

// Render resolves the widget in doc and fills it. Missing elements, unknown
// types and short part lists are logged and leave the document unchanged.
func (r *Renderer) Render(doc Document, widgetID string, t Type, parts []string) {
	w, err := Resolve(doc, widgetID)
	if err != nil {
		var lookupErr *LookupError
		element := ""
		if errors.As(err, &lookupErr) {
			element = lookupErr.ElementID
		}
		msg := "license plate element not found"
		if errors.Is(err, ErrSlotNotFound) {
			msg = "license plate segment not found"
		}
		r.logger.Error(msg,
			zap.String("widget", widgetID),
			zap.String("element", element),
		)
		return
	}

	if err := w.Fill(t, parts); err != nil {
		r.logger.Error("license plate not rendered",
			zap.String("widget", widgetID),
			zap.String("plate_type", string(t)),
			zap.Int("parts", len(parts)),
			zap.Error(err),
		)
	}
}
