package plate

// Element is the slice of DOM behaviour the renderer needs.
type Element interface {
	Text() string
	SetText(string)
	// ResetClass replaces every class on the element with base.
	ResetClass(base string)
	AddClass(name string)
	HasClass(name string) bool
}

// Document locates elements by id.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// ContainerID returns the id of the widget's container element.
func ContainerID(widgetID string) string { return "license-plate-" + widgetID }

// Part1ID returns the id of the first segment.
func Part1ID(widgetID string) string { return "part1-" + widgetID }

// Part2ID returns the id of the second segment.
func Part2ID(widgetID string) string { return "part2-" + widgetID }

// Part3ID returns the id of the third segment.
func Part3ID(widgetID string) string { return "part3-" + widgetID }

// RegionID returns the id of the region segment.
func RegionID(widgetID string) string { return "region-" + widgetID }

// Widget is the resolved set of elements making up one plate widget.
type Widget struct {
	ID        string
	Container Element
	Part1     Element
	Part2     Element
	Part3     Element
	Region    Element
}

// Resolve looks up every element of a widget. It mutates nothing, so a failed
// lookup leaves the document untouched.
func Resolve(doc Document, widgetID string) (*Widget, error) {
	container, ok := doc.ElementByID(ContainerID(widgetID))
	if !ok {
		return nil, &LookupError{WidgetID: widgetID, ElementID: ContainerID(widgetID), Err: ErrContainerNotFound}
	}

	w := &Widget{ID: widgetID, Container: container}
	slots := []struct {
		id  string
		dst *Element
	}{
		{Part1ID(widgetID), &w.Part1},
		{Part2ID(widgetID), &w.Part2},
		{Part3ID(widgetID), &w.Part3},
		{RegionID(widgetID), &w.Region},
	}
	for _, s := range slots {
		el, ok := doc.ElementByID(s.id)
		if !ok {
			return nil, &LookupError{WidgetID: widgetID, ElementID: s.id, Err: ErrSlotNotFound}
		}
		*s.dst = el
	}
	return w, nil
}

// Fill writes the layout for t and parts into the widget. The type and part
// count are validated before any element is touched.
func (w *Widget) Fill(t Type, parts []string) error {
	layout, err := ComputeLayout(t, parts)
	if err != nil {
		return err
	}
	w.Apply(layout)
	return nil
}

// Apply writes a computed layout into the widget.
func (w *Widget) Apply(l Layout) {
	w.Container.ResetClass(BaseClass)
	w.Container.AddClass(string(l.Type))

	w.Part1.SetText(l.Slot1)
	w.Part2.SetText(l.Slot2)
	w.Part3.SetText(l.Slot3)
	w.Region.SetText(l.Region)

	if l.ThreeDigit {
		w.Container.AddClass(ThreeDigitClass)
	}
}
