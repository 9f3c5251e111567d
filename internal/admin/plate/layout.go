package plate

import (
	"fmt"
	"unicode/utf8"
)

const (
	// BaseClass is the container's class before any type modifiers.
	BaseClass = "license-plate"
	// ThreeDigitClass marks a container whose region code has three characters.
	ThreeDigitClass = "three-digit"

	emptySlot = -1
)

// slotMap holds, per segment, the index into parts or emptySlot.
type slotMap struct {
	slot1, slot2, slot3, region int
}

func (m slotMap) partCount() int {
	n := 0
	for _, idx := range []int{m.slot1, m.slot2, m.slot3, m.region} {
		if idx+1 > n {
			n = idx + 1
		}
	}
	return n
}

var layouts = map[Type]slotMap{
	TypeCar:        {slot1: 0, slot2: 1, slot3: 2, region: 3},
	TypeDiplomatic: {slot1: 0, slot2: 1, slot3: 2, region: 3},
	TypePublic:     {slot1: 0, slot2: 1, slot3: emptySlot, region: 2},
	TypeMilitary:   {slot1: 0, slot2: 1, slot3: emptySlot, region: 2},
	TypePolice:     {slot1: 0, slot2: 1, slot3: emptySlot, region: 2},
}

// Layout is the text assigned to each segment of a widget.
type Layout struct {
	Type       Type   `json:"type"`
	Slot1      string `json:"slot1"`
	Slot2      string `json:"slot2"`
	Slot3      string `json:"slot3"`
	Region     string `json:"region"`
	ThreeDigit bool   `json:"threeDigit"`
}

// ComputeLayout maps parts onto segments for the given type. Parts beyond the
// type's part count are ignored.
func ComputeLayout(t Type, parts []string) (Layout, error) {
	m, ok := layouts[t]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	if want := m.partCount(); len(parts) < want {
		return Layout{}, fmt.Errorf("%w: %s needs %d, got %d", ErrTooFewParts, t, want, len(parts))
	}

	pick := func(idx int) string {
		if idx == emptySlot {
			return ""
		}
		return parts[idx]
	}

	l := Layout{
		Type:   t,
		Slot1:  pick(m.slot1),
		Slot2:  pick(m.slot2),
		Slot3:  pick(m.slot3),
		Region: pick(m.region),
	}
	l.ThreeDigit = utf8.RuneCountInString(l.Region) == 3
	return l, nil
}

// Classes returns the container classes the layout produces.
func (l Layout) Classes() []string {
	classes := []string{BaseClass, string(l.Type)}
	if l.ThreeDigit {
		classes = append(classes, ThreeDigitClass)
	}
	return classes
}
