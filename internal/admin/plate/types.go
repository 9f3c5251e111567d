// Package plate renders license-plate widgets: it maps a plate type and its
// text parts onto the four visual segments of a widget and parses raw plate
// strings into that representation.
package plate

import (
	"fmt"
	"strings"
)

// Type selects which widget segments are populated.
type Type string

const (
	TypeCar        Type = "car"
	TypePublic     Type = "public"
	TypeMilitary   Type = "military"
	TypeDiplomatic Type = "diplomatic"
	TypePolice     Type = "police"
)

// Types lists every supported plate type in parse-priority order.
var Types = []Type{TypeCar, TypePublic, TypeMilitary, TypeDiplomatic, TypePolice}

// ParseType validates a plate type tag.
func ParseType(value string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(value)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %v)", ErrUnknownType, value, Types)
	}
	return t, nil
}

// Valid reports whether t is one of the supported types.
func (t Type) Valid() bool {
	_, ok := layouts[t]
	return ok
}

// PartCount returns how many parts a plate of this type carries, or 0 for an
// unknown type.
func (t Type) PartCount() int {
	m, ok := layouts[t]
	if !ok {
		return 0
	}
	return m.partCount()
}

func (t Type) String() string { return string(t) }
