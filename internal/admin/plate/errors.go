package plate

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerNotFound indicates the license-plate-<id> element is missing.
	ErrContainerNotFound = errors.New("plate: container element not found")
	// ErrSlotNotFound indicates one of the four segment elements is missing.
	ErrSlotNotFound = errors.New("plate: segment element not found")
	// ErrUnknownType is returned for plate types outside the supported set.
	ErrUnknownType = errors.New("plate: unknown plate type")
	// ErrTooFewParts is returned when parts does not cover every populated slot.
	ErrTooFewParts = errors.New("plate: too few parts for plate type")
	// ErrUnrecognizedPlate is returned when a raw plate matches no known pattern.
	ErrUnrecognizedPlate = errors.New("plate: unrecognized plate format")
	// ErrEmptyValue is returned when a widget value carries no type.
	ErrEmptyValue = errors.New("plate: empty widget value")
)

// LookupError records which element of which widget could not be resolved.
type LookupError struct {
	WidgetID  string
	ElementID string
	Err       error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("%v: %s (widget %s)", e.Err, e.ElementID, e.WidgetID)
}

// Unwrap exposes the sentinel error.
func (e *LookupError) Unwrap() error { return e.Err }
