package visitors

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrGateNotFound indicates no camera is bound to the requested gate.
	ErrGateNotFound = errors.New("visitors: no camera found for gate")
	// ErrNoEligibleEvent indicates there is no recent refused event to override.
	ErrNoEligibleEvent = errors.New("visitors: no eligible recent event found for manual opening")
	// ErrNoEvents indicates the gate's camera has not recorded any event.
	ErrNoEvents = errors.New("visitors: no events found for this camera")
)

// Service exposes the camera, gate and event data the admin pages need, and
// forwards operator gate requests.
type Service interface {
	// ListCameras returns cameras ordered by name.
	ListCameras(ctx context.Context) ([]Camera, error)
	// RecentEvents returns the newest events for a camera, newest first.
	RecentEvents(ctx context.Context, cameraID string, limit int) ([]Event, error)
	// RequestGate asks for the gate to be opened on behalf of an operator.
	RequestGate(ctx context.Context, gateID string) (GateOutcome, error)
}

// Gate is a physical barrier controlled through a camera relay.
type Gate struct {
	ID   string
	Name string
	IP   string
	Port int
}

// Camera is an LPR camera, optionally bound to a gate.
type Camera struct {
	ID         string
	Name       string
	IsEntrance bool
	Gate       *Gate
}

// Event is a plate recognition at a camera.
type Event struct {
	ID             string
	CameraID       string
	Timestamp      time.Time
	LicensePlate   string
	AccessGranted  bool
	OpenedManually bool
	RefuseReason   string
}

// GateOutcome reports what happened to a gate request.
type GateOutcome struct {
	GateID  string
	EventID string
	Message string
}
