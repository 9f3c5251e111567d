package visitors

import (
	"context"
	"sort"
	"sync"
	"time"
)

// ManualOpenWindow is how recent a refused event must be for an operator to
// override it.
const ManualOpenWindow = 3 * time.Second

// StaticService serves in-memory fixtures for local runs and tests.
type StaticService struct {
	mu      sync.Mutex
	cameras []Camera
	events  map[string][]Event
	now     func() time.Time
}

// StaticOption customises StaticService.
type StaticOption func(*StaticService)

// WithClock overrides the time source.
func WithClock(now func() time.Time) StaticOption {
	return func(s *StaticService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithFixtures replaces the built-in fixtures.
func WithFixtures(cameras []Camera, events []Event) StaticOption {
	return func(s *StaticService) {
		s.cameras = append([]Camera(nil), cameras...)
		s.events = map[string][]Event{}
		for _, e := range events {
			s.events[e.CameraID] = append(s.events[e.CameraID], e)
		}
	}
}

// NewStaticService returns a StaticService seeded with a gate, two cameras and
// a handful of events.
func NewStaticService(opts ...StaticOption) *StaticService {
	s := &StaticService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.cameras == nil {
		seed(s)
	}
	return s
}

func seed(s *StaticService) {
	now := s.now()
	north := &Gate{ID: "6f1c2b1e-4d3a-4c55-9a61-0c2f6e1d7a10", Name: "North barrier", IP: "10.0.0.21", Port: 80}

	s.cameras = []Camera{
		{ID: "cam-entry", Name: "Entry lane", IsEntrance: true, Gate: north},
		{ID: "cam-service", Name: "Service yard"},
	}
	s.events = map[string][]Event{
		"cam-entry": {
			{ID: "evt-1003", CameraID: "cam-entry", Timestamp: now.Add(-1 * time.Second), LicensePlate: "A123BC777", RefuseReason: "Visitor not found"},
			{ID: "evt-1002", CameraID: "cam-entry", Timestamp: now.Add(-4 * time.Minute), LicensePlate: "AB12377", AccessGranted: true},
			{ID: "evt-1001", CameraID: "cam-entry", Timestamp: now.Add(-35 * time.Minute), LicensePlate: "1234AB50", AccessGranted: true},
		},
		"cam-service": {
			{ID: "evt-2001", CameraID: "cam-service", Timestamp: now.Add(-2 * time.Hour), LicensePlate: "A1234199", AccessGranted: true},
		},
	}
}

// ListCameras implements Service.
func (s *StaticService) ListCameras(context.Context) ([]Camera, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]Camera(nil), s.cameras...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// RecentEvents implements Service.
func (s *StaticService) RecentEvents(_ context.Context, cameraID string, limit int) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]Event(nil), s.events[cameraID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RequestGate marks the camera's latest event as opened manually when it was
// refused within ManualOpenWindow.
func (s *StaticService) RequestGate(_ context.Context, gateID string) (GateOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var camera *Camera
	for i := range s.cameras {
		if s.cameras[i].Gate != nil && s.cameras[i].Gate.ID == gateID {
			camera = &s.cameras[i]
			break
		}
	}
	if camera == nil {
		return GateOutcome{}, ErrGateNotFound
	}

	events := s.events[camera.ID]
	if len(events) == 0 {
		return GateOutcome{}, ErrNoEvents
	}
	latest := 0
	for i := range events {
		if events[i].Timestamp.After(events[latest].Timestamp) {
			latest = i
		}
	}

	e := &events[latest]
	if e.AccessGranted || s.now().Sub(e.Timestamp) > ManualOpenWindow {
		return GateOutcome{}, ErrNoEligibleEvent
	}
	e.AccessGranted = true
	e.OpenedManually = true

	return GateOutcome{GateID: gateID, EventID: e.ID, Message: "Gate opened manually"}, nil
}
