package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	custommw "gpark.dev/acs-admin/internal/admin/httpserver/middleware"
	"gpark.dev/acs-admin/internal/admin/observability"
	"gpark.dev/acs-admin/internal/admin/templates/cameras"
	"gpark.dev/acs-admin/internal/admin/templates/helpers"
	"gpark.dev/acs-admin/internal/admin/visitors"
)

const recentEventLimit = 10

// Dependencies collects external services required by the UI handlers.
type Dependencies struct {
	Visitors       visitors.Service
	CSRFHeaderName string
	Now            func() time.Time
}

// Handlers exposes HTTP handlers for admin UI pages and fragments.
type Handlers struct {
	visitors   visitors.Service
	csrfHeader string
	now        func() time.Time
}

// NewHandlers wires the UI handler set.
func NewHandlers(deps Dependencies) *Handlers {
	service := deps.Visitors
	if service == nil {
		service = visitors.NewStaticService()
	}
	header := deps.CSRFHeaderName
	if header == "" {
		header = custommw.DefaultCSRFHeaderName
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Handlers{
		visitors:   service,
		csrfHeader: header,
		now:        now,
	}
}

// CamerasPage renders the camera list with gate buttons and recent events.
func (h *Handlers) CamerasPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	base := custommw.BasePathFromContext(ctx)

	data := cameras.PageData{
		Title:       "Cameras",
		BasePath:    base,
		Environment: custommw.EnvironmentFromContext(ctx),
		CSRFHeader:  h.csrfHeader,
		CSRFToken:   custommw.CSRFTokenFromContext(ctx),
		Now:         h.now(),
	}

	list, err := h.visitors.ListCameras(ctx)
	if err != nil {
		logger.Error("list cameras failed", zap.Error(err))
		data.Error = "Failed to load cameras. Please try again later."
		templ.Handler(cameras.Index(data), templ.WithStatus(http.StatusBadGateway)).ServeHTTP(w, r)
		return
	}

	for _, cam := range list {
		row := cameras.CameraRow{Camera: cam}
		if cam.Gate != nil {
			row.GateURL = gateRequestPath(base, cam.Gate.ID)
		}
		events, err := h.visitors.RecentEvents(ctx, cam.ID, recentEventLimit)
		if err != nil {
			logger.Warn("recent events unavailable", zap.String("camera_id", cam.ID), zap.Error(err))
		}
		row.Events = events
		data.Cameras = append(data.Cameras, row)
	}

	templ.Handler(cameras.Index(data)).ServeHTTP(w, r)
}

type gateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// RequestGate handles an operator's manual gate opening request.
func (h *Handlers) RequestGate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gateID := chi.URLParam(r, "gateID")
	logger := observability.FromContext(ctx).With(zap.String("gate_id", gateID))
	logger.Info("gate request received")

	status := http.StatusOK
	resp := gateResponse{Status: "success"}

	outcome, err := h.visitors.RequestGate(ctx, gateID)
	switch {
	case err == nil:
		resp.Message = outcome.Message
		logger.Info("gate opened manually", zap.String("event_id", outcome.EventID))
	case errors.Is(err, visitors.ErrGateNotFound):
		status = http.StatusNotFound
		resp = gateResponse{Status: "error", Message: fmt.Sprintf("No camera found for gate %s", gateID)}
		logger.Error("no camera found for gate")
	case errors.Is(err, visitors.ErrNoEligibleEvent):
		status = http.StatusBadRequest
		resp = gateResponse{Status: "error", Message: "No eligible recent event found for manual opening"}
		logger.Info("no eligible event")
	case errors.Is(err, visitors.ErrNoEvents):
		status = http.StatusBadRequest
		resp = gateResponse{Status: "error", Message: "No events found for this camera"}
		logger.Info("no events for camera")
	default:
		status = http.StatusInternalServerError
		resp = gateResponse{Status: "error", Message: "An error occurred: " + err.Error()}
		logger.Error("gate request failed", zap.Error(err))
	}

	if custommw.IsHTMXRequest(ctx) {
		templ.Handler(helpers.TextComponent(resp.Message), templ.WithStatus(status)).ServeHTTP(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Warn("encode gate response failed", zap.Error(err))
	}
}

func gateRequestPath(base, gateID string) string {
	return joinBasePath(base, "/visitors/camera/request_gate/"+url.PathEscape(gateID)+"/")
}
