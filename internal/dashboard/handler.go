package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/salary-crossfilter/internal/core/errors"
	"github.com/gin-gonic/gin"
)

// ErrSessionNotFound marks a request for a session that expired or never existed.
var ErrSessionNotFound = errors.New("session not found")

// Sessions owns per-client dashboards.
type Sessions interface {
	// Create builds a new dashboard and returns its session id.
	Create(ctx context.Context) (string, error)

	// Delete disposes a session. Returns ErrSessionNotFound for unknown ids.
	Delete(id string) error

	// With runs fn with exclusive access to the session's dashboard.
	With(id string, fn func(*Dashboard) error) error
}

// DefaultMaxBodyBytes bounds filter request bodies when no limit is configured.
const DefaultMaxBodyBytes = 16 << 10

// Handler serves the dashboard HTTP API.
type Handler struct {
	sessions     Sessions
	maxBodyBytes int64
}

// NewHandler creates a handler backed by sessions. maxBodyBytes <= 0 selects
// DefaultMaxBodyBytes.
func NewHandler(sessions Sessions, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{sessions: sessions, maxBodyBytes: maxBodyBytes}
}

// RegisterRoutes registers all dashboard API routes on the given router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/sessions", h.HandleCreateSession)
	r.DELETE("/v1/sessions/:session_id", h.HandleDeleteSession)

	r.GET("/v1/dashboard/:session_id", h.HandleSnapshot)
	r.GET("/v1/dashboard/:session_id/panels/:panel", h.HandlePanel)
	r.PUT("/v1/dashboard/:session_id/panels/:panel/filter", h.HandleSetPanelFilter)
	r.DELETE("/v1/dashboard/:session_id/panels/:panel/filter", h.HandleClearPanelFilter)
	r.PUT("/v1/dashboard/:session_id/filters/:field", h.HandleSetFilter)
	r.DELETE("/v1/dashboard/:session_id/filters/:field", h.HandleClearFilter)
	r.DELETE("/v1/dashboard/:session_id/filters", h.HandleClearAll)
}

// HandleCreateSession handles POST /v1/sessions
func (h *Handler) HandleCreateSession(c *gin.Context) {
	id, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to create session")
		return
	}

	var snap Snapshot
	err = h.sessions.With(id, func(d *Dashboard) error {
		snap = d.Snapshot()
		return nil
	})
	if err != nil {
		writeError(c, err, "Failed to render new session")
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{SessionID: id, Snapshot: snap})
}

// HandleDeleteSession handles DELETE /v1/sessions/:session_id
func (h *Handler) HandleDeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Param("session_id")); err != nil {
		writeError(c, err, "Failed to delete session")
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleSnapshot handles GET /v1/dashboard/:session_id
func (h *Handler) HandleSnapshot(c *gin.Context) {
	h.respondSnapshot(c, func(*Dashboard) error { return nil })
}

// HandlePanel handles GET /v1/dashboard/:session_id/panels/:panel
func (h *Handler) HandlePanel(c *gin.Context) {
	var pv PanelView
	err := h.sessions.With(c.Param("session_id"), func(d *Dashboard) error {
		var err error
		pv, err = d.Panel(c.Param("panel"))
		return err
	})
	if err != nil {
		writeError(c, err, "Failed to render panel")
		return
	}
	c.JSON(http.StatusOK, pv)
}

// HandleSetFilter handles PUT /v1/dashboard/:session_id/filters/:field
// Body: {"values": ["A"]} or {"range": [lo, hi]}
func (h *Handler) HandleSetFilter(c *gin.Context) {
	req, ok := h.readFilter(c)
	if !ok {
		return
	}

	field := c.Param("field")
	h.respondSnapshot(c, func(d *Dashboard) error {
		if req.Range != nil {
			return d.SelectRange(field, req.Range[0], req.Range[1])
		}
		return d.Select(field, (*req.Values)...)
	})
}

// HandleClearFilter handles DELETE /v1/dashboard/:session_id/filters/:field
func (h *Handler) HandleClearFilter(c *gin.Context) {
	field := c.Param("field")
	h.respondSnapshot(c, func(d *Dashboard) error { return d.Clear(field) })
}

// HandleSetPanelFilter handles PUT /v1/dashboard/:session_id/panels/:panel/filter
// Body: {"values": ["Female"]} or {"range": [lo, hi]}
func (h *Handler) HandleSetPanelFilter(c *gin.Context) {
	req, ok := h.readFilter(c)
	if !ok {
		return
	}

	name := c.Param("panel")
	h.respondSnapshot(c, func(d *Dashboard) error {
		if req.Range != nil {
			return d.SelectPanelRange(name, req.Range[0], req.Range[1])
		}
		return d.SelectPanel(name, (*req.Values)...)
	})
}

// HandleClearPanelFilter handles DELETE /v1/dashboard/:session_id/panels/:panel/filter
func (h *Handler) HandleClearPanelFilter(c *gin.Context) {
	name := c.Param("panel")
	h.respondSnapshot(c, func(d *Dashboard) error { return d.ClearPanel(name) })
}

// readFilter decodes a size-limited filter body. On failure it writes the
// error response and returns false.
func (h *Handler) readFilter(c *gin.Context) (FilterRequest, bool) {
	var req FilterRequest

	// +1 to detect oversized requests
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxBodyBytes+1))
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to read request body",
		})
		return req, false
	}
	if int64(len(body)) > h.maxBodyBytes {
		c.JSON(http.StatusRequestEntityTooLarge, httperr.ErrorResponse{
			ErrorType: httperr.HttpPayloadTooLargeError,
			Message:   "Filter body too large",
			Details:   map[string]int64{"max_bytes": h.maxBodyBytes},
		})
		return req, false
	}

	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid filter body",
			Details:   err.Error(),
		})
		return req, false
	}

	if (req.Values == nil) == (req.Range == nil) || (req.Range != nil && len(req.Range) != 2) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidFilterError,
			Message:   "Filter body needs exactly one of values or a two-element range",
		})
		return req, false
	}
	return req, true
}

// HandleClearAll handles DELETE /v1/dashboard/:session_id/filters
func (h *Handler) HandleClearAll(c *gin.Context) {
	h.respondSnapshot(c, func(d *Dashboard) error {
		d.ClearAll()
		return nil
	})
}

// respondSnapshot applies update and replies with the resulting snapshot.
func (h *Handler) respondSnapshot(c *gin.Context, update func(*Dashboard) error) {
	var snap Snapshot
	err := h.sessions.With(c.Param("session_id"), func(d *Dashboard) error {
		if err := update(d); err != nil {
			return err
		}
		snap = d.Snapshot()
		return nil
	})
	if err != nil {
		writeError(c, err, "Failed to update dashboard")
		return
	}
	c.JSON(http.StatusOK, snap)
}

func writeError(c *gin.Context, err error, message string) {
	status, errorType := http.StatusInternalServerError, httperr.HttpInternalError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		status, errorType, message = http.StatusNotFound, httperr.HttpSessionNotFoundError, "Session not found"
	case errors.Is(err, ErrUnknownPanel):
		status, errorType, message = http.StatusNotFound, httperr.HttpUnknownPanelError, "Unknown panel"
	case errors.Is(err, ErrUnknownDimension):
		status, errorType, message = http.StatusNotFound, httperr.HttpUnknownDimensionError, "Unknown dimension"
	case errors.Is(err, ErrInvalidFilter):
		status, errorType, message = http.StatusBadRequest, httperr.HttpInvalidFilterError, "Invalid filter"
	}

	c.JSON(status, httperr.ErrorResponse{
		ErrorType: errorType,
		Message:   message,
		Details:   err.Error(),
	})
}
