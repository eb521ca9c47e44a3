package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/finman/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// StatusHandler serves the service health endpoint
type StatusHandler struct {
	BaseHandler
	db        *persistence.Database
	version   string
	startTime time.Time
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *persistence.Database, version string) *StatusHandler {
	return &StatusHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// StatusResponse reports app and dependency health
type StatusResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Uptime    string `json:"uptime"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Get handles GET /api/status. The endpoint answers 200 with database
// state "down" rather than failing, so probes can distinguish a degraded
// service from an unreachable one.
func (h *StatusHandler) Get(c *gin.Context) {
	dbStatus := "up"
	status := "ok"
	if h.db == nil || h.db.Ping() != nil {
		dbStatus = "down"
		status = "degraded"
	}

	c.JSON(http.StatusOK, StatusResponse{
		Status:    status,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
