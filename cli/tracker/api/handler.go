package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/catalog"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/domain"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/session"
	"github.com/moksh5042/Real-Time-Bus-Tracker/cli/tracker/types"
)

type StatusResponse struct {
	State   string `json:"state"`
	BusID   string `json:"bus_id"`
	RouteID string `json:"route_id"`
}

type SessionResponse struct {
	Stats   session.Stats    `json:"stats"`
	LastFix *LastFixResponse `json:"last_fix"`
}

type LastFixResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed"`
	Accuracy  float64 `json:"accuracy"`
	Timestamp int64   `json:"timestamp"`
}

type Handler struct {
	Session *domain.TrackSession
	Catalog *catalog.Catalog
}

func NewHandler(session *domain.TrackSession, catalog *catalog.Catalog) *Handler {
	return &Handler{Session: session, Catalog: catalog}
}

func (h *Handler) GetStatus(c *gin.Context) {
	identity := h.Session.Identity()
	c.JSON(http.StatusOK, StatusResponse{
		State:   h.Session.State(),
		BusID:   identity.BusID,
		RouteID: identity.RouteID,
	})
}

func (h *Handler) GetSession(c *gin.Context) {
	response := SessionResponse{Stats: h.Session.Stats()}
	if last := h.Session.LastFix(); last != nil {
		response.LastFix = &LastFixResponse{
			Latitude:  last.Latitude,
			Longitude: last.Longitude,
			Speed:     last.Speed,
			Accuracy:  last.Accuracy,
			Timestamp: last.Timestamp,
		}
	}
	c.JSON(http.StatusOK, response)
}

func (h *Handler) GetActivity(c *gin.Context) {
	entries := h.Session.Activity.Entries()
	if entries == nil {
		entries = []types.ActivityEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) GetBuses(c *gin.Context) {
	if h.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "каталог не настроен"})
		return
	}
	c.JSON(http.StatusOK, h.Catalog.Buses())
}

func (h *Handler) GetRoutes(c *gin.Context) {
	if h.Catalog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "каталог не настроен"})
		return
	}
	c.JSON(http.StatusOK, h.Catalog.Routes())
}

func (h *Handler) StartTracking(c *gin.Context) {
	if err := h.Session.Start(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": h.Session.State()})
}

func (h *Handler) StopTracking(c *gin.Context) {
	h.Session.Stop()
	c.JSON(http.StatusOK, gin.H{"state": h.Session.State()})
}

func (h *Handler) SelectBus(c *gin.Context) {
	if err := h.Session.SelectBus(c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bus_id": c.Param("id")})
}

func (h *Handler) SelectRoute(c *gin.Context) {
	if err := h.Session.SelectRoute(c.Param("id")); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route_id": c.Param("id")})
}

func (h *Handler) ClearRoute(c *gin.Context) {
	if err := h.Session.SelectRoute(""); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"route_id": nil})
}
