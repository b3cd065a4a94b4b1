package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"church-api/internal/models"
	"church-api/internal/store"
)

type EventHandler struct {
	Store store.Store
}

func NewEventHandler(st store.Store) *EventHandler {
	return &EventHandler{Store: st}
}

type EventRequest struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"` // RFC 3339 or YYYY-MM-DD
	Category    string `json:"category" binding:"required"`
	Description string `json:"description"`
}

// parseEventTime accepts a full RFC 3339 instant or a bare date, which
// is read as midnight UTC.
func parseEventTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	date, err := parseEventTime(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC 3339 or YYYY-MM-DD"})
		return
	}

	event := models.Event{
		Title:       req.Title,
		Date:        date,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := h.Store.CreateEvent(c.Request.Context(), &event); err != nil {
		log.Println("failed to create event:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

// List is public. ?date= keeps events on or after that instant and
// ?category= keeps exact matches; both filters combine with AND.
func (h *EventHandler) List(c *gin.Context) {
	var filter store.EventFilter

	if raw := c.Query("date"); raw != "" {
		from, err := parseEventTime(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC 3339 or YYYY-MM-DD"})
			return
		}
		filter.From = &from
	}
	filter.Category = c.Query("category")

	events, err := h.Store.ListEvents(c.Request.Context(), filter)
	if err != nil {
		log.Println("failed to list events:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// Get is public; events carry no privacy concern, so a plain 404 is fine.
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.Store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		log.Println("failed to get event:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	date, err := parseEventTime(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC 3339 or YYYY-MM-DD"})
		return
	}

	event := models.Event{
		ID:          c.Param("id"),
		Title:       req.Title,
		Date:        date,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := h.Store.UpdateEvent(c.Request.Context(), &event); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		log.Println("failed to update event:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Store.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		log.Println("failed to delete event:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
