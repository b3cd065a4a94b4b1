package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"church-api/internal/middleware"
	"church-api/internal/models"
	"church-api/internal/store"
	"church-api/internal/ws"
)

type CheckinHandler struct {
	Store store.Store
	Hub   *ws.Hub
}

func NewCheckinHandler(st store.Store, hub *ws.Hub) *CheckinHandler {
	return &CheckinHandler{Store: st, Hub: hub}
}

type CheckinRequest struct {
	ChildID string `json:"child_id" binding:"required"`
	EventID string `json:"event_id" binding:"required"`
}

// Create records a child's attendance at an event. The child must
// belong to the caller (or the caller is admin); a child that is
// missing or foreign yields the same 404. The event is validated by
// the store before any row is written. Repeat check-ins are allowed.
func (h *CheckinHandler) Create(c *gin.Context) {
	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	child, err := h.Store.GetChild(c.Request.Context(), req.ChildID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Println("failed to get child:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return
	}
	if !middleware.CanAccess(middleware.Principal(c), child.UserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return
	}

	checkin := models.Checkin{ChildID: req.ChildID, EventID: req.EventID}
	if err := h.Store.CreateCheckin(c.Request.Context(), &checkin); err != nil {
		if errors.Is(err, store.ErrInvalidRef) {
			c.JSON(http.StatusNotFound, gin.H{"error": "child or event not found"})
			return
		}
		log.Println("failed to create checkin:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.Hub.Publish("checkin", checkin)
	c.JSON(http.StatusCreated, checkin)
}

// ListByEvent is admin-only.
func (h *CheckinHandler) ListByEvent(c *gin.Context) {
	checkins, err := h.Store.ListCheckinsByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Println("failed to list checkins:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, checkins)
}

// ListByChild is owner-or-admin, with the not-found disguise on
// foreign children.
func (h *CheckinHandler) ListByChild(c *gin.Context) {
	child, err := h.Store.GetChild(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Println("failed to get child:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return
	}
	if !middleware.CanAccess(middleware.Principal(c), child.UserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return
	}

	checkins, err := h.Store.ListCheckinsByChild(c.Request.Context(), child.ID)
	if err != nil {
		log.Println("failed to list checkins:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, checkins)
}
