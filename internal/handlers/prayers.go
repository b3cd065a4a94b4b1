package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"church-api/internal/middleware"
	"church-api/internal/models"
	"church-api/internal/store"
)

type PrayerHandler struct {
	Store store.Store
}

func NewPrayerHandler(st store.Store) *PrayerHandler {
	return &PrayerHandler{Store: st}
}

type PrayerRequest struct {
	Content   string `json:"content" binding:"required"`
	Anonymous bool   `json:"anonymous"`
}

// Create stores a prayer request. Anonymity is decided here and only
// here: an anonymous request never carries a user reference, and the
// reference is never backfilled later.
func (h *PrayerHandler) Create(c *gin.Context) {
	var req PrayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	prayer := models.PrayerRequest{
		Content: req.Content,
		Status:  models.PrayerPending,
	}
	if !req.Anonymous {
		id := middleware.Principal(c).ID
		prayer.UserID = &id
	}

	if err := h.Store.CreatePrayer(c.Request.Context(), &prayer); err != nil {
		log.Println("failed to create prayer request:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, prayer)
}

// List is admin-only: prayer content is only visible to moderators.
func (h *PrayerHandler) List(c *gin.Context) {
	prayers, err := h.Store.ListPrayers(c.Request.Context())
	if err != nil {
		log.Println("failed to list prayer requests:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, prayers)
}

type PrayerStatusRequest struct {
	Status models.PrayerStatus `json:"status" binding:"required"`
}

// UpdateStatus moves a request between pending, praying and answered.
// Only the status field is updatable; anything outside the enum is
// rejected before the store is touched.
func (h *PrayerHandler) UpdateStatus(c *gin.Context) {
	var req PrayerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be pending, praying or answered"})
		return
	}

	prayer, err := h.Store.UpdatePrayerStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "prayer request not found"})
			return
		}
		log.Println("failed to update prayer status:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, prayer)
}
