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

type AnnouncementHandler struct {
	Store store.Store
	Hub   *ws.Hub
}

func NewAnnouncementHandler(st store.Store, hub *ws.Hub) *AnnouncementHandler {
	return &AnnouncementHandler{Store: st, Hub: hub}
}

type AnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// Create is admin-only; the author is always the acting principal.
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	announcement := models.Announcement{
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: middleware.Principal(c).ID,
	}
	if err := h.Store.CreateAnnouncement(c.Request.Context(), &announcement); err != nil {
		log.Println("failed to create announcement:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	h.Hub.Publish("announcement", announcement)
	c.JSON(http.StatusCreated, announcement)
}

// List is public, newest first.
func (h *AnnouncementHandler) List(c *gin.Context) {
	announcements, err := h.Store.ListAnnouncements(c.Request.Context())
	if err != nil {
		log.Println("failed to list announcements:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Get(c *gin.Context) {
	announcement, err := h.Store.GetAnnouncement(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
			return
		}
		log.Println("failed to get announcement:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	announcement := models.Announcement{
		ID:      c.Param("id"),
		Title:   req.Title,
		Content: req.Content,
	}
	if err := h.Store.UpdateAnnouncement(c.Request.Context(), &announcement); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
			return
		}
		log.Println("failed to update announcement:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.Store.DeleteAnnouncement(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
			return
		}
		log.Println("failed to delete announcement:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
