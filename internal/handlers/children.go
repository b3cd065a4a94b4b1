package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"church-api/internal/middleware"
	"church-api/internal/models"
	"church-api/internal/store"
)

type ChildHandler struct {
	Store store.Store
}

func NewChildHandler(st store.Store) *ChildHandler {
	return &ChildHandler{Store: st}
}

type ChildRequest struct {
	Name      string `json:"name" binding:"required"`
	Birthdate string `json:"birthdate" binding:"required"` // YYYY-MM-DD
}

func (r *ChildRequest) parseBirthdate() (time.Time, error) {
	return time.Parse("2006-01-02", r.Birthdate)
}

// Create registers a child under the acting principal. Any owner id in
// the request body is ignored: ownership is always the caller.
func (h *ChildHandler) Create(c *gin.Context) {
	var req ChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	birthdate, err := req.parseBirthdate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birthdate must be YYYY-MM-DD"})
		return
	}

	child := models.Child{
		UserID:    middleware.Principal(c).ID,
		Name:      req.Name,
		Birthdate: birthdate,
	}
	if err := h.Store.CreateChild(c.Request.Context(), &child); err != nil {
		log.Println("failed to create child:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, child)
}

// ListMine returns the principal's own children.
func (h *ChildHandler) ListMine(c *gin.Context) {
	children, err := h.Store.ListChildrenByUser(c.Request.Context(), middleware.Principal(c).ID)
	if err != nil {
		log.Println("failed to list children:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, children)
}

// getOwned loads a child and applies the ownership predicate. A missing
// id and a foreign child produce the identical 404 so callers cannot
// probe which ids exist.
func (h *ChildHandler) getOwned(c *gin.Context) *models.Child {
	child, err := h.Store.GetChild(c.Request.Context(), c.Param("id"))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Println("failed to get child:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return nil
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return nil
	}
	if !middleware.CanAccess(middleware.Principal(c), child.UserID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "child not found"})
		return nil
	}
	return child
}

func (h *ChildHandler) Get(c *gin.Context) {
	child := h.getOwned(c)
	if child == nil {
		return
	}
	c.JSON(http.StatusOK, child)
}

func (h *ChildHandler) Update(c *gin.Context) {
	child := h.getOwned(c)
	if child == nil {
		return
	}

	var req ChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	birthdate, err := req.parseBirthdate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "birthdate must be YYYY-MM-DD"})
		return
	}

	child.Name = req.Name
	child.Birthdate = birthdate
	if err := h.Store.UpdateChild(c.Request.Context(), child); err != nil {
		log.Println("failed to update child:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, child)
}

func (h *ChildHandler) Delete(c *gin.Context) {
	child := h.getOwned(c)
	if child == nil {
		return
	}
	if err := h.Store.DeleteChild(c.Request.Context(), child.ID); err != nil {
		log.Println("failed to delete child:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
