package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"church-api/internal/middleware"
	"church-api/internal/store"
)

type UserHandler struct {
	Store store.Store
}

func NewUserHandler(st store.Store) *UserHandler {
	return &UserHandler{Store: st}
}

// Me returns the acting principal's own row.
func (h *UserHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.Principal(c))
}

type UpdateMeRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateMe lets a member change name and email. Password and role are
// not updatable through this endpoint.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user := *middleware.Principal(c)
	user.Name = req.Name
	user.Email = req.Email

	if err := h.Store.UpdateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		log.Println("failed to update user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// List returns every account; admin only.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Store.ListUsers(c.Request.Context())
	if err != nil {
		log.Println("failed to list users:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, users)
}
