package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"church-api/internal/auth"
	"church-api/internal/models"
	"church-api/internal/store"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	Store  store.Store
	Tokens *auth.TokenIssuer
}

func NewAuthHandler(st store.Store, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{Store: st, Tokens: tokens}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register creates a member account. Role and active flag are never
// taken from input: every registration is an active member. Emails are
// unique case-insensitively (normalized to lowercase by the store).
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Println("password hashing error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         models.RoleMember,
		IsActive:     true,
	}
	if err := h.Store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		log.Println("failed to create user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	// The password hash never leaves the server: the model carries
	// json:"-" on that field.
	c.JSON(http.StatusCreated, user)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token. An unknown email and
// a wrong password produce the same response, so callers cannot
// enumerate accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	user, err := h.Store.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		log.Println("database error on login:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	tokenString, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		log.Println("failed to create token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString, "token_type": "bearer"})
}
