package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"church-api/internal/middleware"
	"church-api/internal/models"
	"church-api/internal/store"
)

type DonationHandler struct {
	Store store.Store
}

func NewDonationHandler(st store.Store) *DonationHandler {
	return &DonationHandler{Store: st}
}

type DonationRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"gte=0"`
	Category    string `json:"category" binding:"required"`
}

// Create records a gift against the acting principal. Amounts are
// recorded, never charged; no payment gateway is involved.
func (h *DonationHandler) Create(c *gin.Context) {
	var req DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	donation := models.Donation{
		UserID:      middleware.Principal(c).ID,
		AmountCents: req.AmountCents,
		Category:    req.Category,
	}
	if err := h.Store.CreateDonation(c.Request.Context(), &donation); err != nil {
		log.Println("failed to create donation:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, donation)
}

// ListMine returns the principal's own donations, newest first.
func (h *DonationHandler) ListMine(c *gin.Context) {
	donations, err := h.Store.ListDonationsByUser(c.Request.Context(), middleware.Principal(c).ID)
	if err != nil {
		log.Println("failed to list donations:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, donations)
}

// List returns every donation; admin only.
func (h *DonationHandler) List(c *gin.Context) {
	donations, err := h.Store.ListDonations(c.Request.Context())
	if err != nil {
		log.Println("failed to list donations:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, donations)
}
