package api

import (
	"net/http"                 // HTTP status codes
	"time"                     // Timestamps for logging
	"kindkart/internal/domain" // Importing domain models
	"kindkart/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // Transaction id generation
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// DonorInfo carries the denormalized donor fields of a direct payment
type DonorInfo struct {
	UserID    *uint   `json:"userId"`    // Optional registered user
	FirstName *string `json:"firstName"` // Donor first name
	LastName  *string `json:"lastName"`  // Donor last name
	Email     *string `json:"email"`     // Donor email
}

// ProcessPaymentRequest is the direct donation payload
type ProcessPaymentRequest struct {
	Amount        float64    `json:"amount"`        // Donation amount
	PaymentMethod string     `json:"paymentMethod"` // Payment method
	Currency      string     `json:"currency"`      // Optional currency, defaults to INR
	Description   *string    `json:"description"`   // Optional description
	DonorInfo     *DonorInfo `json:"donorInfo"`     // Required donor block
}

// ProcessPaymentHandler records a direct money donation. Every submission
// creates a new row; there is no idempotency key, so duplicate submissions
// create duplicate donations.
func ProcessPaymentHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProcessPaymentRequest // Bind JSON request to struct
		// Amount, payment method and donor info are all required
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount == 0 || req.PaymentMethod == "" || req.DonorInfo == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
			return
		}
		currency := req.Currency // Default currency
		if currency == "" {
			currency = "INR"
		}
		transactionID := uuid.NewString() // Fresh opaque transaction token
		donation := domain.Donation{
			TransactionID: transactionID,          // Client-facing token
			UserID:        req.DonorInfo.UserID,   // Optional account link
			FirstName:     req.DonorInfo.FirstName, // Denormalized donor copy
			LastName:      req.DonorInfo.LastName,
			Email:         req.DonorInfo.Email,
			Amount:        req.Amount,
			PaymentMethod: req.PaymentMethod,
			Currency:      currency,
			Description:   req.Description,
		}
		// Persist the donation row
		if err := db.Create(&donation).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"transaction_id": transactionID, // Generated token
				"amount":         req.Amount,    // Donation amount
				"error":          err.Error(),   // Error message
			}).Error("Direct donation failed") // Log payment failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		// Log successful donation
		logrus.WithFields(logrus.Fields{
			"transaction_id": transactionID,                   // Generated token
			"donation_id":    donation.ID,                     // Database id
			"amount":         req.Amount,                      // Donation amount
			"type":           "direct",                        // Donation type
			"timestamp":      time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Donation recorded")
		// Invalidate the owner's cached summary, if any
		utils.InvalidateDonationCaches(c.Request.Context(), rdb, req.DonorInfo.UserID, donation.ID)
		// Return the transaction token
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"transactionId": transactionID,
			"message":       "Donation successful",
		})
	}
}
