package api

import (
	"net/http"                 // HTTP status codes
	"kindkart/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ContactRequest is the contact form payload
type ContactRequest struct {
	Name    string `json:"name"`    // Sender name
	Email   string `json:"email"`   // Sender email
	Message string `json:"message"` // Message body
}

// FeedbackRequest is the feedback form payload
type FeedbackRequest struct {
	Name    string `json:"name"`    // Sender name
	Email   string `json:"email"`   // Sender email
	Message string `json:"message"` // Feedback body
	Rating  *int   `json:"rating"`  // Optional rating
}

// ContactHandler appends one contact message; intake only, never updated
func ContactHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactRequest // Bind JSON request to struct
		// All three fields are required
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}
		msg := domain.ContactMessage{Name: req.Name, Email: req.Email, Message: req.Message}
		// Persist the message
		if err := db.Create(&msg).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Sender email
				"error": err.Error(), // Error message
			}).Error("Contact intake failed") // Log intake failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message sent successfully!"})
	}
}

// FeedbackHandler appends one feedback entry; a missing rating is stored as 0
func FeedbackHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FeedbackRequest // Bind JSON request to struct
		// Name, email and message are required
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}
		rating := 0 // Rating defaults to 0 when not given
		if req.Rating != nil {
			rating = *req.Rating
		}
		fb := domain.Feedback{Name: req.Name, Email: req.Email, Message: req.Message, Rating: rating}
		// Persist the feedback
		if err := db.Create(&fb).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Sender email
				"error": err.Error(), // Error message
			}).Error("Feedback intake failed") // Log intake failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thank you for your feedback!"})
	}
}
