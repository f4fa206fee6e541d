package api

import (
	"errors"                   // Error matching for duplicate keys
	"net/http"                 // HTTP status codes
	"time"                     // Token lifetime
	"kindkart/internal/domain" // Importing domain models
	"kindkart/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// tokenTTL is the lifetime of the JWT returned at login
const tokenTTL = 24 * time.Hour

// SignupRequest is the signup payload
type SignupRequest struct {
	Name     string `json:"name"`     // Display name
	Email    string `json:"email"`    // Login email
	Password string `json:"password"` // Plaintext password, hashed before storage
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`    // Login email
	Password string `json:"password"` // Plaintext password to compare
}

// publicUser is the profile shape returned to clients
type publicUser struct {
	ID       uint    `json:"id"`        // User ID
	Name     string  `json:"name"`      // Display name
	Email    string  `json:"email"`     // Login email
	Phone    *string `json:"phone"`     // Optional phone
	PhotoURL *string `json:"photo_url"` // Optional photo path
}

// SignupHandler creates a new user account
func SignupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		// All three fields are required
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}
		// Reject already-registered emails before attempting the insert
		var existing domain.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}
		// Hash the password; plaintext is never stored
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Name: req.Name, Email: req.Email, Password: string(hash)}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// The lookup above races with concurrent signups; the unique index is authoritative
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"email": req.Email,   // Attempted email
				"error": err.Error(), // Error message
			}).Error("Signup failed") // Log signup failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		// Return the public fields of the new account
		c.JSON(http.StatusOK, gin.H{
			"message": "Signup successful",
			"user":    gin.H{"id": user.ID, "name": user.Name, "email": user.Email},
		})
	}
}

// LoginHandler authenticates a user and returns the public profile plus a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		// Both fields are required
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			// Unknown email, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash (constant-time)
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token for the session
		token, err := utils.GenerateJWT(user.ID, user.Email, jwtSecret, tokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the public profile fields and the token
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user": publicUser{
				ID:       user.ID,
				Name:     user.Name,
				Email:    user.Email,
				Phone:    user.Phone,
				PhotoURL: user.PhotoURL,
			},
			"token": token,
		})
	}
}

// MeHandler returns the profile of the authenticated token holder
func MeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, publicUser{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Phone:    user.Phone,
			PhotoURL: user.PhotoURL,
		})
	}
}
