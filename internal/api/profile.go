package api

import (
	"errors"                   // Error matching for upload validation
	"net/http"                 // HTTP status codes
	"path/filepath"            // Staged file paths
	"kindkart/internal/domain" // Importing domain models
	"kindkart/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// profileFields selects the public profile columns
var profileFields = []string{"id", "name", "email", "phone", "photo_url"}

// fetchProfile loads the public profile of one user id
func fetchProfile(db *gorm.DB, id string) (*publicUser, error) {
	var user domain.User
	if err := db.Select(profileFields).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &publicUser{
		ID:       user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Phone:    user.Phone,
		PhotoURL: user.PhotoURL,
	}, nil
}

// GetProfileHandler returns a user's public profile by path id
func GetProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := fetchProfile(db, c.Param("id")) // Load by path parameter
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, profile) // Return the profile
	}
}

// GetProfileCompatHandler is the secondary lookup form kept for older
// front-end variants: the id arrives as ?id= or in the X-User-ID header
func GetProfileCompatHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id") // Query parameter first
		if id == "" {
			id = c.GetHeader("X-User-ID") // Header fallback
		}
		// No id supplied by either mechanism
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Missing user id",
				"help":      "Call /api/users/:id/profile OR /api/users/profile?id=123 OR set header X-User-ID: 123",
				"requested": c.Request.URL.String(),
			})
			return
		}
		profile, err := fetchProfile(db, id) // Load by the resolved id
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, profile) // Return the profile
	}
}

// UpdateProfileHandler updates the textual profile fields and optionally
// replaces the profile photo. The photo is validated before any disk write and
// removed again whenever the row update does not go through, so a failed
// update never leaks an orphaned file.
func UpdateProfileHandler(db *gorm.DB, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")           // Path parameter
		name := c.PostForm("name")    // Required field
		email := c.PostForm("email")  // Required field
		phone := c.PostForm("phone")  // Optional field
		// Name and email are required; nothing has been stored yet at this point
		if name == "" || email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
			return
		}
		// Column updates for the textual fields
		updates := map[string]any{
			"name":  name,
			"email": email,
		}
		if phone != "" {
			updates["phone"] = phone
		} else {
			updates["phone"] = nil // Clear the phone when not submitted
		}
		var storedPath string // On-disk path of the accepted photo, empty without upload
		// The photo part is optional
		if file, err := c.FormFile("photo"); err == nil {
			// Validate extension and size before touching the disk
			if err := utils.ValidatePhoto(file); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filename := utils.PhotoFilename(file.Filename)   // Unique on-disk name
			storedPath = filepath.Join(uploadDir, filename)   // Staging location
			// Stage the file on disk
			if err := c.SaveUploadedFile(file, storedPath); err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": id,          // Target user
					"error":   err.Error(), // Error message
				}).Error("Photo store failed") // Log store failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
				return
			}
			updates["photo_url"] = "/uploads/" + filename // Access path recorded on the row
		}
		// Apply the update and check how many rows matched
		res := db.Model(&domain.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			// Remove the staged photo so the failure leaves no orphan
			if storedPath != "" {
				utils.RemoveUpload(storedPath)
			}
			logrus.WithFields(logrus.Fields{
				"user_id": id,                // Target user
				"error":   res.Error.Error(), // Error message
			}).Error("Profile update failed") // Log update failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		// Zero affected rows means the user does not exist
		if res.RowsAffected == 0 {
			if storedPath != "" {
				utils.RemoveUpload(storedPath) // Clean up the staged photo
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Return success, including the new photo path when one was stored
		resp := gin.H{"success": true, "message": "Profile updated"}
		if photoURL, ok := updates["photo_url"]; ok {
			resp["photo_url"] = photoURL
		}
		c.JSON(http.StatusOK, resp)
	}
}
