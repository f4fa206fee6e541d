package api

import (
	"net/http"                 // HTTP status codes
	"strconv"                  // String conversion
	"kindkart/internal/domain" // Importing domain models
	"kindkart/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// pageParams reads page/page_size from the query with the usual bounds
func pageParams(c *gin.Context) (int, int) {
	page := 1      // Default page number
	pageSize := 20 // Default page size
	if p := c.Query("page"); p != "" {
		// If valid, set page number
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		// If valid, set page size within limits
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize
}

// ListContactMessagesHandler returns the contact message intake, paginated and
// newest first, for the admin review screen
func ListContactMessagesHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context() // Request context for Redis operations
		page, pageSize := pageParams(c)
		cacheKey := utils.AdminListCacheKey("messages", page, pageSize) // Cache key for this listing
		if rdb != nil {
			var cached gin.H // Cached listing
			// If cached data found, return it
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				cached["cached"] = true
				c.JSON(http.StatusOK, cached)
				return
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total message count
		// Count total messages for pagination
		if err := db.Model(&domain.ContactMessage{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count messages"})
			return
		}
		var messages []domain.ContactMessage // Slice to hold messages
		// Fetch the paginated page, newest first
		if err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		respData := gin.H{
			"messages":    messages,   // List of messages
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of messages
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, respData, donationCacheTTL) // Cache the listing
		}
		c.JSON(http.StatusOK, respData) // Return the listing
	}
}

// ListFeedbackHandler returns the feedback intake, paginated and newest first
func ListFeedbackHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context() // Request context for Redis operations
		page, pageSize := pageParams(c)
		cacheKey := utils.AdminListCacheKey("feedback", page, pageSize) // Cache key for this listing
		if rdb != nil {
			var cached gin.H // Cached listing
			// If cached data found, return it
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				cached["cached"] = true
				c.JSON(http.StatusOK, cached)
				return
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total feedback count
		// Count total feedback entries for pagination
		if err := db.Model(&domain.Feedback{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count feedback"})
			return
		}
		var entries []domain.Feedback // Slice to hold feedback entries
		// Fetch the paginated page, newest first
		if err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
			return
		}
		totalPages := (int(total) + pageSize - 1) / pageSize // Calculate total pages
		respData := gin.H{
			"feedback":    entries,    // List of feedback entries
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of entries
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, respData, donationCacheTTL) // Cache the listing
		}
		c.JSON(http.StatusOK, respData) // Return the listing
	}
}
