package api

import (
	"errors"                   // Sentinel errors for transaction blocks
	"net/http"                 // HTTP status codes
	"strconv"                  // Owner id formatting for cache keys
	"time"                     // Timestamps and cache TTL
	"kindkart/internal/domain" // Importing domain models
	"kindkart/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/google/uuid"       // Transaction id generation
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// donationCacheTTL is how long summary and details responses stay cached
const donationCacheTTL = 60 * time.Second

// recipientLabel tags every summary row with the platform name
const recipientLabel = "Kind-Kart"

// errDonationNotFound aborts a delete transaction when the parent row is missing
var errDonationNotFound = errors.New("donation not found")

// CartItem is one line item of a cart checkout
type CartItem struct {
	Name  string  `json:"name"`  // Item name
	Price float64 `json:"price"` // Unit price
	Qty   int     `json:"qty"`   // Quantity, defaults to 1
}

// CheckoutRequest is the cart checkout payload
type CheckoutRequest struct {
	UserID        *uint      `json:"userId"`        // Optional registered user
	Items         []CartItem `json:"items"`         // Cart line items, must be non-empty
	Amount        float64    `json:"amount"`        // Total amount
	PaymentMethod string     `json:"paymentMethod"` // Optional, defaults to card
	Currency      string     `json:"currency"`      // Optional, defaults to INR
	Description   *string    `json:"description"`   // Optional, defaults to "Cart donation"
}

// summaryRow is one entry of a user's donation summary
type summaryRow struct {
	ID            uint      `json:"id"`            // Donation id
	TransactionID string    `json:"transactionId"` // Opaque token
	Amount        float64   `json:"amount"`        // Donation amount
	CreatedAt     time.Time `json:"createdAt"`     // Timestamp of the payment
	DonatedTo     string    `json:"donatedTo"`     // Fixed recipient label
}

// donationDetails is the joined details view of one donation
type donationDetails struct {
	ID            uint                  `json:"id"`            // Donation id
	TransactionID string                `json:"transactionId"` // Opaque token
	Amount        float64               `json:"amount"`        // Donation amount
	PaymentMethod string                `json:"paymentMethod"` // Payment method
	Currency      string                `json:"currency"`      // Currency code
	Description   *string               `json:"description"`   // Optional description
	CreatedAt     time.Time             `json:"createdAt"`     // Timestamp of the payment
	UserName      string                `json:"userName"`      // Owner name with Anonymous fallback
	UserEmail     *string               `json:"userEmail"`     // Owner email when the account exists
	Type          string                `json:"type"`          // Cart Donation or Direct Money Donation
	Items         []domain.DonationItem `json:"items" gorm:"-"` // Cart line items
}

// CheckoutHandler records a cart donation: one Donation row plus one
// DonationItem per cart entry, committed atomically so a failed item insert
// rolls the donation back as well.
func CheckoutHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest // Bind JSON request to struct
		// The cart must contain at least one item
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No items in cart"})
			return
		}
		// Apply the checkout defaults
		paymentMethod := req.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = "card"
		}
		currency := req.Currency
		if currency == "" {
			currency = "INR"
		}
		description := req.Description
		if description == nil {
			d := "Cart donation"
			description = &d
		}
		transactionID := uuid.NewString() // Fresh opaque transaction token
		donation := domain.Donation{
			TransactionID: transactionID,
			UserID:        req.UserID,
			Amount:        req.Amount,
			PaymentMethod: paymentMethod,
			Currency:      currency,
			Description:   description,
		}
		// Atomic two-step write: parent first, then the item batch
		err := db.Transaction(func(tx *gorm.DB) error {
			// Insert the donation and capture its generated id
			if err := tx.Create(&donation).Error; err != nil {
				return err // Return error to rollback
			}
			// Build the item rows referencing the new donation
			items := make([]domain.DonationItem, 0, len(req.Items))
			for _, it := range req.Items {
				qty := it.Qty
				if qty <= 0 {
					qty = 1 // Quantity defaults to 1
				}
				items = append(items, domain.DonationItem{
					DonationID: donation.ID, // Parent reference
					UserID:     req.UserID,  // Optional account link
					ItemName:   it.Name,     // Item name
					Price:      it.Price,    // Unit price
					Qty:        qty,         // Quantity
				})
			}
			// Bulk-insert the items; failure rolls back the donation too
			if err := tx.Create(&items).Error; err != nil {
				return err // Return error to rollback
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"transaction_id": transactionID,  // Generated token
				"items":          len(req.Items), // Cart size
				"error":          err.Error(),    // Error message
			}).Error("Checkout failed") // Log checkout failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save donation items"})
			return
		}
		// Log successful checkout
		logrus.WithFields(logrus.Fields{
			"transaction_id": transactionID,                   // Generated token
			"donation_id":    donation.ID,                     // Database id
			"amount":         req.Amount,                      // Total amount
			"items":          len(req.Items),                  // Cart size
			"type":           "checkout",                      // Donation type
			"timestamp":      time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Donation recorded")
		// Invalidate the owner's cached summary, if any
		utils.InvalidateDonationCaches(c.Request.Context(), rdb, req.UserID, donation.ID)
		// Return token, database id and the accepted items
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"transactionId": transactionID,
			"donationId":    donation.ID,
			"amount":        req.Amount,
			"items":         req.Items,
		})
	}
}

// DonationSummaryHandler returns all donations of a user, newest first,
// each tagged with the fixed recipient label
func DonationSummaryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")                      // Path parameter
		cacheKey := utils.SummaryCacheKey(userID)    // Cache key for this user's summary
		ctx := c.Request.Context()                   // Request context for Redis operations
		var cached []summaryRow                      // Cached summary rows
		if rdb != nil {
			// Try to get from cache first
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{"donations": cached, "cached": true})
				return
			}
		}
		var donations []domain.Donation // Donation rows from the database
		// Fetch the user's donations, newest first
		if err := db.Where("user_id = ?", userID).Order("created_at desc").Find(&donations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donation summary"})
			return
		}
		// Tag each row with the recipient label
		rows := make([]summaryRow, 0, len(donations))
		for _, d := range donations {
			rows = append(rows, summaryRow{
				ID:            d.ID,
				TransactionID: d.TransactionID,
				Amount:        d.Amount,
				CreatedAt:     d.CreatedAt,
				DonatedTo:     recipientLabel,
			})
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, rows, donationCacheTTL) // Cache the summary
		}
		c.JSON(http.StatusOK, gin.H{"donations": rows}) // Return the summary
	}
}

// DonationDetailsHandler returns one donation joined to its owning user and
// items. The owner name falls back from the account name to the denormalized
// first name to "Anonymous", in that order.
func DonationDetailsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")                    // Path parameter
		cacheKey := utils.DetailsCacheKey(id)  // Cache key for this donation
		ctx := c.Request.Context()             // Request context for Redis operations
		var cached donationDetails             // Cached details
		if rdb != nil {
			// Try to get from cache first
			found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{"donation": cached, "cached": true})
				return
			}
		}
		var detail donationDetails // Joined donation row
		// Join the donation to its owning user; the fallback order is fixed
		res := db.Raw(`
SELECT d.id, d.transaction_id, d.amount, d.payment_method, d.currency,
       d.description, d.created_at,
       COALESCE(u.name, d.first_name, 'Anonymous') AS user_name,
       u.email AS user_email
FROM donations d
LEFT JOIN users u ON d.user_id = u.id
WHERE d.id = ?`, id).Scan(&detail)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		// No matching donation row
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		var items []domain.DonationItem // Cart line items of the donation
		if err := db.Where("donation_id = ?", id).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching donation items"})
			return
		}
		// Classify by cart contents
		if len(items) > 0 {
			detail.Type = "Cart Donation"
		} else {
			detail.Type = "Direct Money Donation"
		}
		detail.Items = items
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, detail, donationCacheTTL) // Cache the details
		}
		c.JSON(http.StatusOK, gin.H{"donation": detail}) // Return the details
	}
}

// DeleteDonationHandler removes a donation and its items. Items go first so
// the parent row never outlives them inside the transaction; a missing parent
// rolls the whole delete back and reports not found.
func DeleteDonationHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id") // Path parameter
		var owner *uint     // Owner id captured for cache invalidation
		// Atomic delete: items first, then the parent row
		err := db.Transaction(func(tx *gorm.DB) error {
			// Capture the owner before the row disappears
			var donation domain.Donation
			if err := tx.Where("id = ?", id).First(&donation).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errDonationNotFound // Nothing to delete
				}
				return err // Return error to rollback
			}
			owner = donation.UserID
			// Delete the items of the donation
			if err := tx.Where("donation_id = ?", id).Delete(&domain.DonationItem{}).Error; err != nil {
				return err // Return error to rollback
			}
			// Delete the donation row itself and verify a row was removed
			res := tx.Where("id = ?", id).Delete(&domain.Donation{})
			if res.Error != nil {
				return res.Error // Return error to rollback
			}
			if res.RowsAffected == 0 {
				return errDonationNotFound // Row vanished between the lookup and the delete
			}
			return nil // Commit transaction
		})
		// Handle transaction result
		if errors.Is(err, errDonationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"donation_id": id,          // Target donation
				"error":       err.Error(), // Error message
			}).Error("Delete donation failed") // Log delete failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete donation"})
			return
		}
		// Invalidate summary and details caches for the removed donation
		if rdb != nil {
			ctx := c.Request.Context()
			_ = utils.DeleteCache(ctx, rdb, utils.DetailsCacheKey(id))
			if owner != nil {
				_ = utils.DeleteCache(ctx, rdb, utils.SummaryCacheKey(strconv.Itoa(int(*owner))))
			}
		}
		// Return success response
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Donation deleted successfully"})
	}
}
