package domain

import "time"

// Donation Model
type Donation struct {
	ID            uint           `gorm:"primaryKey" json:"id"`                              // Primary key
	TransactionID string         `gorm:"size:36;uniqueIndex;not null" json:"transactionId"` // Client-facing opaque token, one per payment
	UserID        *uint          `json:"userId"`                                            // Optional reference to the donating user
	FirstName     *string        `json:"firstName"`                                         // Denormalized donor first name (guest donations)
	LastName      *string        `json:"lastName"`                                          // Denormalized donor last name
	Email         *string        `json:"email"`                                             // Denormalized donor email
	Amount        float64        `gorm:"not null" json:"amount"`                            // Donation amount
	PaymentMethod string         `gorm:"not null" json:"paymentMethod"`                     // Payment method: card, upi, ...
	Currency      string         `gorm:"size:8;default:INR" json:"currency"`                // Currency code
	Description   *string        `json:"description"`                                       // Optional free-text description
	CreatedAt     time.Time      `json:"createdAt"`                                         // Timestamp of the payment
	Items         []DonationItem `gorm:"foreignKey:DonationID" json:"items,omitempty"`      // Cart line items, empty for direct donations
}

// DonationItem Model
type DonationItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`             // Primary key
	DonationID uint      `gorm:"index;not null" json:"donationId"` // Foreign key to the parent Donation
	UserID     *uint     `json:"userId"`                           // Optional reference to the donating user
	ItemName   string    `gorm:"not null" json:"itemName"`         // Cart item name
	Price      float64   `gorm:"not null" json:"price"`            // Unit price
	Qty        int       `gorm:"default:1" json:"qty"`             // Quantity, defaults to 1
	CreatedAt  time.Time `json:"createdAt"`                        // Timestamp of creation
}
