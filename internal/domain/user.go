package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`         // Primary key
	Name      string    `gorm:"not null" json:"name"`         // Display name
	Email     string    `gorm:"unique;not null" json:"email"` // Unique email, used for login
	Password  string    `gorm:"not null" json:"-"`            // Bcrypt hash, never serialized
	Phone     *string   `json:"phone"`                        // Optional phone number
	PhotoURL  *string   `json:"photo_url"`                    // Optional path to the stored profile photo
	Role      string    `gorm:"default:user" json:"-"`        // Role: user or admin
	CreatedAt time.Time `json:"created_at"`                   // Timestamp of signup
}
