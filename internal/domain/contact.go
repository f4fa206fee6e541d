package domain

import "time"

// ContactMessage Model
type ContactMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`              // Primary key
	Name      string    `gorm:"not null" json:"name"`              // Sender name
	Email     string    `gorm:"not null" json:"email"`             // Sender email
	Message   string    `gorm:"type:text;not null" json:"message"` // Message body
	CreatedAt time.Time `json:"created_at"`                        // Timestamp of intake
}

// Feedback Model
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`              // Primary key
	Name      string    `gorm:"not null" json:"name"`              // Sender name
	Email     string    `gorm:"not null" json:"email"`             // Sender email
	Message   string    `gorm:"type:text;not null" json:"message"` // Feedback body
	Rating    int       `gorm:"default:0" json:"rating"`           // Optional rating, 0 when not given
	CreatedAt time.Time `json:"created_at"`                        // Timestamp of intake
}

// TableName keeps the singular table name of the original schema
func (Feedback) TableName() string {
	return "feedback"
}
