package domain

import (
	"time"
)

// Link represents a shortened URL mapping in the system
// This is the core domain entity: one record per distinct original URL
type Link struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OriginalURL string    `gorm:"uniqueIndex:idx_links_original_url;not null;type:text" json:"originalUrl"`
	ShortCode   string    `gorm:"uniqueIndex:idx_links_short_code;not null;size:14" json:"shortCode"`
	Clicks      int64     `gorm:"not null;default:0" json:"clicks"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Link) TableName() string {
	return "links"
}

// ShortenRequest represents the request payload for creating a short link
type ShortenRequest struct {
	OriginalURL string `json:"originalUrl" binding:"required"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}
