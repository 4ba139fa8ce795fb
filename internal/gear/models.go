package gear

import "time"

type Category struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	UsageCount int       `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type GearItem struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CategoryID   string    `json:"category_id,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	WeightKg     float64   `json:"weight_kg"`
	Quantity     int       `json:"quantity"`
	IsWorn       bool      `json:"is_worn"`
	ImageURL     string    `json:"image_url,omitempty"`
	Location     string    `json:"location,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Volume       string    `json:"volume,omitempty"`
	Sizes        string    `json:"sizes,omitempty"`
	Purpose      string    `json:"purpose,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
