package hike

import "time"

const (
	StatusPlanned    = "planned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
)

type Hike struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	StartDate       time.Time `json:"start_date,omitempty"`
	EndDate         time.Time `json:"end_date,omitempty"`
	Type            string    `json:"type,omitempty"`
	StartLocation   string    `json:"start_location,omitempty"`
	EndLocation     string    `json:"end_location,omitempty"`
	DistanceKm      float64   `json:"distance_km,omitempty"`
	ElevationGainM  float64   `json:"elevation_gain,omitempty"`
	DifficultyLevel string    `json:"difficulty_level,omitempty"`
	Status          string    `json:"status"`
	RatingScore     int       `json:"rating_score,omitempty"`
	RatingText      string    `json:"rating_text,omitempty"`
	CompletionNotes string    `json:"completion_notes,omitempty"`
	Images          []string  `json:"images,omitempty"`

	ShareEnabled   bool      `json:"share_enabled"`
	ShareID        string    `json:"share_id,omitempty"`
	ShareExpiresAt time.Time `json:"share_expires_at,omitempty"`
	SharePassword  string    `json:"share_password,omitempty"`
	ShareLogs      bool      `json:"share_logs"`
	ShareGallery   bool      `json:"share_gallery"`
	ShareURL       string    `json:"share_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ShareUpdate carries the share-settings dialog payload. Only these fields are
// touched by UpdateShare; everything else on the hike is left alone.
type ShareUpdate struct {
	Enabled      bool      `json:"share_enabled"`
	ExpiresAt    time.Time `json:"share_expires_at,omitempty"`
	Password     string    `json:"share_password,omitempty"`
	ShareLogs    bool      `json:"share_logs"`
	ShareGallery bool      `json:"share_gallery"`
}

func validStatus(s string) bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}
