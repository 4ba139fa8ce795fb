package journal

import "time"

// Log is a single trail journal entry for a hike. Conditions and Images
// are stored as text[] columns; mood and difficulty run 1 to 5.
type Log struct {
	ID          string    `json:"id"`
	HikeID      string    `json:"hike_id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Time        string    `json:"time,omitempty"`
	Location    string    `json:"location,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Weather     string    `json:"weather,omitempty"`
	Temperature string    `json:"temperature,omitempty"`
	Conditions  []string  `json:"conditions"`
	Mood        int       `json:"mood,omitempty"`
	Difficulty  int       `json:"difficulty,omitempty"`
	DistanceKm  float64   `json:"distance_km,omitempty"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
}

type LogUpdate struct {
	Date        *time.Time `json:"date"`
	Title       *string    `json:"title"`
	Time        *string    `json:"time"`
	Location    *string    `json:"location"`
	Notes       *string    `json:"notes"`
	Weather     *string    `json:"weather"`
	Temperature *string    `json:"temperature"`
	Conditions  []string   `json:"conditions"`
	Mood        *int       `json:"mood"`
	Difficulty  *int       `json:"difficulty"`
	DistanceKm  *float64   `json:"distance_km"`
}
