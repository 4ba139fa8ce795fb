package packing

import (
	"time"

	"backend-trailpack/internal/shared/weight"
)

// Assignment binds a catalog gear item to a hike. Weight and category come
// from the joined gear row; worn/checked state is per-trip.
type Assignment struct {
	ID           string    `json:"id"`
	HikeID       string    `json:"hike_id"`
	GearID       string    `json:"gear_id"`
	GearName     string    `json:"gear_name,omitempty"`
	CategoryName string    `json:"category_name,omitempty"`
	WeightKg     float64   `json:"weight_kg"`
	Quantity     int       `json:"quantity"`
	IsWorn       bool      `json:"is_worn"`
	Checked      bool      `json:"checked"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type FoodItem struct {
	ID           string    `json:"id"`
	HikeID       string    `json:"hike_id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	MealCategory string    `json:"meal_category"`
	WeightKg     float64   `json:"weight_kg"`
	Calories     int       `json:"calories,omitempty"`
	Quantity     int       `json:"quantity"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type FoodTotals struct {
	TotalKg       float64 `json:"total_kg"`
	TotalCalories int     `json:"total_calories"`
}

// Summary is the planner payload: the pure weight aggregate plus checklist
// progress and the meal-plan totals.
type Summary struct {
	Weights      weight.Summary `json:"weights"`
	ItemCount    int            `json:"item_count"`
	CheckedCount int            `json:"checked_count"`
	Food         FoodTotals     `json:"food"`
}

type event struct {
	Kind         string `json:"kind"`
	HikeID       string `json:"hike_id"`
	AssignmentID string `json:"assignment_id,omitempty"`
	Value        bool   `json:"value"`
}
