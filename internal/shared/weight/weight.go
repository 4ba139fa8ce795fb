package weight

import (
	"fmt"
	"math"
	"sort"
)

// Uncategorized is the bucket for items whose category was deleted or never set.
const Uncategorized = "Uncategorized"

// FoodCategory and the big-three names are matched exactly against stored
// category names, mirroring how the planner buckets gear.
const FoodCategory = "Food"

var bigThreeCategories = map[string]struct{}{
	"Shelter":      {},
	"Backpack":     {},
	"Sleep system": {},
}

// Item is one packed line: a gear row joined with its per-hike assignment.
type Item struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	WeightKg float64 `json:"weight_kg"`
	Quantity int     `json:"quantity"`
	IsWorn   bool    `json:"is_worn"`
	Checked  bool    `json:"checked"`
}

type CategoryTotal struct {
	Items         []Item  `json:"items"`
	TotalWeightKg float64 `json:"total_weight_kg"`
	TotalQuantity int     `json:"total_quantity"`
	WornCount     int     `json:"worn_count"`
}

type Summary struct {
	TotalKg        float64                  `json:"total_kg"`
	BaseKg         float64                  `json:"base_kg"`
	WearableKg     float64                  `json:"wearable_kg"`
	BigThreeKg     float64                  `json:"big_three_kg"`
	FoodKg         float64                  `json:"food_kg"`
	CategoryTotals map[string]CategoryTotal `json:"category_totals"`
}

// Aggregate folds an assignment list into whole-pack and per-category totals.
// Inputs are treated permissively: zero or negative quantity counts as 1 and a
// missing weight as 0, since this feeds display only. The worn/base split uses
// the per-assignment worn flag, never the catalog default.
func Aggregate(items []Item) Summary {
	s := Summary{CategoryTotals: map[string]CategoryTotal{}}

	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		kg := item.WeightKg
		if kg < 0 || math.IsNaN(kg) {
			kg = 0
		}
		lineKg := kg * float64(qty)

		category := item.Category
		if category == "" {
			category = Uncategorized
		}

		s.TotalKg += lineKg
		if item.IsWorn {
			s.WearableKg += lineKg
		} else {
			s.BaseKg += lineKg
			if _, ok := bigThreeCategories[category]; ok {
				s.BigThreeKg += lineKg
			}
			if category == FoodCategory {
				s.FoodKg += lineKg
			}
		}

		bucket := s.CategoryTotals[category]
		bucket.Items = append(bucket.Items, item)
		bucket.TotalWeightKg += lineKg
		bucket.TotalQuantity += qty
		if item.IsWorn {
			bucket.WornCount++
		}
		s.CategoryTotals[category] = bucket
	}

	return s
}

// Categories returns the bucket names in alphabetical order for rendering.
func (s Summary) Categories() []string {
	names := make([]string, 0, len(s.CategoryTotals))
	for name := range s.CategoryTotals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Format renders a weight in kilograms, switching to grams below 1 kg.
func Format(kg float64) string {
	if kg >= 1 {
		return fmt.Sprintf("%.2f kg", kg)
	}
	return fmt.Sprintf("%d g", int(math.Round(kg*1000)))
}

func KgToGrams(kg float64) float64 { return kg * 1000 }

func GramsToKg(grams float64) float64 { return grams / 1000 }

func KgToOz(kg float64) float64 { return kg * 35.274 }

func OzToKg(oz float64) float64 { return oz / 35.274 }
