package gearinfo

// Info is the metadata suggestion for a piece of gear. Source is "ai"
// when it came back from the model and "mock" when the heuristic
// fallback produced it.
type Info struct {
	Name              string  `json:"name"`
	SuggestedCategory string  `json:"suggested_category"`
	WeightKg          float64 `json:"weight_kg"`
	Description       string  `json:"description,omitempty"`
	Purpose           string  `json:"purpose,omitempty"`
	Volume            string  `json:"volume,omitempty"`
	Sizes             string  `json:"sizes,omitempty"`
	ImageURL          string  `json:"image_url,omitempty"`
	Source            string  `json:"source"`
}
