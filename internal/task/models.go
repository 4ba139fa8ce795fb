package task

import "time"

type Task struct {
	ID          string    `json:"id"`
	HikeID      string    `json:"hike_id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

type event struct {
	Kind   string   `json:"kind"`
	HikeID string   `json:"hike_id"`
	TaskID string   `json:"task_id,omitempty"`
	Value  bool     `json:"value,omitempty"`
	Order  []string `json:"order,omitempty"`
}
