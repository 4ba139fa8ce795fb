package share

import (
	"backend-trailpack/internal/hike"
	"backend-trailpack/internal/journal"
	"backend-trailpack/internal/packing"
	"backend-trailpack/internal/task"
)

// View is everything a share link exposes. Logs and Gallery are only
// populated when the owner opted each section in.
type View struct {
	Hike        hike.Hike            `json:"hike"`
	Assignments []packing.Assignment `json:"assignments"`
	Summary     packing.Summary      `json:"summary"`
	Tasks       []task.Task          `json:"tasks"`
	Logs        []journal.Log        `json:"logs,omitempty"`
	Gallery     []string             `json:"gallery,omitempty"`
}
