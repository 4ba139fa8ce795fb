package share

import (
	"context"
	"errors"
	"time"

	"backend-trailpack/internal/hike"
	"backend-trailpack/internal/journal"
	"backend-trailpack/internal/packing"
	"backend-trailpack/internal/task"
)

var (
	// ErrNotFound covers unknown tokens, disabled shares and expired
	// shares alike, so a caller cannot tell which one it hit.
	ErrNotFound = errors.New("share not found")

	// ErrPasswordRequired means the share exists but the supplied
	// password was missing or wrong.
	ErrPasswordRequired = errors.New("password required")
)

type Service struct {
	hikes   *hike.Service
	packing *packing.Service
	tasks   *task.Service
	journal *journal.Service
	now     func() time.Time
}

func NewService(hikes *hike.Service, pack *packing.Service, tasks *task.Service, jrnl *journal.Service) *Service {
	return &Service{hikes: hikes, packing: pack, tasks: tasks, journal: jrnl, now: time.Now}
}

// View resolves a share token into the public read-only view. The password
// travels with every request; nothing about a successful check is persisted.
func (s *Service) View(ctx context.Context, token, password string) (View, error) {
	h, err := s.hikes.GetByShareToken(ctx, token)
	if err != nil {
		return View{}, ErrNotFound
	}
	if !h.ShareEnabled {
		return View{}, ErrNotFound
	}
	if !h.ShareExpiresAt.IsZero() && s.now().After(h.ShareExpiresAt) {
		return View{}, ErrNotFound
	}
	if h.SharePassword != "" && password != h.SharePassword {
		return View{}, ErrPasswordRequired
	}

	view := View{}

	view.Assignments, err = s.packing.List(ctx, h.ID)
	if err != nil {
		return View{}, err
	}
	view.Summary, err = s.packing.Summary(ctx, h.ID)
	if err != nil {
		return View{}, err
	}
	view.Tasks, err = s.tasks.List(ctx, h.ID)
	if err != nil {
		return View{}, err
	}
	if h.ShareLogs {
		view.Logs, err = s.journal.List(ctx, h.ID)
		if err != nil {
			return View{}, err
		}
	}
	if h.ShareGallery {
		view.Gallery = h.Images
	}

	view.Hike = sanitize(h)
	return view, nil
}

// sanitize strips everything a viewer has no business seeing.
func sanitize(h hike.Hike) hike.Hike {
	h.UserID = ""
	h.SharePassword = ""
	h.ShareURL = ""
	h.Images = nil
	return h
}
