package task

import (
	"context"
	"encoding/json"
	"errors"

	"backend-trailpack/internal/db"
	"backend-trailpack/internal/stream"

	"github.com/google/uuid"
)

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

func (s *Service) Create(ctx context.Context, hikeID, description string) (Task, error) {
	if description == "" {
		return Task{}, errors.New("description required")
	}
	t := Task{ID: uuid.NewString(), HikeID: hikeID, Description: description}
	row := s.db.QueryRow(ctx, `
		INSERT INTO hike_tasks (id, hike_id, description, completed, position)
		SELECT $1, $2, $3, false, COALESCE(MAX(position)+1, 0)
		FROM hike_tasks WHERE hike_id=$2
		RETURNING position, created_at
	`, t.ID, hikeID, description)
	if err := row.Scan(&t.Position, &t.CreatedAt); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, hikeID string) ([]Task, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, hike_id, description, COALESCE(completed,false), COALESCE(position,0), created_at
		FROM hike_tasks WHERE hike_id=$1
		ORDER BY position, created_at
	`, hikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.HikeID, &t.Description, &t.Completed, &t.Position, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *Service) SetCompleted(ctx context.Context, hikeID, id string, completed bool) error {
	_, err := s.db.Exec(ctx, `
		UPDATE hike_tasks SET completed=$3 WHERE id=$1 AND hike_id=$2
	`, id, hikeID, completed)
	if err != nil {
		return err
	}
	s.broadcast(event{Kind: "task_completed", HikeID: hikeID, TaskID: id, Value: completed})
	return nil
}

func (s *Service) UpdateDescription(ctx context.Context, hikeID, id, description string) error {
	if description == "" {
		return errors.New("description required")
	}
	_, err := s.db.Exec(ctx, `
		UPDATE hike_tasks SET description=$3 WHERE id=$1 AND hike_id=$2
	`, id, hikeID, description)
	return err
}

func (s *Service) Delete(ctx context.Context, hikeID, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM hike_tasks WHERE id=$1 AND hike_id=$2`, id, hikeID)
	return err
}

// Reorder rewrites every task's position to its index in the given order.
// This is a full rewrite, not a gap-preserving renumber: two clients
// reordering at once end up with whichever write landed last.
func (s *Service) Reorder(ctx context.Context, hikeID string, orderedIDs []string) error {
	if len(orderedIDs) == 0 {
		return errors.New("task ids required")
	}
	for i, id := range orderedIDs {
		if _, err := s.db.Exec(ctx, `
			UPDATE hike_tasks SET position=$3 WHERE id=$1 AND hike_id=$2
		`, id, hikeID, i); err != nil {
			return err
		}
	}
	s.broadcast(event{Kind: "tasks_reordered", HikeID: hikeID, Order: orderedIDs})
	return nil
}

func (s *Service) broadcast(e event) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(e)
	s.hub.Broadcast(e.HikeID, payload)
}
