package packing

import (
	"context"
	"encoding/json"

	"backend-trailpack/internal/db"
	"backend-trailpack/internal/shared/weight"
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

// AddGear assigns a catalog item to a hike. When the caller does not pin the
// worn flag, the catalog item's default is copied in; afterwards the
// assignment's own flag is the only one that matters.
func (s *Service) AddGear(ctx context.Context, hikeID, gearID string, quantity int, isWorn *bool, notes string) (Assignment, error) {
	if quantity < 1 {
		quantity = 1
	}
	a := Assignment{ID: uuid.NewString(), HikeID: hikeID, GearID: gearID, Quantity: quantity, Notes: notes}

	row := s.db.QueryRow(ctx, `
		INSERT INTO hike_gear (id, hike_id, gear_id, quantity, is_worn, notes, checked)
		SELECT $1, $2, g.id, $4, COALESCE($5, g.is_worn, false), $6, false
		FROM gear_items g WHERE g.id = $3
		RETURNING is_worn, created_at
	`, a.ID, hikeID, gearID, quantity, isWorn, notes)
	if err := row.Scan(&a.IsWorn, &a.CreatedAt); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Service) Remove(ctx context.Context, hikeID, assignmentID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM hike_gear WHERE id=$1 AND hike_id=$2`, assignmentID, hikeID)
	return err
}

func (s *Service) List(ctx context.Context, hikeID string) ([]Assignment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT hg.id, hg.hike_id, hg.gear_id, g.name, COALESCE(c.name,''), g.weight_kg,
		       COALESCE(hg.quantity,1), COALESCE(hg.is_worn,false), COALESCE(hg.checked,false),
		       COALESCE(hg.notes,''), hg.created_at
		FROM hike_gear hg
		JOIN gear_items g ON g.id = hg.gear_id
		LEFT JOIN categories c ON c.id = g.category_id
		WHERE hg.hike_id=$1
		ORDER BY c.name NULLS LAST, g.name
	`, hikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.HikeID, &a.GearID, &a.GearName, &a.CategoryName, &a.WeightKg,
			&a.Quantity, &a.IsWorn, &a.Checked, &a.Notes, &a.CreatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func (s *Service) SetChecked(ctx context.Context, hikeID, assignmentID string, checked bool) error {
	_, err := s.db.Exec(ctx, `
		UPDATE hike_gear SET checked=$3 WHERE id=$1 AND hike_id=$2
	`, assignmentID, hikeID, checked)
	if err != nil {
		return err
	}
	s.broadcast(event{Kind: "assignment_checked", HikeID: hikeID, AssignmentID: assignmentID, Value: checked})
	return nil
}

func (s *Service) SetWorn(ctx context.Context, hikeID, assignmentID string, worn bool) error {
	_, err := s.db.Exec(ctx, `
		UPDATE hike_gear SET is_worn=$3 WHERE id=$1 AND hike_id=$2
	`, assignmentID, hikeID, worn)
	if err != nil {
		return err
	}
	s.broadcast(event{Kind: "assignment_worn", HikeID: hikeID, AssignmentID: assignmentID, Value: worn})
	return nil
}

// Summary recomputes the whole aggregate from scratch on every call; the
// assignment lists are small and nothing caches them.
func (s *Service) Summary(ctx context.Context, hikeID string) (Summary, error) {
	assignments, err := s.List(ctx, hikeID)
	if err != nil {
		return Summary{}, err
	}

	items := make([]weight.Item, 0, len(assignments))
	checked := 0
	for _, a := range assignments {
		if a.Checked {
			checked++
		}
		items = append(items, weight.Item{
			Name:     a.GearName,
			Category: a.CategoryName,
			WeightKg: a.WeightKg,
			Quantity: a.Quantity,
			IsWorn:   a.IsWorn,
			Checked:  a.Checked,
		})
	}

	food, err := s.foodTotals(ctx, hikeID)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Weights:      weight.Aggregate(items),
		ItemCount:    len(assignments),
		CheckedCount: checked,
		Food:         food,
	}, nil
}

func (s *Service) AddFood(ctx context.Context, input FoodItem) (FoodItem, error) {
	input.ID = uuid.NewString()
	if input.Quantity < 1 {
		input.Quantity = 1
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO hike_food (id, hike_id, user_id, name, meal_category, weight_kg, calories, quantity, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, input.ID, input.HikeID, input.UserID, input.Name, input.MealCategory,
		input.WeightKg, input.Calories, input.Quantity, input.Description)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return FoodItem{}, err
	}
	return input, nil
}

func (s *Service) ListFood(ctx context.Context, hikeID string) ([]FoodItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, hike_id, user_id, name, meal_category, weight_kg, COALESCE(calories,0),
		       COALESCE(quantity,1), COALESCE(description,''), created_at
		FROM hike_food WHERE hike_id=$1
		ORDER BY meal_category, name
	`, hikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []FoodItem
	for rows.Next() {
		var f FoodItem
		if err := rows.Scan(&f.ID, &f.HikeID, &f.UserID, &f.Name, &f.MealCategory, &f.WeightKg,
			&f.Calories, &f.Quantity, &f.Description, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, nil
}

func (s *Service) DeleteFood(ctx context.Context, hikeID, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM hike_food WHERE id=$1 AND hike_id=$2`, id, hikeID)
	return err
}

func (s *Service) foodTotals(ctx context.Context, hikeID string) (FoodTotals, error) {
	var totals FoodTotals
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(weight_kg * COALESCE(quantity,1)),0),
		       COALESCE(SUM(COALESCE(calories,0) * COALESCE(quantity,1)),0)
		FROM hike_food WHERE hike_id=$1
	`, hikeID).Scan(&totals.TotalKg, &totals.TotalCalories)
	return totals, err
}

func (s *Service) broadcast(e event) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(e)
	s.hub.Broadcast(e.HikeID, payload)
}
