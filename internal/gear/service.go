package gear

import (
	"context"
	"errors"

	"backend-trailpack/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateCategory(ctx context.Context, userID, name string) (Category, error) {
	if name == "" {
		return Category{}, errors.New("category name required")
	}
	cat := Category{ID: uuid.NewString(), UserID: userID, Name: name}
	row := s.db.QueryRow(ctx, `
		INSERT INTO categories (id, user_id, name, usage_count)
		VALUES ($1,$2,$3,0)
		RETURNING created_at
	`, cat.ID, cat.UserID, cat.Name)
	if err := row.Scan(&cat.CreatedAt); err != nil {
		return Category{}, err
	}
	return cat, nil
}

func (s *Service) Categories(ctx context.Context, userID string) ([]Category, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, COALESCE(usage_count,0), created_at
		FROM categories WHERE user_id=$1
		ORDER BY usage_count DESC, name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.UsageCount, &c.CreatedAt); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func (s *Service) DeleteCategory(ctx context.Context, userID, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}

func (s *Service) CreateGear(ctx context.Context, input GearItem) (GearItem, error) {
	input.ID = uuid.NewString()
	if input.Quantity < 1 {
		input.Quantity = 1
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO gear_items (id, user_id, name, description, category_id, weight_kg, quantity, is_worn, image_url, location, notes, volume, sizes, purpose)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at
	`, input.ID, input.UserID, input.Name, input.Description, nullIfEmpty(input.CategoryID),
		input.WeightKg, input.Quantity, input.IsWorn, input.ImageURL, input.Location,
		input.Notes, input.Volume, input.Sizes, input.Purpose)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return GearItem{}, err
	}

	if input.CategoryID != "" {
		// usage counter is advisory; a failed bump does not fail the create
		_, _ = s.db.Exec(ctx, `
			UPDATE categories SET usage_count = COALESCE(usage_count,0) + 1 WHERE id=$1
		`, input.CategoryID)
	}
	return input, nil
}

func (s *Service) UpdateGear(ctx context.Context, userID, id string, patch GearItem) (GearItem, error) {
	item, err := s.GetGear(ctx, userID, id)
	if err != nil {
		return GearItem{}, err
	}
	if patch.Name != "" {
		item.Name = patch.Name
	}
	if patch.Description != "" {
		item.Description = patch.Description
	}
	if patch.CategoryID != "" {
		item.CategoryID = patch.CategoryID
	}
	if patch.WeightKg != 0 {
		item.WeightKg = patch.WeightKg
	}
	if patch.Quantity != 0 {
		item.Quantity = patch.Quantity
	}
	item.IsWorn = patch.IsWorn
	if patch.ImageURL != "" {
		item.ImageURL = patch.ImageURL
	}
	if patch.Location != "" {
		item.Location = patch.Location
	}
	if patch.Notes != "" {
		item.Notes = patch.Notes
	}
	if patch.Volume != "" {
		item.Volume = patch.Volume
	}
	if patch.Sizes != "" {
		item.Sizes = patch.Sizes
	}
	if patch.Purpose != "" {
		item.Purpose = patch.Purpose
	}

	_, err = s.db.Exec(ctx, `
		UPDATE gear_items
		SET name=$3, description=$4, category_id=$5, weight_kg=$6, quantity=$7, is_worn=$8,
		    image_url=$9, location=$10, notes=$11, volume=$12, sizes=$13, purpose=$14
		WHERE id=$1 AND user_id=$2
	`, item.ID, userID, item.Name, item.Description, nullIfEmpty(item.CategoryID), item.WeightKg,
		item.Quantity, item.IsWorn, item.ImageURL, item.Location, item.Notes, item.Volume,
		item.Sizes, item.Purpose)
	if err != nil {
		return GearItem{}, err
	}
	return item, nil
}

func (s *Service) GetGear(ctx context.Context, userID, id string) (GearItem, error) {
	row := s.db.QueryRow(ctx, `
		SELECT g.id, g.user_id, g.name, COALESCE(g.description,''), COALESCE(g.category_id::text,''), COALESCE(c.name,''),
		       g.weight_kg, COALESCE(g.quantity,1), COALESCE(g.is_worn,false), COALESCE(g.image_url,''),
		       COALESCE(g.location,''), COALESCE(g.notes,''), COALESCE(g.volume,''), COALESCE(g.sizes,''),
		       COALESCE(g.purpose,''), g.created_at
		FROM gear_items g
		LEFT JOIN categories c ON c.id = g.category_id
		WHERE g.id=$1 AND g.user_id=$2
	`, id, userID)
	return scanGear(row)
}

func (s *Service) ListGear(ctx context.Context, userID string) ([]GearItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT g.id, g.user_id, g.name, COALESCE(g.description,''), COALESCE(g.category_id::text,''), COALESCE(c.name,''),
		       g.weight_kg, COALESCE(g.quantity,1), COALESCE(g.is_worn,false), COALESCE(g.image_url,''),
		       COALESCE(g.location,''), COALESCE(g.notes,''), COALESCE(g.volume,''), COALESCE(g.sizes,''),
		       COALESCE(g.purpose,''), g.created_at
		FROM gear_items g
		LEFT JOIN categories c ON c.id = g.category_id
		WHERE g.user_id=$1
		ORDER BY c.name NULLS LAST, g.name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GearItem
	for rows.Next() {
		item, err := scanGear(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Service) DeleteGear(ctx context.Context, userID, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM gear_items WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGear(row rowScanner) (GearItem, error) {
	var item GearItem
	if err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Description, &item.CategoryID,
		&item.CategoryName, &item.WeightKg, &item.Quantity, &item.IsWorn, &item.ImageURL,
		&item.Location, &item.Notes, &item.Volume, &item.Sizes, &item.Purpose, &item.CreatedAt); err != nil {
		return GearItem{}, err
	}
	return item, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
