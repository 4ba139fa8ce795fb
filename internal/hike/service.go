package hike

import (
	"context"
	"errors"
	"time"

	"backend-trailpack/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db      db.Querier
	baseURL string
}

func NewService(db db.Querier, publicBaseURL string) *Service {
	return &Service{db: db, baseURL: publicBaseURL}
}

func (s *Service) CreateHike(ctx context.Context, input Hike) (Hike, error) {
	input.ID = uuid.NewString()
	if input.Status == "" {
		input.Status = StatusPlanned
	}
	if !validStatus(input.Status) {
		return Hike{}, errors.New("invalid status")
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO hikes (id, user_id, name, description, start_date, end_date, type,
			start_location, end_location, distance_km, elevation_gain, difficulty_level, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at
	`, input.ID, input.UserID, input.Name, input.Description, timePtr(input.StartDate),
		timePtr(input.EndDate), input.Type, input.StartLocation, input.EndLocation,
		input.DistanceKm, input.ElevationGainM, input.DifficultyLevel, input.Status)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Hike{}, err
	}
	return input, nil
}

func (s *Service) UpdateHike(ctx context.Context, userID, id string, patch Hike) (Hike, error) {
	h, err := s.GetHike(ctx, userID, id)
	if err != nil {
		return Hike{}, err
	}
	if patch.Name != "" {
		h.Name = patch.Name
	}
	if patch.Description != "" {
		h.Description = patch.Description
	}
	if !patch.StartDate.IsZero() {
		h.StartDate = patch.StartDate
	}
	if !patch.EndDate.IsZero() {
		h.EndDate = patch.EndDate
	}
	if patch.Type != "" {
		h.Type = patch.Type
	}
	if patch.StartLocation != "" {
		h.StartLocation = patch.StartLocation
	}
	if patch.EndLocation != "" {
		h.EndLocation = patch.EndLocation
	}
	if patch.DistanceKm != 0 {
		h.DistanceKm = patch.DistanceKm
	}
	if patch.ElevationGainM != 0 {
		h.ElevationGainM = patch.ElevationGainM
	}
	if patch.DifficultyLevel != "" {
		h.DifficultyLevel = patch.DifficultyLevel
	}
	if patch.Status != "" {
		if !validStatus(patch.Status) {
			return Hike{}, errors.New("invalid status")
		}
		h.Status = patch.Status
	}
	if patch.RatingScore != 0 {
		h.RatingScore = patch.RatingScore
	}
	if patch.RatingText != "" {
		h.RatingText = patch.RatingText
	}
	if patch.CompletionNotes != "" {
		h.CompletionNotes = patch.CompletionNotes
	}
	if patch.Images != nil {
		h.Images = patch.Images
	}

	_, err = s.db.Exec(ctx, `
		UPDATE hikes
		SET name=$3, description=$4, start_date=$5, end_date=$6, type=$7,
		    start_location=$8, end_location=$9, distance_km=$10, elevation_gain=$11,
		    difficulty_level=$12, status=$13, rating_score=$14, rating_text=$15,
		    completion_notes=$16, images=$17
		WHERE id=$1 AND user_id=$2
	`, h.ID, userID, h.Name, h.Description, timePtr(h.StartDate), timePtr(h.EndDate),
		h.Type, h.StartLocation, h.EndLocation, h.DistanceKm, h.ElevationGainM,
		h.DifficultyLevel, h.Status, h.RatingScore, h.RatingText, h.CompletionNotes, h.Images)
	if err != nil {
		return Hike{}, err
	}
	return h, nil
}

// UpdateShare mutates only the sharing fields, minting the opaque token the
// first time sharing is enabled. The token survives disable/re-enable so old
// links keep working across toggles.
func (s *Service) UpdateShare(ctx context.Context, userID, id string, update ShareUpdate) (Hike, error) {
	h, err := s.GetHike(ctx, userID, id)
	if err != nil {
		return Hike{}, err
	}

	h.ShareEnabled = update.Enabled
	h.ShareExpiresAt = update.ExpiresAt
	h.SharePassword = update.Password
	h.ShareLogs = update.ShareLogs
	h.ShareGallery = update.ShareGallery
	if h.ShareID == "" && update.Enabled {
		h.ShareID = uuid.NewString()
	}

	_, err = s.db.Exec(ctx, `
		UPDATE hikes
		SET share_enabled=$3, share_id=$4, share_expires_at=$5, share_password=$6,
		    share_logs=$7, share_gallery=$8
		WHERE id=$1 AND user_id=$2
	`, h.ID, userID, h.ShareEnabled, nullIfEmpty(h.ShareID), timePtr(h.ShareExpiresAt),
		nullIfEmpty(h.SharePassword), h.ShareLogs, h.ShareGallery)
	if err != nil {
		return Hike{}, err
	}
	return s.withShareURL(h), nil
}

func (s *Service) GetHike(ctx context.Context, userID, id string) (Hike, error) {
	row := s.db.QueryRow(ctx, hikeSelect+` WHERE id=$1 AND user_id=$2`, id, userID)
	h, err := scanHike(row)
	if err != nil {
		return Hike{}, err
	}
	return s.withShareURL(h), nil
}

// Owns verifies that a hike belongs to the given user. Sub-resource routes
// (tasks, logs, packing, uploads) gate on this before touching hike-scoped rows.
func (s *Service) Owns(ctx context.Context, userID, id string) error {
	var one int
	if err := s.db.QueryRow(ctx, `SELECT 1 FROM hikes WHERE id=$1 AND user_id=$2`, id, userID).Scan(&one); err != nil {
		return errors.New("hike not found")
	}
	return nil
}

// GetByShareToken looks a hike up by its share token, ignoring ownership.
// Callers gate on the share fields before exposing anything.
func (s *Service) GetByShareToken(ctx context.Context, token string) (Hike, error) {
	row := s.db.QueryRow(ctx, hikeSelect+` WHERE share_id=$1`, token)
	h, err := scanHike(row)
	if err != nil {
		return Hike{}, err
	}
	return s.withShareURL(h), nil
}

func (s *Service) ListHikes(ctx context.Context, userID string) ([]Hike, error) {
	rows, err := s.db.Query(ctx, hikeSelect+` WHERE user_id=$1 ORDER BY start_date DESC NULLS LAST, created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hikes []Hike
	for rows.Next() {
		h, err := scanHike(rows)
		if err != nil {
			return nil, err
		}
		hikes = append(hikes, s.withShareURL(h))
	}
	return hikes, nil
}

func (s *Service) DeleteHike(ctx context.Context, userID, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM hikes WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}

const hikeSelect = `
	SELECT id, user_id, name, COALESCE(description,''), start_date, end_date, COALESCE(type,''),
	       COALESCE(start_location,''), COALESCE(end_location,''), COALESCE(distance_km,0),
	       COALESCE(elevation_gain,0), COALESCE(difficulty_level,''), COALESCE(status,'planned'),
	       COALESCE(rating_score,0), COALESCE(rating_text,''), COALESCE(completion_notes,''),
	       COALESCE(images,'{}'), COALESCE(share_enabled,false), COALESCE(share_id::text,''),
	       share_expires_at, COALESCE(share_password,''), COALESCE(share_logs,false),
	       COALESCE(share_gallery,false), created_at
	FROM hikes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHike(row rowScanner) (Hike, error) {
	var h Hike
	var startDate, endDate, shareExpires *time.Time
	if err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &startDate, &endDate, &h.Type,
		&h.StartLocation, &h.EndLocation, &h.DistanceKm, &h.ElevationGainM, &h.DifficultyLevel,
		&h.Status, &h.RatingScore, &h.RatingText, &h.CompletionNotes, &h.Images, &h.ShareEnabled,
		&h.ShareID, &shareExpires, &h.SharePassword, &h.ShareLogs, &h.ShareGallery, &h.CreatedAt); err != nil {
		return Hike{}, err
	}
	if startDate != nil {
		h.StartDate = *startDate
	}
	if endDate != nil {
		h.EndDate = *endDate
	}
	if shareExpires != nil {
		h.ShareExpiresAt = *shareExpires
	}
	return h, nil
}

func (s *Service) withShareURL(h Hike) Hike {
	if h.ShareID != "" && s.baseURL != "" {
		h.ShareURL = s.baseURL + "/shared/" + h.ShareID
	}
	return h
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
