package journal

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

const logSelect = `
	SELECT id, hike_id, date, title,
	       COALESCE(entry_time,''), COALESCE(location,''), COALESCE(notes,''),
	       COALESCE(weather,''), COALESCE(temperature,''),
	       COALESCE(conditions,'{}'), COALESCE(mood,0), COALESCE(difficulty,0),
	       COALESCE(distance_km,0), COALESCE(images,'{}'), created_at
	FROM hike_logs
`

func (s *Service) Create(ctx context.Context, input Log) (Log, error) {
	if input.Title == "" {
		return Log{}, errors.New("title required")
	}
	if input.Date.IsZero() {
		return Log{}, errors.New("date required")
	}
	if err := validRating(input.Mood); err != nil {
		return Log{}, err
	}
	if err := validRating(input.Difficulty); err != nil {
		return Log{}, err
	}
	if !validWeather(input.Weather) {
		return Log{}, errors.New("invalid weather")
	}
	input.ID = uuid.NewString()
	if input.Conditions == nil {
		input.Conditions = []string{}
	}
	input.Images = []string{}
	row := s.db.QueryRow(ctx, `
		INSERT INTO hike_logs
			(id, hike_id, date, title, entry_time, location, notes,
			 weather, temperature, conditions, mood, difficulty, distance_km, images)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING created_at
	`, input.ID, input.HikeID, input.Date, input.Title,
		input.Time, input.Location, input.Notes,
		input.Weather, input.Temperature, input.Conditions,
		input.Mood, input.Difficulty, input.DistanceKm, input.Images)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Log{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, hikeID, id string) (Log, error) {
	row := s.db.QueryRow(ctx, logSelect+` WHERE id=$1 AND hike_id=$2`, id, hikeID)
	return scanLog(row)
}

// List returns a hike's journal newest entry first.
func (s *Service) List(ctx context.Context, hikeID string) ([]Log, error) {
	rows, err := s.db.Query(ctx, logSelect+` WHERE hike_id=$1 ORDER BY date DESC, created_at DESC`, hikeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []Log
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (s *Service) Update(ctx context.Context, hikeID, id string, update LogUpdate) (Log, error) {
	l, err := s.Get(ctx, hikeID, id)
	if err != nil {
		return Log{}, err
	}
	if update.Date != nil {
		l.Date = *update.Date
	}
	if update.Title != nil {
		if *update.Title == "" {
			return Log{}, errors.New("title required")
		}
		l.Title = *update.Title
	}
	if update.Time != nil {
		l.Time = *update.Time
	}
	if update.Location != nil {
		l.Location = *update.Location
	}
	if update.Notes != nil {
		l.Notes = *update.Notes
	}
	if update.Weather != nil {
		if !validWeather(*update.Weather) {
			return Log{}, errors.New("invalid weather")
		}
		l.Weather = *update.Weather
	}
	if update.Temperature != nil {
		l.Temperature = *update.Temperature
	}
	if update.Conditions != nil {
		l.Conditions = update.Conditions
	}
	if update.Mood != nil {
		if err := validRating(*update.Mood); err != nil {
			return Log{}, err
		}
		l.Mood = *update.Mood
	}
	if update.Difficulty != nil {
		if err := validRating(*update.Difficulty); err != nil {
			return Log{}, err
		}
		l.Difficulty = *update.Difficulty
	}
	if update.DistanceKm != nil {
		l.DistanceKm = *update.DistanceKm
	}

	_, err = s.db.Exec(ctx, `
		UPDATE hike_logs
		SET date=$3, title=$4, entry_time=$5, location=$6, notes=$7,
		    weather=$8, temperature=$9, conditions=$10, mood=$11,
		    difficulty=$12, distance_km=$13
		WHERE id=$1 AND hike_id=$2
	`, l.ID, l.HikeID, l.Date, l.Title, l.Time, l.Location, l.Notes,
		l.Weather, l.Temperature, l.Conditions, l.Mood, l.Difficulty, l.DistanceKm)
	if err != nil {
		return Log{}, err
	}
	return l, nil
}

// AddImage appends a single image URL to a log. Uploads land one at a
// time so there is no need to rewrite the whole array.
func (s *Service) AddImage(ctx context.Context, hikeID, id, url string) error {
	if url == "" {
		return errors.New("url required")
	}
	_, err := s.db.Exec(ctx, `
		UPDATE hike_logs SET images = array_append(COALESCE(images,'{}'), $3)
		WHERE id=$1 AND hike_id=$2
	`, id, hikeID, url)
	return err
}

func (s *Service) Delete(ctx context.Context, hikeID, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM hike_logs WHERE id=$1 AND hike_id=$2`, id, hikeID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (Log, error) {
	var l Log
	err := row.Scan(&l.ID, &l.HikeID, &l.Date, &l.Title,
		&l.Time, &l.Location, &l.Notes,
		&l.Weather, &l.Temperature,
		&l.Conditions, &l.Mood, &l.Difficulty,
		&l.DistanceKm, &l.Images, &l.CreatedAt)
	return l, err
}

// validRating checks a 1-5 rating. Zero is accepted and means unset, the
// same value the nullable mood/difficulty columns read back through COALESCE.
func validRating(v int) error {
	if v < 0 || v > 5 {
		return errors.New("rating must be between 1 and 5, or 0 when unset")
	}
	return nil
}

func validWeather(w string) bool {
	switch w {
	case "", "sunny", "partly_cloudy", "cloudy", "rainy", "snowy", "windy", "foggy":
		return true
	}
	return false
}
