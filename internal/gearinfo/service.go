package gearinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRateLimited means the upstream model refused the request for quota
// reasons. Callers should tell the user to enter the numbers by hand.
var ErrRateLimited = errors.New("gear lookup rate limited")

var openAIEndpoint = "https://api.openai.com/v1/chat/completions"

const cacheTTL = 24 * time.Hour

type Service struct {
	apiKey string
	client *http.Client
	rdb    *redis.Client
}

func NewService(apiKey string, rdb *redis.Client) *Service {
	return &Service{
		apiKey: apiKey,
		client: &http.Client{Timeout: 15 * time.Second},
		rdb:    rdb,
	}
}

// Lookup suggests weight and category for a gear name. Results are cached
// by name and category; without an API key the heuristic fallback answers
// directly so the endpoint works in development.
func (s *Service) Lookup(ctx context.Context, name, category string) (Info, error) {
	if name == "" {
		return Info{}, errors.New("name required")
	}

	key := cacheKey(name, category)
	if cached, ok := s.fromCache(ctx, key); ok {
		return cached, nil
	}

	var info Info
	if s.apiKey == "" {
		info = mockInfo(name, category)
	} else {
		var err error
		info, err = s.askModel(ctx, name, category)
		if errors.Is(err, ErrRateLimited) {
			return Info{}, err
		}
		if err != nil {
			info = mockInfo(name, category)
		}
	}

	s.toCache(ctx, key, info)
	return info, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Type string `json:"type"`
		Code string `json:"code"`
	} `json:"error"`
}

func (s *Service) askModel(ctx context.Context, name, category string) (Info, error) {
	prompt := fmt.Sprintf(
		"Estimate metadata for the hiking gear item %q", name)
	if category != "" {
		prompt += fmt.Sprintf(" in category %q", category)
	}
	prompt += `. Reply with only a JSON object: {"weight_kg": number, "category": string, "description": string, "purpose": string, "volume": string, "sizes": string}.`

	body, _ := json.Marshal(chatRequest{
		Model: "gpt-4o-mini",
		Messages: []chatMessage{
			{Role: "system", Content: "You estimate typical weights of backpacking gear."},
			{Role: "user", Content: prompt},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		return Info{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Info{}, err
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusTooManyRequests {
		return Info{}, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		var parsed chatResponse
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error.Code == "insufficient_quota" {
			return Info{}, ErrRateLimited
		}
		return Info{}, fmt.Errorf("model returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Choices) == 0 {
		return Info{}, errors.New("unusable model response")
	}

	var suggestion struct {
		WeightKg    float64 `json:"weight_kg"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
		Purpose     string  `json:"purpose"`
		Volume      string  `json:"volume"`
		Sizes       string  `json:"sizes"`
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "`\n ")
	if err := json.Unmarshal([]byte(content), &suggestion); err != nil {
		return Info{}, errors.New("unusable model response")
	}

	return Info{
		Name:              name,
		SuggestedCategory: suggestion.Category,
		WeightKg:          suggestion.WeightKg,
		Description:       suggestion.Description,
		Purpose:           suggestion.Purpose,
		Volume:            suggestion.Volume,
		Sizes:             suggestion.Sizes,
		Source:            "ai",
	}, nil
}

// mockInfo keys off substrings of the item name so the same input always
// yields the same suggestion.
func mockInfo(name, category string) Info {
	lower := strings.ToLower(name)
	guesses := []struct {
		keyword  string
		category string
		weightKg float64
	}{
		{"tent", "Shelter", 1.8},
		{"tarp", "Shelter", 0.45},
		{"sleeping bag", "Sleep system", 0.9},
		{"quilt", "Sleep system", 0.65},
		{"pad", "Sleep system", 0.45},
		{"backpack", "Backpack", 1.4},
		{"pack", "Backpack", 1.4},
		{"stove", "Cooking", 0.35},
		{"pot", "Cooking", 0.2},
		{"filter", "Water", 0.09},
		{"bottle", "Water", 0.15},
		{"jacket", "Clothing", 0.4},
		{"headlamp", "Electronics", 0.09},
		{"battery", "Electronics", 0.2},
		{"poles", "Other", 0.5},
	}
	for _, g := range guesses {
		if strings.Contains(lower, g.keyword) {
			return Info{
				Name:              name,
				SuggestedCategory: g.category,
				WeightKg:          g.weightKg,
				Description:       "Typical weight for a " + g.keyword,
				Source:            "mock",
			}
		}
	}

	suggested := category
	if suggested == "" {
		suggested = "Other"
	}
	return Info{
		Name:              name,
		SuggestedCategory: suggested,
		WeightKg:          0.3,
		Source:            "mock",
	}
}

func cacheKey(name, category string) string {
	return "gearinfo:" + strings.ToLower(strings.TrimSpace(name)) + ":" + strings.ToLower(strings.TrimSpace(category))
}

func (s *Service) fromCache(ctx context.Context, key string) (Info, bool) {
	if s.rdb == nil {
		return Info{}, false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return Info{}, false
	}
	var info Info
	if err := json.Unmarshal(raw, &info); err != nil {
		return Info{}, false
	}
	return info, true
}

func (s *Service) toCache(ctx context.Context, key string, info Info) {
	if s.rdb == nil {
		return
	}
	raw, _ := json.Marshal(info)
	s.rdb.Set(ctx, key, raw, cacheTTL)
}
