package hike

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passthroughAuth(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestHikeHandlersCreateGetList(t *testing.T) {
	mock := newMock(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), NewService(mock, ""), passthroughAuth("user-1"))

	mock.ExpectQuery(`INSERT INTO hikes`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Overnight loop", "", pgxmock.AnyArg(), pgxmock.AnyArg(),
			"", "", "", 0.0, 0.0, "", "planned").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	body, _ := json.Marshal(Hike{Name: "Overnight loop"})
	req := httptest.NewRequest(http.MethodPost, "/hikes/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	mock.ExpectQuery(`SELECT id, user_id, name`).
		WithArgs("hike-1", "user-1").
		WillReturnRows(pgxmock.NewRows(hikeColumns).AddRow(hikeRow("hike-1", "user-1", "Overnight loop", "planned")...))

	req = httptest.NewRequest(http.MethodGet, "/hikes/hike-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}

	mock.ExpectQuery(`SELECT id, user_id, name`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(hikeColumns).AddRow(hikeRow("hike-1", "user-1", "Overnight loop", "planned")...))

	req = httptest.NewRequest(http.MethodGet, "/hikes/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}
}

func TestHikeHandlersBadRequest(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), NewService(nil, ""), passthroughAuth("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/hikes/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestHikeHandlersShare(t *testing.T) {
	mock := newMock(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), NewService(mock, "https://trailpack.example"), passthroughAuth("user-1"))

	mock.ExpectQuery(`SELECT id, user_id, name`).
		WithArgs("hike-1", "user-1").
		WillReturnRows(pgxmock.NewRows(hikeColumns).AddRow(hikeRow("hike-1", "user-1", "Hike", "planned")...))
	mock.ExpectExec(`UPDATE hikes`).
		WithArgs("hike-1", "user-1", true, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), false, true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	body, _ := json.Marshal(ShareUpdate{Enabled: true, ShareGallery: true})
	req := httptest.NewRequest(http.MethodPut, "/hikes/hike-1/share", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("share status: %v", err)
	}

	var h Hike
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if h.ShareURL == "" {
		t.Fatalf("expected share url in response")
	}
}

func TestOwnershipMiddleware(t *testing.T) {
	mock := newMock(t)

	app := fiber.New()
	app.Use(passthroughAuth("user-1"))
	app.Get("/hikes/:hikeID/items", OwnershipMiddleware(NewService(mock, "")), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	mock.ExpectQuery(`SELECT 1 FROM hikes`).
		WithArgs("hike-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(1))

	req := httptest.NewRequest(http.MethodGet, "/hikes/hike-1/items", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("owner status: %v %d", err, resp.StatusCode)
	}

	mock.ExpectQuery(`SELECT 1 FROM hikes`).
		WithArgs("hike-2", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}))

	req = httptest.NewRequest(http.MethodGet, "/hikes/hike-2/items", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for someone else's hike, got %d", resp.StatusCode)
	}
}

func TestHikeHandlersUpdateDelete(t *testing.T) {
	mock := newMock(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), NewService(mock, ""), passthroughAuth("user-1"))

	mock.ExpectQuery(`SELECT id, user_id, name`).
		WithArgs("hike-1", "user-1").
		WillReturnRows(pgxmock.NewRows(hikeColumns).AddRow(hikeRow("hike-1", "user-1", "Hike", "planned")...))
	mock.ExpectExec(`UPDATE hikes`).
		WithArgs("hike-1", "user-1", "Renamed", "", pgxmock.AnyArg(), pgxmock.AnyArg(), "", "", "",
			0.0, 0.0, "", "planned", 0, "", "", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	body, _ := json.Marshal(Hike{Name: "Renamed"})
	req := httptest.NewRequest(http.MethodPut, "/hikes/hike-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %v", err)
	}

	mock.ExpectExec(`DELETE FROM hikes`).
		WithArgs("hike-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	req = httptest.NewRequest(http.MethodDelete, "/hikes/hike-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v", err)
	}
}
