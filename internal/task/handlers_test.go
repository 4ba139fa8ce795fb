package task

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"backend-trailpack/internal/hike"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passthroughAuth(c *fiber.Ctx) error {
	c.Locals("user_id", "user-1")
	return c.Next()
}

func allowHike(c *fiber.Ctx) error {
	return c.Next()
}

func TestTaskHandlersCreateListToggle(t *testing.T) {
	mock := newMock(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), NewService(mock, nil), passthroughAuth, allowHike)

	mock.ExpectQuery(`INSERT INTO hike_tasks`).
		WithArgs(pgxmock.AnyArg(), "hike-1", "Pack bear canister").
		WillReturnRows(pgxmock.NewRows([]string{"position", "created_at"}).AddRow(0, time.Now()))

	body, _ := json.Marshal(map[string]string{"description": "Pack bear canister"})
	req := httptest.NewRequest(http.MethodPost, "/hikes/hike-1/tasks", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	mock.ExpectQuery(`SELECT id, hike_id, description`).
		WithArgs("hike-1").
		WillReturnRows(pgxmock.NewRows(taskColumns).
			AddRow("t-1", "hike-1", "Pack bear canister", false, 0, time.Now()))

	req = httptest.NewRequest(http.MethodGet, "/hikes/hike-1/tasks", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	mock.ExpectExec(`UPDATE hike_tasks SET completed`).
		WithArgs("t-1", "hike-1", true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	body, _ = json.Marshal(map[string]bool{"completed": true})
	req = httptest.NewRequest(http.MethodPut, "/hikes/hike-1/tasks/t-1/completed", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("toggle status: %v", err)
	}
}

func TestTaskHandlersReorder(t *testing.T) {
	mock := newMock(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), NewService(mock, nil), passthroughAuth, allowHike)

	ids := []string{"t-2", "t-1"}
	for i, id := range ids {
		mock.ExpectExec(`UPDATE hike_tasks SET position`).
			WithArgs(id, "hike-1", i).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	}

	body, _ := json.Marshal(map[string][]string{"task_ids": ids})
	req := httptest.NewRequest(http.MethodPut, "/hikes/hike-1/tasks/reorder", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("reorder status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTaskHandlersBadRequest(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), NewService(nil, nil), passthroughAuth, allowHike)

	req := httptest.NewRequest(http.MethodPost, "/hikes/hike-1/tasks", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for missing description")
	}

	req = httptest.NewRequest(http.MethodPut, "/hikes/hike-1/tasks/reorder", bytes.NewReader([]byte(`{"task_ids":[]}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for empty reorder")
	}
}

func TestTaskHandlersForeignHikeNotFound(t *testing.T) {
	mock := newMock(t)

	app := fiber.New()
	guard := hike.OwnershipMiddleware(hike.NewService(mock, ""))
	RegisterRoutes(app.Group("/hikes"), NewService(mock, nil), passthroughAuth, guard)

	mock.ExpectQuery(`SELECT 1 FROM hikes`).
		WithArgs("hike-not-mine", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}))

	req := httptest.NewRequest(http.MethodDelete, "/hikes/hike-not-mine/tasks/t-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for someone else's hike, got %v %d", err, resp.StatusCode)
	}

	// the delete itself must never have run
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected queries: %v", err)
	}
}

func TestTaskHandlersDelete(t *testing.T) {
	mock := newMock(t)

	app := fiber.New()
	RegisterRoutes(app.Group("/hikes"), NewService(mock, nil), passthroughAuth, allowHike)

	mock.ExpectExec(`DELETE FROM hike_tasks`).
		WithArgs("t-1", "hike-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	req := httptest.NewRequest(http.MethodDelete, "/hikes/hike-1/tasks/t-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v", err)
	}
}
