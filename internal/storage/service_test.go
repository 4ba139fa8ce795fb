package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
)

var errSave = errors.New("save error")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestSaveWritesFileAndRecord(t *testing.T) {
	mock := newMock(t)
	dir := t.TempDir()

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "hike-1", pgxmock.AnyArg(), "photo").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock, dir, "http://localhost:8080")
	url, err := svc.Save(context.Background(), "user-1", "hike-1", "summit view.jpg", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/files/hike-1/") {
		t.Fatalf("unexpected url: %s", url)
	}
	if !strings.HasSuffix(url, "-summit_view.jpg") {
		t.Fatalf("expected sanitized timestamped name, got %s", url)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "hike-1"))
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one stored file: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "hike-1", entries[0].Name()))
	if err != nil || string(data) != "fake image bytes" {
		t.Fatalf("stored content mismatch: %v", err)
	}
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	svc := NewService(nil, t.TempDir(), "http://localhost:8080")
	_, err := svc.Save(context.Background(), "user-1", "hike-1", "malware.exe", strings.NewReader("x"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSaveStripsPathTraversal(t *testing.T) {
	mock := newMock(t)
	dir := t.TempDir()

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "hike-1", pgxmock.AnyArg(), "photo").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := NewService(mock, dir, "http://localhost:8080")
	url, err := svc.Save(context.Background(), "user-1", "hike-1", "../../etc/evil.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if strings.Contains(url, "..") {
		t.Fatalf("traversal leaked into url: %s", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "hike-1")); err != nil {
		t.Fatalf("file not stored under hike dir: %v", err)
	}
}

func TestSaveRejectsTraversalHikeID(t *testing.T) {
	dir := t.TempDir()

	svc := NewService(nil, dir, "http://localhost:8080")
	for _, id := range []string{"../../outside", "a/b", "a\\b", "..", ""} {
		if _, err := svc.Save(context.Background(), "user-1", id, "a.png", strings.NewReader("x")); !errors.Is(err, ErrInvalidHikeID) {
			t.Fatalf("hike id %q: expected ErrInvalidHikeID, got %v", id, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 0 {
		t.Fatalf("nothing may be written for a rejected hike id: %v %d", err, len(entries))
	}
}

func TestSaveRecordFailure(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(`INSERT INTO storage_objects`).
		WillReturnError(errSave)

	svc := NewService(mock, t.TempDir(), "http://localhost:8080")
	if _, err := svc.Save(context.Background(), "user-1", "hike-1", "a.png", strings.NewReader("x")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestListObjects(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT url FROM storage_objects`).
		WithArgs("user-1", "hike-1").
		WillReturnRows(pgxmock.NewRows([]string{"url"}).
			AddRow("http://localhost:8080/files/hike-1/2-b.jpg").
			AddRow("http://localhost:8080/files/hike-1/1-a.jpg"))

	svc := NewService(mock, t.TempDir(), "http://localhost:8080")
	urls, err := svc.ListObjects(context.Background(), "user-1", "hike-1")
	if err != nil || len(urls) != 2 {
		t.Fatalf("list: %v", err)
	}
}
