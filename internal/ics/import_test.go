package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/palisadeengineering/timeaudit/internal/block"
	"github.com/palisadeengineering/timeaudit/internal/db"
)

func TestImporter_Sync(t *testing.T) {
	body := feed(
		"UID:evt-1\r\nSUMMARY:Team sync\r\nDTSTART:20260316T090000Z\r\nDTEND:20260316T100000Z\r\n",
		"UID:evt-2\r\nSUMMARY:Weekly 1:1\r\nDTSTART:20260317T140000Z\r\nDTEND:20260317T143000Z\r\n" +
			"RRULE:FREQ=WEEKLY;COUNT=4\r\n",
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}
	defer func() { _ = repo.Close() }()

	imp := NewImporter(repo)
	ctx := context.Background()

	rangeStart := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC)

	// evt-1 once, evt-2 once within this week.
	n, err := imp.Sync(ctx, srv.URL, rangeStart, rangeEnd)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Sync wrote %d blocks, want 2", n)
	}

	blocks, err := repo.ListBlocksByDateRange(ctx, rangeStart, rangeEnd)
	if err != nil {
		t.Fatalf("ListBlocksByDateRange failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	for _, b := range blocks {
		if b.Source != block.SourceExternal {
			t.Errorf("block %q has source %s, want external", b.ActivityName, b.Source)
		}
	}

	// Re-sync must update in place, not duplicate.
	if _, err := imp.Sync(ctx, srv.URL, rangeStart, rangeEnd); err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	blocks, err = repo.ListBlocksByDateRange(ctx, rangeStart, rangeEnd)
	if err != nil {
		t.Fatalf("ListBlocksByDateRange failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Errorf("got %d blocks after re-sync, want 2", len(blocks))
	}
}

func TestImporter_SyncBadURL(t *testing.T) {
	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating repo: %v", err)
	}
	defer func() { _ = repo.Close() }()

	imp := NewImporter(repo)
	start := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	if _, err := imp.Sync(context.Background(), "http://127.0.0.1:1/feed.ics", start, start); err == nil {
		t.Error("expected error for unreachable feed")
	}
}
