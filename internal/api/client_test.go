package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "dxview/internal/errors"
)

func dummyDebug(format string, args ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second, APIToken: "test-token"}, dummyDebug)
	return c, srv
}

func asAppError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

func TestFetchRecent(t *testing.T) {
	var gotDays, gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/recent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotDays = r.URL.Query().Get("days")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hits": [
				{"id": "a1", "path": "C:\\docs\\report.docx", "filename": "report.docx",
				 "extension": ".docx", "size": 2048, "modified_at": "2026-03-03T10:00:00"}
			],
			"total_hits": 1, "days": 7
		}`))
	})

	files, err := c.FetchRecent(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchRecent failed: %v", err)
	}
	if gotDays != "7" {
		t.Errorf("expected days=7 query parameter, got %q", gotDays)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("expected bearer token header, got %q", gotAuth)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].Filename != "report.docx" || files[0].Extension != ".docx" || files[0].Size != 2048 {
		t.Errorf("unexpected file: %+v", files[0])
	}
}

func TestFetchRecentEmptyHits(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits": [], "total_hits": 0, "days": 7}`))
	})

	files, err := c.FetchRecent(context.Background(), 7)
	if err != nil {
		t.Fatalf("empty result set must not be an error: %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", files)
	}
}

func TestFetchRecentMissingHitsField(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_hits": 0}`))
	})

	files, err := c.FetchRecent(context.Background(), 7)
	if err != nil {
		t.Fatalf("missing hits field must not be an error: %v", err)
	}
	if files == nil || len(files) != 0 {
		t.Errorf("expected empty slice for missing hits field, got %v", files)
	}
}

func TestFetchRecentErrorStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "search service unavailable"}`, http.StatusServiceUnavailable)
	})

	_, err := c.FetchRecent(context.Background(), 7)
	appErr := asAppError(t, err)
	if appErr.Type != apperrors.ErrorTypeNetwork {
		t.Errorf("expected network error, got %v", appErr.Type)
	}
	if appErr.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", appErr.Status)
	}
	if appErr.Message != "search service unavailable" {
		t.Errorf("expected backend detail message, got %q", appErr.Message)
	}
}

func TestFetchRecentMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	})

	_, err := c.FetchRecent(context.Background(), 7)
	appErr := asAppError(t, err)
	if appErr.Type != apperrors.ErrorTypeParse {
		t.Errorf("expected parse error, got %v", appErr.Type)
	}
}

func TestOpenFolder(t *testing.T) {
	var gotBody string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/open-folder" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Write([]byte(`{"success": true, "message": "opened"}`))
	})

	msg, err := c.OpenFolder(context.Background(), "C:\\docs\\report.docx")
	if err != nil {
		t.Fatalf("OpenFolder failed: %v", err)
	}
	if !msg.Success || msg.Message != "opened" {
		t.Errorf("unexpected message: %+v", msg)
	}
	if gotBody != `{"path":"C:\\docs\\report.docx"}` {
		t.Errorf("unexpected request body: %s", gotBody)
	}
}

func TestOpenFolderFailureWithDetail(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "file not found"}`))
	})

	_, err := c.OpenFolder(context.Background(), "C:\\gone.docx")
	appErr := asAppError(t, err)
	if appErr.Type != apperrors.ErrorTypeOpenFolder {
		t.Errorf("expected openfolder error, got %v", appErr.Type)
	}
	if appErr.Message != "file not found" {
		t.Errorf("expected backend detail message, got %q", appErr.Message)
	}
}

func TestOpenFolderFailureWithoutDetail(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{}`))
	})

	_, err := c.OpenFolder(context.Background(), "C:\\x.docx")
	appErr := asAppError(t, err)
	if appErr.Message != "could not open the folder" {
		t.Errorf("expected generic fallback message, got %q", appErr.Message)
	}
}

func TestSearch(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "minutes" || q.Get("extension") != ".docx" || q.Get("limit") != "20" {
			t.Errorf("unexpected query: %v", q)
		}
		w.Write([]byte(`{"hits": [{"path": "C:\\a.docx", "filename": "a.docx", "extension": ".docx"}],
			"total_hits": 1, "processing_time_ms": 4, "query": "minutes"}`))
	})

	res, err := c.Search(context.Background(), "minutes", SearchOptions{Limit: 20, Extension: ".docx"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.TotalHits != 1 || len(res.Hits) != 1 || res.Query != "minutes" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestStatsAndHealth(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/stats":
			w.Write([]byte(`{"total_documents": 1234, "is_indexing": true,
				"field_distribution": {"content": 1200}}`))
		case "/api/health":
			w.Write([]byte(`{"status": "healthy", "meilisearch": "connected"}`))
		default:
			http.NotFound(w, r)
		}
	})

	stats, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalDocuments != 1234 || !stats.IsIndexing {
		t.Errorf("unexpected stats: %+v", stats)
	}

	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Status != "healthy" || health.Meilisearch != "connected" {
		t.Errorf("unexpected health: %+v", health)
	}
}

func TestCrawlControl(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/crawl/start":
			w.Write([]byte(`{"success": true, "message": "crawl started"}`))
		case "/api/crawl/status":
			w.Write([]byte(`{"is_running": true, "files_processed": 42, "current_path": "C:\\docs"}`))
		default:
			http.NotFound(w, r)
		}
	})

	msg, err := c.StartCrawl(context.Background())
	if err != nil || !msg.Success {
		t.Fatalf("StartCrawl failed: %v %+v", err, msg)
	}

	status, err := c.CrawlStatus(context.Background())
	if err != nil {
		t.Fatalf("CrawlStatus failed: %v", err)
	}
	if !status.IsRunning || status.FilesProcessed != 42 {
		t.Errorf("unexpected status: %+v", status)
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close() // connection refused from here on

	c := New(Config{BaseURL: base, Timeout: time.Second}, dummyDebug)
	_, err := c.FetchRecent(context.Background(), 7)
	appErr := asAppError(t, err)
	if appErr.Type != apperrors.ErrorTypeNetwork || appErr.Status != 0 {
		t.Errorf("expected network error with status 0, got %+v", appErr)
	}
}
