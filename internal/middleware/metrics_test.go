package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// recordingCollector はStatusRecorderの記録モック。
type recordingCollector struct {
	mu       sync.Mutex
	statuses []int
}

func (c *recordingCollector) RecordHTTPStatus(statusCode int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = append(c.statuses, statusCode)
}

func TestMetricsMiddleware_RecordsStatusCode(t *testing.T) {
	collector := &recordingCollector{}

	handler := NewMetricsMiddleware(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if len(collector.statuses) != 1 {
		t.Fatalf("recorded statuses = %d, want 1", len(collector.statuses))
	}
	if collector.statuses[0] != http.StatusNotFound {
		t.Errorf("recorded status = %d, want %d", collector.statuses[0], http.StatusNotFound)
	}
}

func TestMetricsMiddleware_DefaultsTo200(t *testing.T) {
	collector := &recordingCollector{}

	handler := NewMetricsMiddleware(collector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if len(collector.statuses) != 1 || collector.statuses[0] != http.StatusOK {
		t.Errorf("recorded statuses = %v, want [200]", collector.statuses)
	}
}
