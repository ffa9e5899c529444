package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/folioworks/folioworks/internal/content"
)

func TestEventsStream_DeliversInitialModel(t *testing.T) {
	r, _, store := newTestRouter()
	_ = store.Set(context.Background(), content.Collection, "hero", content.Document{"titleLine1": "Streamed"})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/api/content/hero/events", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		r.ServeHTTP(w, req)
		close(done)
	}()

	// give the handler time to write the immediate delivery, then hang up
	time.Sleep(100 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("stream handler did not return after client disconnect")
	}

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	body := w.Body.String()
	if !strings.Contains(body, "data: ") || !strings.Contains(body, "Streamed") {
		t.Fatalf("expected an immediate data event, got %q", body)
	}
}

func TestEventsStream_UnknownSection(t *testing.T) {
	r, _, _ := newTestRouter()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/content/nonsense/events", nil))
	assert.Equal(t, 404, w.Code)
}
