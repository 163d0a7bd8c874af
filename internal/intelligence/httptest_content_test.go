package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/lumina/internal/domain"
	"github.com/alexanderramin/lumina/internal/llm"
	"github.com/stretchr/testify/assert"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP integration test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

// TestContentService_DailyContent_WithHTTPTestServer runs the Ollama wire
// format through the client, retry loop and schema validation.
func TestContentService_DailyContent_WithHTTPTestServer(t *testing.T) {
	var hits atomic.Int32
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "test-model",
			"response": validContentJSON,
		})
	})
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	svc := NewContentService(llm.NewOllamaClient(cfg, nil), llm.RetryPolicy{Retries: 3, InitialDelay: 5 * time.Millisecond}, nil)

	got := svc.GenerateDailyContent(context.Background(), domain.DefaultProfile(), "RAG")

	assert.Equal(t, "Retrieval Augmented Generation", got.DayTitle)
	assert.Equal(t, int32(2), hits.Load())
}

func TestContentService_Curriculum_BackendDown(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.Endpoint = "http://127.0.0.1:1"
	svc := NewContentService(llm.NewOllamaClient(cfg, nil), llm.RetryPolicy{Retries: 1, InitialDelay: time.Millisecond}, nil)

	got := svc.GenerateCurriculum(context.Background(), domain.RoleCXO, "Strategic Decision Making", 7)

	assert.Equal(t, "CXO Acceleration Track", got.TrackName)
}

// A cancelled context ends a slow generation early with the unavailable
// module instead of waiting out the backend.
func TestContentService_DailyContent_ContextCancellation(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	})
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.TimeoutMs = 10000
	svc := NewContentService(llm.NewOllamaClient(cfg, nil), llm.RetryPolicy{Retries: 2, InitialDelay: 5 * time.Millisecond}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	got := svc.GenerateDailyContent(ctx, domain.DefaultProfile(), "RAG")

	assert.True(t, got.IsUnavailable())
	assert.Less(t, time.Since(start), 2*time.Second)
}
