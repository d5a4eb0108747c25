package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/textdrop/textdrop/internal/ports"
)

type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

func TestHTTPSink_PostsEvent(t *testing.T) {
	type received struct {
		path string
		auth string
		body event
	}
	got := make(chan received, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		var e event
		if err := json.Unmarshal(b, &e); err != nil {
			t.Errorf("bad event payload: %v", err)
		}
		got <- received{path: r.URL.Path, auth: r.Header.Get("Authorization"), body: e}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, "secret", srv.Client(), mockLogger{})
	sink.Emit(context.Background(), "file_attached", map[string]string{"filename": "paste.1.txt"})
	sink.Close()

	select {
	case r := <-got:
		if r.path != eventsEndpoint {
			t.Errorf("path = %q, want %q", r.path, eventsEndpoint)
		}
		if r.auth != "Bearer secret" {
			t.Errorf("auth = %q, want bearer token", r.auth)
		}
		if r.body.Event != "file_attached" || r.body.Attrs["filename"] != "paste.1.txt" {
			t.Errorf("event = %+v", r.body)
		}
		if r.body.OccurredAt == "" {
			t.Error("OccurredAt not set")
		}
	default:
		t.Fatal("no event received after Close")
	}
}

func TestHTTPSink_ServerErrorIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewHTTPSink(srv.URL, "", srv.Client(), mockLogger{})
	sink.Emit(context.Background(), "paste_captured", nil)
	sink.Close() // must not panic or block
}

func TestNoop(t *testing.T) {
	Noop{}.Emit(context.Background(), "anything", nil)
}
