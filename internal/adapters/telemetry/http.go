// Package telemetry provides Telemetry sinks: a no-op sink and an HTTP
// sink that posts usage events to a collector endpoint.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/textdrop/textdrop/internal/ports"
)

const eventsEndpoint = "/v1/events"

// sendTimeout bounds each event post independently of the run that
// produced it, so a cancelled paste still reports its terminal event.
const sendTimeout = 10 * time.Second

// Noop is a Telemetry sink that discards every event.
type Noop struct{}

// Emit discards the event.
func (Noop) Emit(ctx context.Context, event string, attrs map[string]string) {}

// event is the wire form of one usage event.
type event struct {
	Event      string            `json:"event"`
	OccurredAt string            `json:"occurred_at"`
	Attrs      map[string]string `json:"attrs,omitempty"`
}

// HTTPSink posts usage events to a collector over HTTP. Sends run on their
// own goroutines and failures are logged, never surfaced: telemetry must
// not slow down or fail a paste run.
type HTTPSink struct {
	baseURL string
	authKey string
	client  ports.HTTPClient
	logger  ports.Logger

	wg sync.WaitGroup
}

// NewHTTPSink creates a sink posting to baseURL. authKey may be empty.
func NewHTTPSink(baseURL, authKey string, client ports.HTTPClient, logger ports.Logger) *HTTPSink {
	if client == nil {
		client = &http.Client{Timeout: sendTimeout}
	}
	return &HTTPSink{baseURL: baseURL, authKey: authKey, client: client, logger: logger}
}

// Emit posts the event in the background.
func (s *HTTPSink) Emit(ctx context.Context, name string, attrs map[string]string) {
	body, err := json.Marshal(event{
		Event:      name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339Nano),
		Attrs:      attrs,
	})
	if err != nil {
		s.logger.Debug("telemetry marshal failed", ports.Err(err))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.send(body); err != nil {
			s.logger.Debug("telemetry send failed", ports.String("event", name), ports.Err(err))
		}
	}()
}

// Close waits for in-flight sends to finish.
func (s *HTTPSink) Close() {
	s.wg.Wait()
}

func (s *HTTPSink) send(body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+eventsEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.authKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.authKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
