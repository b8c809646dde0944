package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/facewatch/facewatch/internal/capture"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/facewatch/facewatch/internal/monitor"
)

// stubSource yields a fixed 320x240 frame on every grab.
type stubSource struct{}

func (stubSource) Grab(ctx context.Context) (*capture.Frame, error) {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return &capture.Frame{Image: img, Data: buf.Bytes(), Width: 320, Height: 240}, nil
}

func (stubSource) Close() error { return nil }

// setupMockService creates a mock recognition service for handler tests.
func setupMockService(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for pattern, handler := range routes {
		mux.HandleFunc(pattern, handler)
	}
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// newTestClient creates an API client pointed at a mock service.
func newTestClient(t *testing.T, server *httptest.Server) *faceapi.Client {
	t.Helper()
	client, err := faceapi.NewClient(server.URL)
	if err != nil {
		t.Fatalf("failed to create API client: %v", err)
	}
	return client
}

// newTestSession creates an idle session against a mock service.
func newTestSession(t *testing.T, server *httptest.Server) *monitor.Session {
	t.Helper()
	session := monitor.New(stubSource{}, newTestClient(t, server), monitor.Options{
		Threshold: 0.35,
		Interval:  10 * time.Millisecond,
	})
	t.Cleanup(session.Stop)
	return session
}

func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
}

func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, want int) {
	t.Helper()
	if recorder.Code != want {
		t.Errorf("expected status %d, got %d", want, recorder.Code)
	}
}

func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got := recorder.Header().Get("Content-Type"); got != want {
		t.Errorf("expected Content-Type '%s', got '%s'", want, got)
	}
}

// waitForCondition polls until the condition holds or fails the test.
func waitForCondition(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
