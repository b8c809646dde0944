package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON_SetsContentTypeAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{"OK", http.StatusOK},
		{"BadRequest", http.StatusBadRequest},
		{"NotFound", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondJSON(recorder, tc.statusCode, map[string]string{"status": "x"})

			if recorder.Code != tc.statusCode {
				t.Errorf("expected status %d, got %d", tc.statusCode, recorder.Code)
			}
			assertContentType(t, recorder, "application/json")
		})
	}
}

func TestRespondError_WrapsMessage(t *testing.T) {
	recorder := httptest.NewRecorder()
	respondError(recorder, http.StatusBadRequest, "bad input")

	var resp map[string]string
	parseJSONResponse(t, recorder, &resp)
	if resp["error"] != "bad input" {
		t.Errorf("expected error 'bad input', got %q", resp["error"])
	}
}

func TestHealthCheck(t *testing.T) {
	recorder := httptest.NewRecorder()
	HealthCheck(recorder, httptest.NewRequest("GET", "/api/v1/health", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", recorder.Code)
	}

	var resp map[string]string
	parseJSONResponse(t, recorder, &resp)
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}
