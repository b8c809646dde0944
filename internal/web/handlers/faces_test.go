package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFacesHandler_List(t *testing.T) {
	server := setupMockService(t, map[string]http.HandlerFunc{
		"/api/faces": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok": true, "faces": [
				{"name": "alice", "personnel_id": "E-17", "samples": 2},
				{"name": "bob", "samples": 1}
			]}`))
		},
	})
	handler := NewFacesHandler(newTestClient(t, server))

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/v1/faces", nil))

	assertStatusCode(t, recorder, http.StatusOK)

	var resp struct {
		Faces []struct {
			Name        string `json:"name"`
			PersonnelID string `json:"personnel_id"`
			Samples     int    `json:"samples"`
		} `json:"faces"`
	}
	parseJSONResponse(t, recorder, &resp)

	if len(resp.Faces) != 2 {
		t.Fatalf("expected 2 faces, got %d", len(resp.Faces))
	}
	if resp.Faces[0].Name != "alice" || resp.Faces[0].Samples != 2 {
		t.Errorf("unexpected first face: %+v", resp.Faces[0])
	}
}

func TestFacesHandler_List_EmptyIsNotNull(t *testing.T) {
	server := setupMockService(t, map[string]http.HandlerFunc{
		"/api/faces": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok": true, "faces": []}`))
		},
	})
	handler := NewFacesHandler(newTestClient(t, server))

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/v1/faces", nil))

	assertStatusCode(t, recorder, http.StatusOK)
	if body := recorder.Body.String(); body == "" || body[0] == 'n' {
		t.Errorf("expected JSON object with empty array, got %q", body)
	}
}

func TestFacesHandler_List_PropagatesServiceDetail(t *testing.T) {
	server := setupMockService(t, map[string]http.HandlerFunc{
		"/api/faces": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"detail": "not allowed"}`))
		},
	})
	handler := NewFacesHandler(newTestClient(t, server))

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/v1/faces", nil))

	assertStatusCode(t, recorder, http.StatusForbidden)

	var resp map[string]string
	parseJSONResponse(t, recorder, &resp)
	if resp["error"] != "not allowed" {
		t.Errorf("expected detail 'not allowed', got %q", resp["error"])
	}
}

func TestFacesHandler_List_ServiceUnreachable(t *testing.T) {
	server := setupMockService(t, nil)
	client := newTestClient(t, server)
	server.Close() // service down

	handler := NewFacesHandler(client)

	recorder := httptest.NewRecorder()
	handler.List(recorder, httptest.NewRequest("GET", "/api/v1/faces", nil))

	assertStatusCode(t, recorder, http.StatusBadGateway)
}
