package handlers

import (
	"net/http"

	"github.com/facewatch/facewatch/internal/faceapi"
)

// FacesHandler proxies the registered-identity list from the recognition
// service so the viewer page can show who is enrolled.
type FacesHandler struct {
	client *faceapi.Client
}

// NewFacesHandler creates a faces handler.
func NewFacesHandler(client *faceapi.Client) *FacesHandler {
	return &FacesHandler{client: client}
}

// List returns all registered identities.
func (h *FacesHandler) List(w http.ResponseWriter, r *http.Request) {
	faces, err := h.client.ListFaces(r.Context())
	if err != nil {
		if apiErr, ok := faceapi.IsAPIError(err); ok {
			respondError(w, apiErr.StatusCode, apiErr.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "recognition service unavailable")
		return
	}
	if faces == nil {
		faces = []faceapi.FaceSummary{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"faces": faces})
}
