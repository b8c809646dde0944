package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/facewatch/facewatch/internal/capture"
	"github.com/facewatch/facewatch/internal/monitor"
)

// MonitorHandler exposes the polling session: its toggle, its status and the
// annotated live view.
type MonitorHandler struct {
	session *monitor.Session
	// streamInterval paces the MJPEG output; it matches the polling cadence
	// since the annotated frame only changes once per cycle.
	streamInterval time.Duration
}

// NewMonitorHandler creates a monitor handler around a session.
func NewMonitorHandler(session *monitor.Session, streamInterval time.Duration) *MonitorHandler {
	if streamInterval <= 0 {
		streamInterval = time.Second
	}
	return &MonitorHandler{session: session, streamInterval: streamInterval}
}

// Status returns the current match state and cycle counters.
func (h *MonitorHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.session.Status())
}

// Start toggles the session into the active state.
func (h *MonitorHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.session.Start()
	respondJSON(w, http.StatusOK, h.session.Status())
}

// Stop toggles the session idle, clearing the overlay and match state.
func (h *MonitorHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.session.Stop()
	respondJSON(w, http.StatusOK, h.session.Status())
}

// Frame serves the latest annotated frame as a single JPEG.
func (h *MonitorHandler) Frame(w http.ResponseWriter, r *http.Request) {
	annotated := h.session.Annotated()
	if annotated == nil {
		respondError(w, http.StatusNotFound, "no frame available")
		return
	}

	data, err := capture.EncodeJPEG(annotated, 90)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to encode frame")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(data)
}

// Stream serves the annotated live view as an MJPEG stream
// (multipart/x-mixed-replace), one part per polling cycle.
func (h *MonitorHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	const boundary = "facewatchframe"
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+boundary)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	ticker := time.NewTicker(h.streamInterval)
	defer ticker.Stop()

	for {
		annotated := h.session.Annotated()
		if annotated != nil {
			data, err := capture.EncodeJPEG(annotated, 90)
			if err == nil {
				fmt.Fprintf(w, "--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", boundary, len(data))
				if _, err := w.Write(data); err != nil {
					return
				}
				fmt.Fprint(w, "\r\n")
				flusher.Flush()
			}
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
