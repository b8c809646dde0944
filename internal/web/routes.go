package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/facewatch/facewatch/internal/web/handlers"
)

func (s *Server) setupRoutes() {
	interval := time.Duration(s.config.Camera.IntervalMs) * time.Millisecond
	monitorHandler := handlers.NewMonitorHandler(s.session, interval)
	facesHandler := handlers.NewFacesHandler(s.client)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", monitorHandler.Status)
		r.Post("/monitor/start", monitorHandler.Start)
		r.Post("/monitor/stop", monitorHandler.Stop)
		r.Get("/faces", facesHandler.List)
	})

	s.router.Get("/frame.jpg", monitorHandler.Frame)
	s.router.Get("/stream", monitorHandler.Stream)

	s.router.Get("/", s.serveIndex)
}

// serveIndex serves a minimal live-view page: the MJPEG stream plus the
// start/stop toggle and match status polling.
func (s *Server) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>facewatch</title>
    <style>
        body { font-family: system-ui, sans-serif; margin: 0; background: #0f172a; color: #e2e8f0; display: flex; flex-direction: column; align-items: center; }
        h1 { color: #38bdf8; }
        img { max-width: 90vw; border: 1px solid #334155; border-radius: 6px; min-height: 240px; background: #1e293b; }
        button { margin: 12px; padding: 8px 24px; font-size: 1rem; border-radius: 6px; border: 0; background: #38bdf8; color: #0f172a; cursor: pointer; }
        #match { color: #94a3b8; }
    </style>
</head>
<body>
    <h1>facewatch</h1>
    <img id="view" src="/stream" alt="live view">
    <button id="toggle">Start</button>
    <p id="match">&mdash;</p>
    <script>
        const toggle = document.getElementById('toggle');
        const match = document.getElementById('match');
        let active = false;
        async function refresh() {
            const res = await fetch('/api/v1/status');
            const st = await res.json();
            active = st.active;
            toggle.textContent = active ? 'Stop' : 'Start';
            match.textContent = st.score ? st.name + ' (' + st.score.toFixed(2) + ')' : st.name;
        }
        toggle.addEventListener('click', async () => {
            await fetch('/api/v1/monitor/' + (active ? 'stop' : 'start'), {method: 'POST'});
            refresh();
        });
        setInterval(refresh, 1000);
        refresh();
    </script>
</body>
</html>`))
}
