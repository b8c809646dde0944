package capture

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
)

// httpSource reads frames from an HTTP camera endpoint. The first grab probes
// the response content type: multipart/x-mixed-replace switches the source
// into MJPEG streaming mode, anything else means every grab issues a fresh
// snapshot GET.
type httpSource struct {
	url    string
	opts   Options
	client *http.Client

	mu     sync.Mutex
	stream *mjpegStream
}

func newHTTPSource(url string, opts Options) *httpSource {
	return &httpSource{
		url:  url,
		opts: opts,
		// No client timeout: MJPEG responses never end. Connection setup
		// is bounded by the request context instead.
		client: &http.Client{},
	}
}

func (s *httpSource) Grab(ctx context.Context) (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream != nil {
		return s.stream.next(s.opts)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not reach camera: %w", err)
	}

	mediaType, params, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			resp.Body.Close()
			return nil, fmt.Errorf("camera stream has no multipart boundary")
		}
		s.stream = &mjpegStream{
			body:   resp.Body,
			reader: multipart.NewReader(resp.Body, boundary),
		}
		return s.stream.next(s.opts)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("camera returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read camera response: %w", err)
	}
	return decodeFrame(data, s.opts)
}

func (s *httpSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		err := s.stream.body.Close()
		s.stream = nil
		return err
	}
	return nil
}

// mjpegStream consumes parts from a multipart/x-mixed-replace response body.
type mjpegStream struct {
	body   io.ReadCloser
	reader *multipart.Reader
}

func (m *mjpegStream) next(opts Options) (*Frame, error) {
	part, err := m.reader.NextPart()
	if err != nil {
		return nil, fmt.Errorf("could not read stream part: %w", err)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return nil, fmt.Errorf("could not read frame data: %w", err)
	}
	return decodeFrame(data, opts)
}
