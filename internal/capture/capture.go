// Package capture samples still frames from a live camera source. Sources
// hand back one encoded frame per call; dimensions are read fresh from the
// decoded image every time, since a camera may change resolution between
// calls (e.g. on a device switch).
package capture

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"os"
)

// Frame is one sampled still image.
type Frame struct {
	// Image is the decoded frame, used for overlay painting.
	Image image.Image
	// Data is the JPEG-encoded frame as submitted to the recognition API.
	Data []byte
	// Width and Height are the native pixel dimensions of this frame.
	Width  int
	Height int
}

// Source produces frames from a camera or file source.
type Source interface {
	// Grab captures the current frame. The frame's dimensions reflect the
	// source's native resolution at the time of the call.
	Grab(ctx context.Context) (*Frame, error)
	Close() error
}

// Options controls frame encoding for all sources.
type Options struct {
	// JPEGQuality is the encoding quality for sampled frames (1-100).
	JPEGQuality int
	// MaxSize caps the larger frame dimension; 0 disables downscaling.
	MaxSize int
}

// DefaultOptions matches the recognition pipeline's expectations: lossy
// encoding at quality 90, no downscaling.
func DefaultOptions() Options {
	return Options{JPEGQuality: 90}
}

func (o Options) quality() int {
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		return 90
	}
	return o.JPEGQuality
}

// Open creates a source for the given camera URL or file path. HTTP(S) URLs
// are probed on first grab: multipart/x-mixed-replace responses are treated
// as MJPEG streams, anything else as a per-call snapshot endpoint. Local
// paths become file sources.
func Open(rawURL string, opts Options) (Source, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("no camera source given")
	}

	parsed, err := url.Parse(rawURL)
	if err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		return newHTTPSource(rawURL, opts), nil
	}

	if _, err := os.Stat(rawURL); err != nil {
		return nil, fmt.Errorf("could not open camera source %q: %w", rawURL, err)
	}
	return newFileSource(rawURL, opts)
}
