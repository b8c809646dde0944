package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// fileSource reads frames from a single image file or a directory of images,
// looping over directory entries. Files are re-read on every grab so a
// replaced file yields its current contents and dimensions.
type fileSource struct {
	paths []string
	opts  Options

	mu   sync.Mutex
	next int
}

func newFileSource(path string, opts Options) (*fileSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not stat %q: %w", path, err)
	}

	if !info.IsDir() {
		return &fileSource{paths: []string{path}, opts: opts}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("could not read directory %q: %w", path, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".bmp":
			paths = append(paths, filepath.Join(path, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no images found in %q", path)
	}
	sort.Strings(paths)

	return &fileSource{paths: paths, opts: opts}, nil
}

func (s *fileSource) Grab(ctx context.Context) (*Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	path := s.paths[s.next]
	s.next = (s.next + 1) % len(s.paths)
	s.mu.Unlock()

	data, err := os.ReadFile(path) //nolint:gosec // user-provided camera source path
	if err != nil {
		return nil, fmt.Errorf("could not read frame file: %w", err)
	}
	return decodeFrame(data, s.opts)
}

func (s *fileSource) Close() error {
	return nil
}
