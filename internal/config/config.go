package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	FaceAPI FaceAPIConfig
	Camera  CameraConfig
	Web     WebConfig
}

type FaceAPIConfig struct {
	URL       string  // Base URL of the recognition service (e.g., https://faces.example.com)
	Threshold float64 // Minimum similarity score for a recognition match (default 0.35)
}

type CameraConfig struct {
	URL          string // Camera source: snapshot/MJPEG URL or a local file/directory path
	IntervalMs   int    // Delay between recognition cycles in milliseconds (default 1000)
	JPEGQuality  int    // JPEG encoding quality for sampled frames (default 90)
	MaxFrameSize int    // Maximum frame dimension before downscaling, 0 disables resizing
	SourcesFile  string // Optional YAML file with named camera sources
}

type WebConfig struct {
	Port int
	Host string
}

// SourceProfile is a named camera entry in the optional sources YAML file.
type SourceProfile struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type sourcesFile struct {
	Sources []SourceProfile `yaml:"sources"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a float in (0, 1].
// Returns the default value if the env var is unset, empty, or out of range.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f <= 1 {
		return f
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		FaceAPI: FaceAPIConfig{
			URL:       os.Getenv("FACEAPI_URL"),
			Threshold: envFloat("FACEAPI_THRESHOLD", 0.35),
		},
		Camera: CameraConfig{
			URL:          os.Getenv("CAMERA_URL"),
			IntervalMs:   envInt("WATCH_INTERVAL_MS", 1000),
			JPEGQuality:  envInt("JPEG_QUALITY", 90),
			MaxFrameSize: envInt("MAX_FRAME_SIZE", 0),
			SourcesFile:  os.Getenv("CAMERA_SOURCES_FILE"),
		},
		Web: WebConfig{
			Port: envInt("WEB_PORT", 8080),
			Host: envString("WEB_HOST", "0.0.0.0"),
		},
	}
}

// LoadSources reads the camera sources YAML file configured via CAMERA_SOURCES_FILE.
// Returns an empty list when no file is configured.
func (c *Config) LoadSources() ([]SourceProfile, error) {
	if c.Camera.SourcesFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.Camera.SourcesFile)
	if err != nil {
		return nil, fmt.Errorf("could not read sources file: %w", err)
	}
	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("could not parse sources file: %w", err)
	}
	return f.Sources, nil
}

// ResolveSource maps a --source name to its URL using the sources file.
// An empty name falls back to CAMERA_URL.
func (c *Config) ResolveSource(name string) (string, error) {
	if name == "" {
		if c.Camera.URL == "" {
			return "", fmt.Errorf("no camera configured: set CAMERA_URL or pass --source")
		}
		return c.Camera.URL, nil
	}
	sources, err := c.LoadSources()
	if err != nil {
		return "", err
	}
	for _, s := range sources {
		if s.Name == name {
			return s.URL, nil
		}
	}
	return "", fmt.Errorf("unknown camera source %q", name)
}
