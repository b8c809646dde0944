package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/facewatch/facewatch/internal/capture"
	"github.com/facewatch/facewatch/internal/config"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/facewatch/facewatch/internal/monitor"
	"github.com/facewatch/facewatch/internal/web"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the recognition monitor and web viewer",
	Long: `Start the continuous recognition loop against a camera source and serve
the annotated stream over HTTP.

The monitor samples one frame per cycle, submits it to the recognition
service and paints bounding boxes with identity labels over the latest
frame. The annotated result is available as a single JPEG at /frame.jpg
and as an MJPEG stream at /stream.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("source", "", "Named camera source from the sources file")
	watchCmd.Flags().String("camera", "", "Camera URL or file path (overrides --source and CAMERA_URL)")
	watchCmd.Flags().Int("interval", 0, "Delay between recognition cycles in milliseconds")
	watchCmd.Flags().Float64("threshold", 0, "Minimum similarity score for a match")
	watchCmd.Flags().Int("port", 0, "Port to listen on")
	watchCmd.Flags().String("host", "", "Host to bind to")
	watchCmd.Flags().Bool("paused", false, "Start with monitoring stopped (toggle via the web UI)")
}

// resolveWatchConfig applies command line flag overrides on top of the
// environment driven configuration.
func resolveWatchConfig(cmd *cobra.Command, cfg *config.Config) (string, error) {
	cameraURL := mustGetString(cmd, "camera")
	if cameraURL == "" {
		resolved, err := cfg.ResolveSource(mustGetString(cmd, "source"))
		if err != nil {
			return "", err
		}
		cameraURL = resolved
	}

	if interval := mustGetInt(cmd, "interval"); interval > 0 {
		cfg.Camera.IntervalMs = interval
	}
	if threshold := mustGetFloat64(cmd, "threshold"); threshold > 0 {
		cfg.FaceAPI.Threshold = threshold
	}
	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Web.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Web.Host = host
	}
	return cameraURL, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.FaceAPI.URL == "" {
		return errors.New("FACEAPI_URL environment variable is required")
	}

	cameraURL, err := resolveWatchConfig(cmd, cfg)
	if err != nil {
		return err
	}

	client, err := faceapi.NewClient(cfg.FaceAPI.URL)
	if err != nil {
		return fmt.Errorf("invalid recognition service URL: %w", err)
	}

	source, err := capture.Open(cameraURL, capture.Options{
		JPEGQuality: cfg.Camera.JPEGQuality,
		MaxSize:     cfg.Camera.MaxFrameSize,
	})
	if err != nil {
		return fmt.Errorf("could not open camera source: %w", err)
	}
	defer source.Close()

	session := monitor.New(source, client, monitor.Options{
		Threshold: cfg.FaceAPI.Threshold,
		Interval:  time.Duration(cfg.Camera.IntervalMs) * time.Millisecond,
	})

	server := web.NewServer(cfg, session, client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	if !mustGetBool(cmd, "paused") {
		session.Start()
	}

	fmt.Printf("Watching %s (interval %dms, threshold %.2f)\n",
		cameraURL, cfg.Camera.IntervalMs, cfg.FaceAPI.Threshold)
	fmt.Printf("Viewer running on http://%s:%d\n", cfg.Web.Host, cfg.Web.Port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
