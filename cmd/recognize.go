package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/facewatch/facewatch/internal/capture"
	"github.com/facewatch/facewatch/internal/config"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/facewatch/facewatch/internal/overlay"
	"github.com/spf13/cobra"
)

var recognizeCmd = &cobra.Command{
	Use:   "recognize <image>",
	Short: "Recognize faces in a single image",
	Long: `Submit one image to the recognition service and print the matches.

Example:
  facewatch recognize frame.jpg
  facewatch recognize frame.jpg --out annotated.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runRecognize,
}

func init() {
	rootCmd.AddCommand(recognizeCmd)

	recognizeCmd.Flags().Float64("threshold", 0, "Minimum similarity score for a match")
	recognizeCmd.Flags().String("out", "", "Write an annotated copy of the image to this path")
}

func runRecognize(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.FaceAPI.URL == "" {
		return errors.New("FACEAPI_URL environment variable is required")
	}

	threshold := cfg.FaceAPI.Threshold
	if t := mustGetFloat64(cmd, "threshold"); t > 0 {
		threshold = t
	}

	client, err := faceapi.NewClient(cfg.FaceAPI.URL)
	if err != nil {
		return fmt.Errorf("invalid recognition service URL: %w", err)
	}

	source, err := capture.Open(args[0], capture.Options{
		JPEGQuality: cfg.Camera.JPEGQuality,
		MaxSize:     cfg.Camera.MaxFrameSize,
	})
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer source.Close()

	frame, err := source.Grab(context.Background())
	if err != nil {
		return fmt.Errorf("could not read image: %w", err)
	}

	result, err := client.Recognize(context.Background(), frame.Data, threshold)
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	if len(result.Detections) == 0 {
		fmt.Println("No faces detected.")
	}
	for _, det := range result.Detections {
		if det.Recognized {
			score := 0.0
			if det.Score != nil {
				score = *det.Score
			}
			fmt.Printf("%-24s score %.3f  bbox %v\n", det.Label(), score, det.BBox)
		} else {
			fmt.Printf("%-24s bbox %v\n", "unknown", det.BBox)
		}
	}

	if out := mustGetString(cmd, "out"); out != "" {
		renderer := overlay.NewRenderer()
		renderer.Render(frame.Width, frame.Height, result.Detections, result.ImageSize)
		annotated := renderer.Composite(frame.Image)
		data, err := capture.EncodeJPEG(annotated, cfg.Camera.JPEGQuality)
		if err != nil {
			return fmt.Errorf("could not encode annotated image: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("could not write %s: %w", out, err)
		}
		fmt.Printf("Annotated image written to %s\n", out)
	}
	return nil
}
