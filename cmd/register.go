package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/facewatch/facewatch/internal/config"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <image-or-directory>",
	Short: "Enroll face samples under an identity",
	Long: `Register one image, or every image in a directory, as samples of a
single identity. More samples per identity improve recognition accuracy.

Examples:
  facewatch register alice.jpg --name "Alice Novak"
  facewatch register ./samples/alice --name "Alice Novak" --personnel-id E1042`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().String("name", "", "Identity name (required)")
	registerCmd.Flags().String("personnel-id", "", "Optional personnel identifier")
	_ = registerCmd.MarkFlagRequired("name")
}

// collectImageFiles returns the image paths under a directory in sorted order,
// or the path itself when it points to a regular file.
func collectImageFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("could not stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("could not read directory %s: %w", path, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".jpg", ".jpeg", ".png", ".bmp":
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	name := mustGetString(cmd, "name")
	personnelID := mustGetString(cmd, "personnel-id")

	cfg := config.Load()
	if cfg.FaceAPI.URL == "" {
		return errors.New("FACEAPI_URL environment variable is required")
	}

	client, err := faceapi.NewClient(cfg.FaceAPI.URL)
	if err != nil {
		return fmt.Errorf("invalid recognition service URL: %w", err)
	}

	files, err := collectImageFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files found in %s", args[0])
	}

	ctx := context.Background()

	if len(files) == 1 {
		data, err := os.ReadFile(files[0])
		if err != nil {
			return fmt.Errorf("could not read %s: %w", files[0], err)
		}
		if _, err := client.Register(ctx, data, name, personnelID); err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Printf("Registered %s as '%s'\n", files[0], name)
		return nil
	}

	fmt.Printf("Registering %d samples as '%s'\n\n", len(files), name)
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Registering"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("samples"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	var registered, failed int
	var failures []string
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err == nil {
			_, err = client.Register(ctx, data, name, personnelID)
		}
		if err != nil {
			failed++
			failures = append(failures, fmt.Sprintf("%s: %v", filepath.Base(file), err))
		} else {
			registered++
		}
		_ = bar.Add(1)
	}
	fmt.Println()

	fmt.Printf("Done! Registered %d sample(s), %d failed\n", registered, failed)
	for _, line := range failures {
		fmt.Printf("  %s\n", line)
	}
	if failed > 0 && registered == 0 {
		return errors.New("all samples failed to register")
	}
	return nil
}
