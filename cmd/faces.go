package cmd

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/facewatch/facewatch/internal/config"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/spf13/cobra"
)

var facesCmd = &cobra.Command{
	Use:   "faces",
	Short: "List registered identities",
	Long: `List every identity registered with the recognition service together
with its personnel identifier and the number of enrolled samples.`,
	RunE: runFaces,
}

func init() {
	rootCmd.AddCommand(facesCmd)
}

func runFaces(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.FaceAPI.URL == "" {
		return errors.New("FACEAPI_URL environment variable is required")
	}

	client, err := faceapi.NewClient(cfg.FaceAPI.URL)
	if err != nil {
		return fmt.Errorf("invalid recognition service URL: %w", err)
	}

	faces, err := client.ListFaces(context.Background())
	if err != nil {
		return fmt.Errorf("could not list faces: %w", err)
	}

	if len(faces) == 0 {
		fmt.Println("No identities registered.")
		return nil
	}

	sort.Slice(faces, func(i, j int) bool {
		return faceapi.NormalizeName(faces[i].Name) < faceapi.NormalizeName(faces[j].Name)
	})

	fmt.Printf("%-30s %-15s %s\n", "NAME", "PERSONNEL ID", "SAMPLES")
	total := 0
	for _, face := range faces {
		pid := face.PersonnelID
		if pid == "" {
			pid = "-"
		}
		fmt.Printf("%-30s %-15s %d\n", face.Name, pid, face.Samples)
		total += face.Samples
	}
	fmt.Printf("\n%d identities, %d samples\n", len(faces), total)
	return nil
}
