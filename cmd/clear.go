package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/facewatch/facewatch/internal/config"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all registered identities",
	Long: `Remove every identity and all enrolled samples from the recognition
service. This cannot be undone.`,
	RunE: runClearFaces,
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
}

func confirmAction(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func runClearFaces(cmd *cobra.Command, args []string) error {
	skipConfirm := mustGetBool(cmd, "yes")

	cfg := config.Load()
	if cfg.FaceAPI.URL == "" {
		return errors.New("FACEAPI_URL environment variable is required")
	}

	client, err := faceapi.NewClient(cfg.FaceAPI.URL)
	if err != nil {
		return fmt.Errorf("invalid recognition service URL: %w", err)
	}

	ctx := context.Background()

	faces, err := client.ListFaces(ctx)
	if err != nil {
		return fmt.Errorf("could not list faces: %w", err)
	}
	if len(faces) == 0 {
		fmt.Println("No identities registered.")
		return nil
	}

	if !skipConfirm && !confirmAction(fmt.Sprintf("Remove all %d identities? [y/N]: ", len(faces))) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := client.ClearFaces(ctx); err != nil {
		return fmt.Errorf("could not clear faces: %w", err)
	}
	fmt.Printf("Done! Removed %d identities\n", len(faces))
	return nil
}
