package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/facewatch/facewatch/internal/config"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename a registered identity",
	Long: `Rename a registered identity and optionally change its personnel
identifier. All enrolled samples move to the new identity.

Example:
  facewatch rename --old-name "Alice" --new-name "Alice Novak" --new-personnel-id E1042`,
	RunE: runRename,
}

func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().String("old-name", "", "Current identity name (required)")
	renameCmd.Flags().String("new-name", "", "New identity name (required)")
	renameCmd.Flags().String("old-personnel-id", "", "Current personnel identifier")
	renameCmd.Flags().String("new-personnel-id", "", "New personnel identifier")
	_ = renameCmd.MarkFlagRequired("old-name")
	_ = renameCmd.MarkFlagRequired("new-name")
}

func runRename(cmd *cobra.Command, args []string) error {
	oldName := mustGetString(cmd, "old-name")
	newName := mustGetString(cmd, "new-name")
	oldPersonnelID := mustGetString(cmd, "old-personnel-id")
	newPersonnelID := mustGetString(cmd, "new-personnel-id")

	cfg := config.Load()
	if cfg.FaceAPI.URL == "" {
		return errors.New("FACEAPI_URL environment variable is required")
	}

	client, err := faceapi.NewClient(cfg.FaceAPI.URL)
	if err != nil {
		return fmt.Errorf("invalid recognition service URL: %w", err)
	}

	if err := client.RenameIdentity(context.Background(), oldName, oldPersonnelID, newName, newPersonnelID); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	fmt.Printf("Renamed '%s' to '%s'\n", oldName, newName)
	return nil
}
