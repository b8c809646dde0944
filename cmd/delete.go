package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/facewatch/facewatch/internal/config"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a registered identity",
	Long: `Delete one identity and all of its enrolled samples from the
recognition service.

Example:
  facewatch delete "Alice Novak" --personnel-id E1042`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().String("personnel-id", "", "Personnel identifier to disambiguate duplicate names")
	deleteCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := args[0]
	personnelID := mustGetString(cmd, "personnel-id")
	skipConfirm := mustGetBool(cmd, "yes")

	cfg := config.Load()
	if cfg.FaceAPI.URL == "" {
		return errors.New("FACEAPI_URL environment variable is required")
	}

	client, err := faceapi.NewClient(cfg.FaceAPI.URL)
	if err != nil {
		return fmt.Errorf("invalid recognition service URL: %w", err)
	}

	if !skipConfirm && !confirmAction(fmt.Sprintf("Delete identity '%s'? [y/N]: ", name)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := client.DeleteIdentity(context.Background(), name, personnelID); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	fmt.Printf("Deleted identity '%s'\n", name)
	return nil
}
