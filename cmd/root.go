package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "facewatch",
	Short: "A CLI client for a face recognition service",
	Long: `Facewatch is a client for a face recognition HTTP service. It samples
frames from a camera source, submits them for recognition, and paints
bounding boxes and identity labels over a live view. It also manages the
service's registered identities: register, list, rename, delete, clear.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
