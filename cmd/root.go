package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "attendance-vision",
	Short: "A visual attendance kiosk backed by face and image matching",
	Long: `Attendance Vision runs the identity side of a walk-up attendance kiosk.
Each submitted capture is matched against known attendees using face
descriptors, image embeddings, raw pixels and finally email, then recorded
as an entry or exit event.`,
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
