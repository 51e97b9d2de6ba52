package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/config"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/store"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all attendance records and profiles",
	Long: `Delete every attendance record and attendee profile.

This wipes the whole store, including stored images and vectors. There is
no undo.`,
	RunE: runClear,
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

func runClear(cmd *cobra.Command, args []string) error {
	skipConfirm := mustGetBool(cmd, "yes")

	cfg := config.Load()
	ctx := context.Background()

	blobs, closer, err := openBlobStore(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	st := store.Open(ctx, blobs)
	records, profiles, _ := st.Counts()

	if records == 0 && profiles == 0 {
		fmt.Println("Store is already empty.")
		return nil
	}

	fmt.Printf("Records:  %d\n", records)
	fmt.Printf("Profiles: %d\n", profiles)

	if !skipConfirm && !confirmAction("\nDelete all attendance data? [y/N]: ") {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := st.ClearAll(ctx); err != nil {
		return fmt.Errorf("clearing attendance data: %w", err)
	}

	fmt.Println("Done! All attendance data deleted.")
	return nil
}
