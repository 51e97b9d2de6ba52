package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/config"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/pipeline"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin <image-file>",
	Short: "Submit one capture from an image file",
	Long: `Submit a single capture without running the web server.
Resolves the image against known attendees and records the entry or exit,
exactly as a kiosk submission would.

Example:
  attendance-vision checkin --name "Ann Lee" --email ann@example.com capture.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckin,
}

func init() {
	rootCmd.AddCommand(checkinCmd)

	checkinCmd.Flags().String("name", "", "Attendee name (required)")
	checkinCmd.Flags().String("email", "", "Attendee email (required)")
	_ = checkinCmd.MarkFlagRequired("name")
	_ = checkinCmd.MarkFlagRequired("email")
}

func runCheckin(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(mustGetString(cmd, "name"))
	email := strings.TrimSpace(mustGetString(cmd, "email"))
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email %q is not valid", email)
	}

	image, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image file: %w", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	_, pl, closer, err := openPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	outcome, err := pl.Resolve(ctx, pipeline.Capture{
		Name:  name,
		Email: email,
		Image: image,
	})
	if err != nil {
		return fmt.Errorf("resolving capture: %w", err)
	}

	printOutcome(outcome)
	if !outcome.Accepted {
		os.Exit(1)
	}
	return nil
}

func printOutcome(outcome *pipeline.Outcome) {
	if !outcome.Accepted {
		fmt.Printf("Rejected: %s\n", outcome.Reason)
		if outcome.Reason == pipeline.ReasonCheckoutMismatch {
			fmt.Printf("  Capture does not match today's entry image (confidence %.2f)\n", outcome.Confidence)
		}
		return
	}

	action := "Checked in"
	if outcome.Record.Type == "exit" {
		action = "Checked out"
	}
	fmt.Printf("%s: %s <%s>\n", action, outcome.Profile.Name, outcome.Profile.Email)
	fmt.Printf("  Matched by: %s", outcome.Stage)
	if outcome.Confidence > 0 {
		fmt.Printf(" (confidence %.2f)", outcome.Confidence)
	}
	fmt.Println()
	if outcome.NewEnrollment {
		fmt.Printf("  New attendee enrolled with id %s\n", outcome.Profile.ID)
	}
}
