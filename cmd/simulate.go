package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/capture"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/config"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/pipeline"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <directory>",
	Short: "Replay a directory of stills through the pipeline",
	Long: `Replay every image file of a directory through the resolution
pipeline as if attendees walked up to the kiosk one by one.

Names and emails are derived from the file names, so "ann_lee.jpg" submits
as "ann lee" <ann_lee@simulated.local>. Useful for exercising matching and
the entry/exit toggle against a corpus of test images.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Int("rounds", 1, "How many passes over the directory")
}

// captureFields derives kiosk form fields from a still's file name.
func captureFields(path string) (name, email string) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.ReplaceAll(base, "_", " ")
	email = base + "@simulated.local"
	return name, email
}

func runSimulate(cmd *cobra.Command, args []string) error {
	rounds := mustGetInt(cmd, "rounds")
	if rounds < 1 {
		rounds = 1
	}

	cfg := config.Load()
	ctx := context.Background()

	_, pl, closer, err := openPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	source := capture.NewDirectorySource(args[0])
	if err := source.Start(ctx); err != nil {
		return err
	}
	defer source.Stop()

	total := source.Len() * rounds
	fmt.Printf("Replaying %d capture(s) from %s\n\n", total, args[0])

	var accepted, rejected int
	for i := range total {
		still, err := source.Still(ctx)
		if err != nil {
			return fmt.Errorf("reading still %d: %w", i+1, err)
		}

		// The source cycles in name order, so positions repeat every round.
		name, email := captureFields(source.FileAt(i % source.Len()))

		outcome, err := pl.Resolve(ctx, pipeline.Capture{Name: name, Email: email, Image: still})
		if err != nil {
			return fmt.Errorf("resolving capture %d: %w", i+1, err)
		}
		if outcome.Accepted {
			accepted++
			fmt.Printf("[%d/%d] %s -> %s via %s\n", i+1, total, name, outcome.Record.Type, outcome.Stage)
		} else {
			rejected++
			fmt.Printf("[%d/%d] %s -> rejected (%s)\n", i+1, total, name, outcome.Reason)
		}
	}

	fmt.Printf("\nDone: %d accepted, %d rejected\n", accepted, rejected)
	return nil
}
