package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/config"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/store"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Print recent attendance records",
	RunE:  runRecords,
}

func init() {
	rootCmd.AddCommand(recordsCmd)

	recordsCmd.Flags().Int("limit", 20, "Maximum number of records to print")
}

func runRecords(cmd *cobra.Command, args []string) error {
	limit := mustGetInt(cmd, "limit")

	cfg := config.Load()
	ctx := context.Background()

	blobs, closer, err := openBlobStore(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	st := store.Open(ctx, blobs)
	records := st.RecentRecords(limit)
	if len(records) == 0 {
		fmt.Println("No attendance records.")
		return nil
	}

	for _, r := range records {
		direction := "IN "
		if r.Type == store.RecordExit {
			direction = "OUT"
		}
		fmt.Printf("%s  %s  %-25s %s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05"), direction, r.Name, r.Email)
	}

	total, profiles, present := st.Counts()
	fmt.Printf("\n%d record(s) total, %d attendee(s), %d present\n", total, profiles, present)
	return nil
}
