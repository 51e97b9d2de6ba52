package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/config"
	"github.com/mk-Guvi/kriyadocs-attendance-vision/internal/store"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check profiles against the record log",
	Long: `Check every attendee profile against the record log.
A profile's presence status must agree with the type of the attendee's most
recent record: entry means present, exit (or no record) means absent. With
--fix, profiles that disagree are rewritten to match the log.`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().Bool("fix", false, "Rewrite profiles that disagree with the record log")
}

// expectedStatus derives the presence status the record log implies.
func expectedStatus(st *store.Store, attendeeID string) store.PresenceStatus {
	latest, ok := st.LatestRecord(attendeeID)
	if !ok || latest.Type == store.RecordExit {
		return store.StatusOut
	}
	return store.StatusIn
}

func runAudit(cmd *cobra.Command, args []string) error {
	fix := mustGetBool(cmd, "fix")

	cfg := config.Load()
	ctx := context.Background()

	blobs, closer, err := openBlobStore(cfg)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	st := store.Open(ctx, blobs)
	profiles := st.Profiles()
	if len(profiles) == 0 {
		fmt.Println("No profiles to audit.")
		return nil
	}

	bar := progressbar.NewOptions(len(profiles),
		progressbar.OptionSetDescription("Auditing profiles"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("profiles"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	var mismatches, fixed int
	for _, p := range profiles {
		want := expectedStatus(st, p.ID)
		if p.Status != want {
			mismatches++
			fmt.Printf("\n%s <%s>: status is %s, record log says %s\n", p.Name, p.Email, p.Status, want)
			if fix {
				st.UpdateProfile(ctx, store.ProfilePatch{ID: p.ID, Status: &want})
				fixed++
			}
		}
		_ = bar.Add(1)
	}
	fmt.Println()

	if mismatches == 0 {
		fmt.Printf("All %d profile(s) agree with the record log.\n", len(profiles))
		return nil
	}
	if fix {
		fmt.Printf("Fixed %d of %d mismatched profile(s).\n", fixed, mismatches)
		return nil
	}
	fmt.Printf("%d profile(s) disagree with the record log. Run with --fix to repair.\n", mismatches)
	return nil
}
