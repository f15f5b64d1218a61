package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Inspect configured regions",
	RunE:  runRegionsList,
}

var regionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List regions with their source counts",
	RunE:  runRegionsList,
}

var regionsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch region documents for external changes",
	Long: `Watches the master-sources root and reports every modification to a
region document. Useful when several tools share the same documents.
Stop with Ctrl-C.`,
	RunE: runRegionsWatch,
}

func init() {
	regionsCmd.AddCommand(regionsListCmd)
	regionsCmd.AddCommand(regionsWatchCmd)
	rootCmd.AddCommand(regionsCmd)
}

func runRegionsList(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	regions, err := sourceService.ListRegions(cmd.Context())
	if err != nil {
		return err
	}

	for _, r := range regions {
		cmd.Printf("%s (%s)\n", r.DisplayName, r.Name)
		cmd.Printf("  %s\n", r.Description)
		cmd.Printf("  Document: %s  Sources: %d\n", r.SourceFile, r.SourceCount)
	}
	return nil
}

func runRegionsWatch(cmd *cobra.Command, _ []string) error {
	if newWatcher == nil {
		return errors.New("watcher not configured")
	}

	watcher, err := newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Println("Watching region documents. Press Ctrl-C to stop.")
	go func() {
		for ev := range watcher.Events() {
			cmd.Printf("%s: %s (%s)\n", ev.Region, ev.Op, ev.Path)
		}
	}()

	err = watcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
