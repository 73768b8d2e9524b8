package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"freq/config"
	"freq/internal/adapter/store"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded batch runs",
	Long: `List the runs recorded by 'freq batch', newest first.

Examples:
  freq history
  freq history --limit 5 --json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of runs to show (0 for all)")
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
}

func openExistingHistory() (*store.BoltStore, error) {
	dbPath := config.HistoryDBPath(GetRootDir())
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("no run history found. Run 'freq batch' first")
	}

	st, err := store.NewBoltStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return st, nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := openExistingHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		status := "ok"
		if !r.Succeeded() {
			status = fmt.Sprintf("exit %d", r.ExitCode)
		}
		fmt.Printf("%s  %s  %-7s  %-8s  %6d total  %6d unique  %s\n",
			r.ID, r.StartedAt.Format(time.DateTime), r.Mode, status, r.Total, r.Unique, r.Input)
		if r.Error != "" {
			fmt.Printf("    %s\n", r.Error)
		}
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	st, err := openExistingHistory()
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := st.GetRun(args[0])
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Printf("Run:        %s\n", r.ID)
	fmt.Printf("Started:    %s (%s)\n", r.StartedAt.Format(time.DateTime), r.Duration)
	fmt.Printf("Mode:       %s\n", r.Mode)
	fmt.Printf("Input:      %s\n", r.Input)
	fmt.Printf("Output:     %s\n", r.Output)
	if r.Succeeded() {
		fmt.Printf("Items:      %d total, %d unique\n", r.Total, r.Unique)
		fmt.Printf("Checksum:   %s\n", r.Checksum)
	} else {
		fmt.Printf("Exit code:  %d\n", r.ExitCode)
		fmt.Printf("Error:      %s\n", r.Error)
	}
	return nil
}
