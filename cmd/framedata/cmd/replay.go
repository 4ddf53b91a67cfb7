package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"framedata/internal/application/commands"
)

var replayCmd = &cobra.Command{
	Use:   "replay <event-log>...",
	Short: "Replay event logs and print the resulting window tree",
	Long: `Replay one or more JSON-lines event logs in order and print the
record tree they leave behind.

Examples:
  framedata replay session.jsonl
  framedata replay open.jsonl navigate.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := GetApp()

		total := 0
		for _, path := range args {
			n, err := a.ReplayFile(ctx, path)
			total += n
			if err != nil {
				return err
			}
		}

		roots, err := commands.NewWindowTreeCommand(a.Host, a.Registry).Execute(ctx)
		if err != nil {
			return err
		}
		stats := a.Registry.Stats()
		fmt.Printf("Applied %d events. Records: %d (%d detached), tracked nodes: %d\n",
			total, stats.Records, stats.Detached, stats.Nodes)
		fmt.Print(commands.FormatTree(roots))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
