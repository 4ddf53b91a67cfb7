package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"framedata/internal/application/commands"
)

var tooltipCmd = &cobra.Command{
	Use:   "tooltip <window-id>",
	Short: "Show the status tooltip of a window's tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		tip, err := commands.NewTooltipCommand(a.Host, a.Registry, a.Prefs, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(tip.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tooltipCmd)
}
