package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"framedata/internal/application/commands"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the window records as a tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		roots, err := commands.NewWindowTreeCommand(a.Host, a.Registry).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(roots) == 0 {
			fmt.Println("No windows.")
			return nil
		}
		fmt.Print(commands.FormatTree(roots))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
