package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"framedata/internal/application/commands"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show the key bindings configured in the preferences",
	Long: `Parse every <command>_key entry of the preferences keys section into a
key binding.

Example preferences:
  keys:
    cycleMode_key: accel shift M
    sidebar_key: alt F8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewConfigureKeysCommand(GetApp().Prefs).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, kb := range res.Bindings {
			fmt.Printf("%-20s %s\n", kb.Command, kb)
		}
		for _, name := range res.Invalid {
			fmt.Printf("%-20s (no key)\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
