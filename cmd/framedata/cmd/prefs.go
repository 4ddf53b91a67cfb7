package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"framedata/internal/adapters/editor"
	"framedata/internal/application/commands"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show the preferences file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(GetApp().Prefs.Path())
		return nil
	},
}

var prefsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the preferences in $EDITOR and validate them",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		prefs, err := commands.NewEditPrefsCommand(a.Prefs, editor.NewOpener(a.Logger)).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Preferences OK: mode %s, default proxy %s\n", prefs.ProxyMode, prefs.DefaultProxyName())
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsEditCmd)
	rootCmd.AddCommand(prefsCmd)
}
