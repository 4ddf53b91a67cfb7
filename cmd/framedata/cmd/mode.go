package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"framedata/internal/application/commands"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show or change the proxy mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := GetApp().Prefs.Load()
		if err != nil {
			return err
		}
		fmt.Println(prefs.ProxyMode)
		return nil
	},
}

var modeCycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Switch to the next proxy mode (auto, global, disabled)",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewCycleProxyModeCommand(GetApp().Prefs).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

var modeSetCmd = &cobra.Command{
	Use:       "set <auto|global|disabled>",
	Short:     "Set the proxy mode",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"auto", "global", "disabled"},
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewSwitchProxyModeCommand(GetApp().Prefs, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	modeCmd.AddCommand(modeCycleCmd)
	modeCmd.AddCommand(modeSetCmd)
	rootCmd.AddCommand(modeCmd)
}
