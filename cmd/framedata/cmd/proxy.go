package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"framedata/internal/application/commands"
)

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "List the configured proxies or change the default proxy",
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, err := GetApp().Prefs.Load()
		if err != nil {
			return err
		}
		for i, name := range prefs.Proxies {
			marker := " "
			if i == prefs.DefaultProxy {
				marker = "*"
			}
			fmt.Printf("%s %d %s\n", marker, i, name)
		}
		return nil
	},
}

var proxyCycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Select the next configured proxy as default",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewCycleDefaultProxyCommand(GetApp().Prefs).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

var proxySetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Select a configured proxy by name as default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := commands.NewSwitchDefaultProxyCommand(GetApp().Prefs, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	proxyCmd.AddCommand(proxyCycleCmd)
	proxyCmd.AddCommand(proxySetCmd)
	rootCmd.AddCommand(proxyCmd)
}
