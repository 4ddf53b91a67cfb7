package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"framedata/internal/application/commands"
	"framedata/internal/domain"
)

var locationsAll bool

var locationsCmd = &cobra.Command{
	Use:   "locations <window-id>",
	Short: "List the locations tracked for a window",
	Long: `List the resource locations tracked for a window. With --all the
locations of its subdocuments follow, depth first.

Examples:
  framedata -e session.jsonl locations tab1
  framedata -e session.jsonl locations tab1 --all`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := GetApp()
		locs, err := commands.NewListLocationsCommand(a.Host, a.Registry, args[0], locationsAll).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(locs) == 0 {
			fmt.Println("No locations.")
			return nil
		}
		for _, loc := range locs {
			printLocation(loc)
		}
		return nil
	},
}

var locationCmd = &cobra.Command{
	Use:   "location <window-id> <content-type> <url>",
	Short: "Look up one location of a window hierarchy",
	Long: `Look up a location by content type and URL in a window and its
subdocuments. The content type is a name or a number.

Examples:
  framedata -e session.jsonl location tab1 IMAGE https://cdn.example/a.png
  framedata -e session.jsonl location tab1 2 https://cdn.example/a.js`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := domain.ParseContentType(args[1])
		if err != nil {
			return err
		}
		a := GetApp()
		loc, err := commands.NewGetLocationCommand(a.Host, a.Registry, args[0], typ, args[2]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printLocation(loc)
		return nil
	},
}

func printLocation(loc *domain.LocationRecord) {
	fmt.Printf("%-12s %s", loc.Key.Type, loc.Key.URL)
	switch {
	case loc.Match == nil:
	case loc.Match.Whitelist:
		fmt.Printf("  whitelist=%s", loc.Match.Rule)
	default:
		fmt.Printf("  proxy=%s", loc.Match.Rule)
	}
	fmt.Printf("  nodes=%d\n", len(loc.Nodes()))
}

func init() {
	locationsCmd.Flags().BoolVarP(&locationsAll, "all", "a", false, "include subdocument locations")
	rootCmd.AddCommand(locationsCmd)
	rootCmd.AddCommand(locationCmd)
}
