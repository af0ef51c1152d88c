package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xsearch/pkg/presets"
	"xsearch/pkg/ui"
)

// presetsCmd lists the built-in hashtag groups
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in hashtag presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range presets.Names() {
			terms, err := presets.Resolve(name)
			if err != nil {
				return err
			}
			ui.PrintInfo(name, fmt.Sprintf("%d terms", len(terms)))
			for _, t := range terms {
				fmt.Println(ui.Dim("  " + t))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
