package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asciima/battlecode-server-2017/engine"
)

// mapsCmd lists the maps a run can reference
var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List built-in maps and maps on the search path",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range engine.BuiltinMapNames() {
			fmt.Printf("%s (built-in)\n", name)
		}
		if mapPath == "" {
			return
		}
		found, err := filepath.Glob(filepath.Join(mapPath, "*.yaml"))
		if err != nil {
			return
		}
		for _, path := range found {
			fmt.Printf("%s (%s)\n", strings.TrimSuffix(filepath.Base(path), ".yaml"), path)
		}
	},
}

func init() {
	mapsCmd.Flags().StringVar(&mapPath, "map-path", "", "Directory searched for <name>.yaml maps")
	rootCmd.AddCommand(mapsCmd)
}
