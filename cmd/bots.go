package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asciima/battlecode-server-2017/engine/bots"
)

// botsCmd lists the registered bot programs
var botsCmd = &cobra.Command{
	Use:   "bots",
	Short: "List built-in bot programs",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range bots.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(botsCmd)
}
