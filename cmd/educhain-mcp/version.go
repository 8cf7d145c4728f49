package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/educhain-mcp/internal/server"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", server.Name, server.Version)
		},
	}
}
