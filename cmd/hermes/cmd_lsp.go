package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/hermes/jpql/parser"
	"github.com/dhamidi/hermes/jpql/workspace"
)

func newLSPCmd() *cobra.Command {
	var versionName string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parser.ParseVersion(versionName)
			if err != nil {
				return err
			}
			server := workspace.NewLSPServer(version, parser.WithVersion(v))
			return server.RunStdio()
		},
	}

	addVersionFlag(cmd, &versionName)

	return cmd
}
