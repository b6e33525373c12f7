package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hermes/jpql/parser"
)

const versionEnv = "HERMES_JPA_VERSION"

// addVersionFlag registers --version with the default taken from the
// environment.
func addVersionFlag(cmd *cobra.Command, v *string) {
	def := os.Getenv(versionEnv)
	if def == "" {
		def = parser.DefaultVersion.String()
	}
	cmd.Flags().StringVar(v, "version", def, "JPA version of the query (1.0, 2.0, 2.1; default from "+versionEnv+")")
}

func parseOptions(versionName string, tolerant bool) ([]parser.Option, error) {
	v, err := parser.ParseVersion(versionName)
	if err != nil {
		return nil, err
	}
	opts := []parser.Option{parser.WithVersion(v)}
	if tolerant {
		opts = append(opts, parser.WithTolerant())
	}
	return opts, nil
}

// readQuery returns the query given as argument, or reads it from stdin
// when there is none or it is "-".
func readQuery(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
