package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hermes/format"
	"github.com/dhamidi/hermes/jpql/parser"
	"github.com/dhamidi/hermes/jpql/workspace"
)

func newFmtCmd() *cobra.Command {
	var fmtOverwrite bool
	var multiline bool
	var versionName string

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Normalize a .jpql file",
		Long: `Normalize a JPQL query and print it to stdout.

Identifiers are written in upper case, tokens are separated by single spaces,
and parentheses or keywords the query is missing are filled in.

If a file is provided, it must have a .jpql extension.
If no file is provided, reads the query from stdin.

Use -w to overwrite the file in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var source []byte
			var err error
			var filename string

			if len(args) == 0 {
				if fmtOverwrite {
					return fmt.Errorf("-w requires a file argument")
				}
				source, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			} else {
				filename = args[0]
				ext := filepath.Ext(filename)
				if ext != workspace.Extension {
					return fmt.Errorf("expected %s file, got %s", workspace.Extension, ext)
				}
				source, err = os.ReadFile(filename)
				if err != nil {
					return fmt.Errorf("read file: %w", err)
				}
			}

			opts, err := parseOptions(versionName, true)
			if err != nil {
				return err
			}
			printer := format.NewJPQLPrinter(nil)
			printer.Multiline = multiline
			output := printer.Format(parser.ParseQuery(string(source), opts...)) + "\n"

			if fmtOverwrite {
				return os.WriteFile(filename, []byte(output), 0644)
			}
			_, err = io.WriteString(os.Stdout, output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")
	cmd.Flags().BoolVarP(&multiline, "multiline", "m", false, "start every clause on a new line")
	addVersionFlag(cmd, &versionName)

	return cmd
}
