package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hermes/format"
	"github.com/dhamidi/hermes/jpql/assist"
	"github.com/dhamidi/hermes/jpql/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var versionName string
	var tolerant bool

	cmd := &cobra.Command{
		Use:   "parse [query]",
		Short: "Parse a JPQL query and dump the expression tree",
		Long: `Parse a JPQL query and dump the expression tree to stdout.

The query is read from stdin when no argument is given. Problems found by a
tolerant parse are printed to stderr and make the command fail.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readQuery(args)
			if err != nil {
				return err
			}
			opts, err := parseOptions(versionName, tolerant)
			if err != nil {
				return err
			}

			enc, err := format.NewEncoder(outputFormat, os.Stdout)
			if err != nil {
				return err
			}
			root := parser.ParseQuery(query, opts...)
			if err := enc.Encode(root); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			problems := assist.Problems(root)
			for _, p := range problems {
				fmt.Fprintln(os.Stderr, p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s)", len(problems))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", fmt.Sprintf("output format %v", format.Names()))
	cmd.Flags().BoolVarP(&tolerant, "tolerant", "t", true, "recover from grammatically invalid input")
	addVersionFlag(cmd, &versionName)

	return cmd
}
