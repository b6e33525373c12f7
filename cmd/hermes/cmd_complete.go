package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hermes/jpql/assist"
)

func newCompleteCmd() *cobra.Command {
	var versionName string

	cmd := &cobra.Command{
		Use:   "complete <query> [offset]",
		Short: "List what can be typed at an offset of a query",
		Long: `List the identifiers, clauses and variables that can be typed at a byte
offset of a query, one per line. The offset defaults to the end of the query.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			offset := len(query)
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid offset: %w", err)
				}
				offset = n
			}
			if offset < 0 || offset > len(query) {
				return fmt.Errorf("offset %d outside query of length %d", offset, len(query))
			}
			opts, err := parseOptions(versionName, true)
			if err != nil {
				return err
			}

			for _, p := range assist.Complete(query, offset, opts...) {
				fmt.Fprintf(os.Stdout, "%s\t%s\n", p.Label, p.Kind)
			}
			return nil
		},
	}

	addVersionFlag(cmd, &versionName)

	return cmd
}
