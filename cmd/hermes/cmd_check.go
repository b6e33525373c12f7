package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/hermes/jpql/parser"
	"github.com/dhamidi/hermes/jpql/workspace"
)

func newCheckCmd() *cobra.Command {
	var versionName string

	cmd := &cobra.Command{
		Use:   "check [dir]",
		Short: "Report the problems of every .jpql file below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			v, err := parser.ParseVersion(versionName)
			if err != nil {
				return err
			}

			w := workspace.New(dir, parser.WithVersion(v))
			if err := w.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", dir, err)
			}

			count := 0
			for _, path := range w.Paths() {
				doc := w.GetFile(path)
				for _, p := range doc.Problems {
					line, col := workspace.PositionOf(doc.Content, p.Offset)
					msg := p.Message
					if p.Suggestion != "" {
						msg += fmt.Sprintf(" (did you mean '%s'?)", p.Suggestion)
					}
					fmt.Fprintf(os.Stdout, "%s:%d:%d: %s\n", path, line, col+1, msg)
					count++
				}
			}
			if count > 0 {
				return fmt.Errorf("%d problem(s) in %d file(s)", count, len(w.Paths()))
			}
			return nil
		},
	}

	addVersionFlag(cmd, &versionName)

	return cmd
}
